package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fakenft/internal/domain"
	"fakenft/internal/viewmodel/mynft"
)

func loadMyNFT(cmd *cobra.Command) (*mynft.ViewModel, error) {
	var lastAlert string
	vm := mynft.New(cmd.Context(), appEnv.profile,
		mynft.WithLogger(appEnv.logger),
		mynft.WithAlertHandler(func(s string) { lastAlert = s }),
	)
	if vm.Profile.Get() == nil {
		return nil, errors.New(lastAlert)
	}
	return vm, nil
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := loadMyNFT(cmd)
			if err != nil {
				return err
			}
			p := vm.Profile.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n%s\nwebsite: %s\n", p.Name, p.Description, p.Website)
			fmt.Fprintf(out, "my nfts: %d\nliked: %d\nusers: %d\n", len(p.NFTs), len(p.Likes), len(vm.Users.Get()))
			return nil
		},
	}
}

// like <id>...: toggles each id in turn.
func likeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <id>...",
		Short: "Toggle likes on items",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := loadMyNFT(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range args {
				if err := vm.ToggleLike(cmd.Context(), id); err != nil {
					return fmt.Errorf("%s: %s", id, vm.Alerts.Get())
				}
				state := "unliked"
				if vm.IsLiked(id) {
					state = "liked"
				}
				fmt.Fprintf(out, "%s %s\n", id, state)
			}
			return nil
		},
	}
}

// my-nfts [--sort price|rating|name|close]
func myNFTsCmd() *cobra.Command {
	var sortBy string
	var likedOnly bool
	cmd := &cobra.Command{
		Use:   "my-nfts",
		Short: "List the profile's items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			vm, err := loadMyNFT(cmd)
			if err != nil {
				return err
			}
			if err := vm.FetchCards(cmd.Context(), vm.Profile.Get().NFTs); err != nil {
				return errors.New(vm.Alerts.Get())
			}
			if sortBy != "" {
				option := domain.NFTSortOption(sortBy)
				switch option {
				case domain.SortCardsByPrice, domain.SortCardsByRating, domain.SortCardsByName, domain.SortCardsClose:
				default:
					return fmt.Errorf("unknown sort %q, want price, rating, name or close", sortBy)
				}
				vm.SortCards(option)
			}
			cards := vm.Cards.Get()
			if likedOnly {
				cards = vm.LikedCards()
			}
			printNFTs(cmd.OutOrStdout(), cards, vm.IsLiked)
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "price, rating, name or close")
	cmd.Flags().BoolVar(&likedOnly, "liked", false, "only show liked items")
	return cmd
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fakenft/internal/domain"
	"fakenft/internal/interactor"
	"fakenft/internal/viewmodel/collections"
)

// screen is the collection list as the CLI sees it: the view model plus the
// interactor it built, for operations the view model does not expose.
type screen struct {
	vm *collections.ViewModel
	it *interactor.Interactor
}

func newScreen(out io.Writer, trace bool) *screen {
	s := &screen{}
	s.vm = collections.New(func(ctx context.Context, onReady func([]domain.Collection, error)) collections.DataSource {
		s.it = interactor.New(ctx, appEnv.catalog, appEnv.prefs, onReady, interactor.WithLogger(appEnv.logger))
		return s.it
	}, appEnv.logger)
	if trace {
		s.vm.Result.Subscribe(func(r collections.ResultState) {
			fmt.Fprintf(out, "state: %s\n", r.Kind)
		})
		s.vm.Navigation.Subscribe(func(n collections.NavigationState) {
			fmt.Fprintf(out, "navigation: %s\n", n.Kind)
		})
	}
	return s
}

func (s *screen) failure() error {
	r := s.vm.Result.Get()
	if r.Kind != collections.ResultError {
		return nil
	}
	return errors.New(r.Message())
}

// collections [--sort name|count] [--order asc|desc]
func collectionsCmd() *cobra.Command {
	var sortBy, order string
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List collections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := newScreen(out, false)
			s.vm.Refresh(cmd.Context(), false)
			if err := s.failure(); err != nil {
				return err
			}

			switch {
			case sortBy != "" && order == "":
				kind, err := parseSortKind(sortBy)
				if err != nil {
					return err
				}
				s.vm.HandleAction(cmd.Context(), collections.SortSelected{Kind: kind})
			case order != "":
				// --order alone re-orders the active sort kind
				kind := s.it.SortState().Kind
				if sortBy != "" {
					k, err := parseSortKind(sortBy)
					if err != nil {
						return err
					}
					kind = k
				}
				o, err := parseSortOrder(order)
				if err != nil {
					return err
				}
				if kind == domain.SortByName {
					s.it.SortByName(o)
				} else {
					s.it.SortByNFTCount(o)
				}
			}

			state := s.it.SortState()
			fmt.Fprintf(out, "sorted %s %s\n", state.Kind, state.Order)
			printCollections(out, s.vm)
			return nil
		},
	}
	cmd.Flags().StringVar(&sortBy, "sort", "", "sort by name or count")
	cmd.Flags().StringVar(&order, "order", "", "asc or desc (applies to --sort, or to the active sort when --sort is unset)")
	return cmd
}

// refresh: initial load followed by a pull-to-refresh, tracing every state.
func refreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Reload collections and print state transitions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s := newScreen(out, true)
			s.vm.Refresh(cmd.Context(), false)
			s.vm.HandleAction(cmd.Context(), collections.PullToRefresh{})
			if err := s.failure(); err != nil {
				return err
			}
			fmt.Fprintf(out, "%d collections\n", s.vm.CollectionCount())
			return nil
		},
	}
}

// collection <index>: details for the collection at index in the current order.
func collectionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collection <index>",
		Short: "Show a collection with its author and items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			s := newScreen(out, false)
			s.vm.Refresh(ctx, false)
			if err := s.failure(); err != nil {
				return err
			}
			c, ok := s.vm.CollectionAt(index)
			if !ok {
				return fmt.Errorf("no collection at index %d (have %d)", index, s.vm.CollectionCount())
			}
			s.vm.HandleAction(ctx, collections.CollectionTapped{Collection: c})

			fmt.Fprintf(out, "%s (%d items)\n%s\n", c.Name, len(c.NFTs), c.Description)
			if author, err := s.it.FetchAuthor(ctx, c.Author); err == nil {
				fmt.Fprintf(out, "author: %s %s\n", author.Name, author.Website)
			} else {
				appEnv.logger.Debug("author unavailable", zap.Error(err))
			}

			s.it.ClearNFTs()
			for _, id := range c.NFTs {
				_, _ = s.it.FetchNFT(ctx, id)
			}
			nfts := make([]domain.NFT, 0, s.it.NFTCount())
			for i := 0; i < s.it.NFTCount(); i++ {
				n, _ := s.it.NFTAt(i)
				nfts = append(nfts, n)
			}

			p, perr := appEnv.profile.FetchProfile(ctx)
			o, oerr := appEnv.orders.FetchOrder(ctx)
			if err := errors.Join(perr, oerr); err != nil {
				appEnv.logger.Debug("card flags unavailable", zap.Error(err))
			}
			printCards(out, domain.Cards(nfts, p, o))
			if missing := len(c.NFTs) - len(nfts); missing > 0 {
				fmt.Fprintf(out, "%d items could not be loaded\n", missing)
			}
			return nil
		},
	}
}

func parseSortKind(raw string) (domain.SortKind, error) {
	switch raw {
	case "name":
		return domain.SortByName, nil
	case "count":
		return domain.SortByNFTCount, nil
	}
	return "", fmt.Errorf("unknown sort %q, want name or count", raw)
}

func parseSortOrder(raw string) (domain.SortOrder, error) {
	switch raw {
	case "asc":
		return domain.Ascending, nil
	case "desc":
		return domain.Descending, nil
	}
	return "", fmt.Errorf("unknown order %q, want asc or desc", raw)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func authorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "author <id>",
		Short: "Show a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appEnv.catalog.FetchAuthor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (rating %s)\n", a.Name, a.Rating)
			if a.Description != "" {
				fmt.Fprintln(out, a.Description)
			}
			fmt.Fprintf(out, "website: %s\nitems: %d\n", a.Website, len(a.NFTs))
			return nil
		},
	}
}

// nft <id>...: the batch fails as a whole if any id cannot be fetched.
func nftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nft <id>...",
		Short: "Show items by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nfts, err := appEnv.profile.FetchNFTs(cmd.Context(), args)
			if err != nil {
				return err
			}
			printNFTs(cmd.OutOrStdout(), nfts, nil)
			return nil
		},
	}
}

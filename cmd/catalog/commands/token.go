package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fakenft/internal/auth"
	"fakenft/internal/settings"
)

// token: sign a token with JWT_SECRET and keep it in the settings store.
func tokenCmd() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and store an API token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, expiresAt, err := auth.Sign(appEnv.cfg.JWTSecret, tokenSubject, appEnv.tokenTTL())
			if err != nil {
				return err
			}
			if err := appEnv.prefs.Set(cmd.Context(), settings.APITokenKey, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "token stored, expires %s\n", expiresAt.Format(time.RFC3339))
			if show {
				fmt.Fprintln(out, token)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "show", false, "also print the token")
	return cmd
}

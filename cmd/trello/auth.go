package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

var authURLCmd = &cobra.Command{
	Use:   "auth-url <app-name> <return-url>",
	Short: "Print the URL that grants this application a token",
	Long: `Print the authorization URL a user visits to grant an access token.

Scopes are read, write and account. Expirations are 1hour, 1day, 30days and
never. Callback methods are postMessage and fragment.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		scopes, _ := cmd.Flags().GetStringSlice("scope")
		expiration, _ := cmd.Flags().GetString("expiration")
		method, _ := cmd.Flags().GetString("callback-method")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runAuthURL(c, os.Stdout, args[0], args[1], scopes, expiration, method)
		}))
	},
}

func init() {
	rootCmd.AddCommand(authURLCmd)

	authURLCmd.Flags().StringSlice("scope", []string{trello.ScopeRead}, "Scopes to request")
	authURLCmd.Flags().String("expiration", trello.Expiration30Days, "Token lifetime")
	authURLCmd.Flags().String("callback-method", trello.CallbackFragment, "How the token is handed back")
}

func runAuthURL(c *trello.Client, w io.Writer, app, returnURL string, scopes []string, expiration, method string) error {
	u, err := c.AuthorizationURL(app, returnURL,
		trello.WithScopes(scopes...),
		trello.WithExpiration(expiration),
		trello.WithCallbackMethod(method),
	)
	if err != nil {
		return err
	}
	if jsonOutput {
		printSuccess(w, u, true)
		return nil
	}
	fmt.Fprintln(w, u)
	return nil
}

package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

var actionCmd = &cobra.Command{
	Use:   "action <id>",
	Short: "Show an action",
	Long:  `Show a single action, one entry of a board's or card's activity.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runActionShow(ctx, c, os.Stdout, args[0])
		}))
	},
}

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Work with webhooks",
}

var webhookCreateCmd = &cobra.Command{
	Use:   "create <model-id> <callback-url>",
	Short: "Register a webhook",
	Long: `Ask the API to call callback-url whenever the model changes. The
callback URL must answer a HEAD request with 200 when the webhook is created.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		desc, _ := cmd.Flags().GetString("desc")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runWebhookCreate(ctx, c, os.Stdout, args[0], args[1], desc)
		}))
	},
}

var webhookDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a webhook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			if err := trello.NewWebhook(c, nil).SetID(args[0]).Delete(ctx); err != nil {
				return err
			}
			printSuccess(os.Stdout, "Deleted webhook "+args[0], jsonOutput)
			return nil
		}))
	},
}

func init() {
	rootCmd.AddCommand(actionCmd)
	rootCmd.AddCommand(webhookCmd)

	webhookCmd.AddCommand(webhookCreateCmd)
	webhookCmd.AddCommand(webhookDeleteCmd)

	webhookCreateCmd.Flags().String("desc", "", "Webhook description")
}

func runActionShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	action, err := c.GetAction(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, action.Fields(), jsonOutput)
	return nil
}

func runWebhookCreate(ctx context.Context, c *trello.Client, w io.Writer, modelID, callbackURL, desc string) error {
	hook := trello.NewWebhook(c, nil).Set("idModel", modelID).Set("callbackURL", callbackURL)
	if desc != "" {
		hook.Set("description", desc)
	}
	created, err := hook.Save(ctx)
	if err != nil {
		return err
	}
	printRecord(w, created.Fields(), jsonOutput)
	return nil
}

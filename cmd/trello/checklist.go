package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Work with checklists",
}

var checklistShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show checklist details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runChecklistShow(ctx, c, os.Stdout, args[0])
		}))
	},
}

var checklistCreateCmd = &cobra.Command{
	Use:   "create <card-id>",
	Short: "Add a checklist to a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runChecklistCreate(ctx, c, os.Stdout, args[0], name)
		}))
	},
}

var checklistItemsCmd = &cobra.Command{
	Use:   "items <id>",
	Short: "List the items of a checklist",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runChecklistItems(ctx, c, os.Stdout, args[0])
		}))
	},
}

func init() {
	rootCmd.AddCommand(checklistCmd)

	checklistCmd.AddCommand(checklistShowCmd)
	checklistCmd.AddCommand(checklistCreateCmd)
	checklistCmd.AddCommand(checklistItemsCmd)

	checklistCreateCmd.Flags().String("name", "", "Checklist name")
}

func runChecklistShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	checklist, err := c.GetChecklist(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, checklist.Fields(), jsonOutput)
	return nil
}

func runChecklistCreate(ctx context.Context, c *trello.Client, w io.Writer, cardID, name string) error {
	checklist := trello.NewChecklist(c, nil).Set("idCard", cardID)
	if name != "" {
		checklist.Set("name", name)
	}
	created, err := checklist.Save(ctx)
	if err != nil {
		return err
	}
	printRecord(w, created.Fields(), jsonOutput)
	return nil
}

func runChecklistItems(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	items, err := trello.NewChecklist(c, nil).SetID(id).GetCheckItems(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, items, []string{"id", "name", "state"}, "No items found", jsonOutput)
	return nil
}

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

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Work with cards",
}

var cardShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show card details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runCardShow(ctx, c, os.Stdout, args[0])
		}))
	},
}

var cardCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a card",
	Long: `Create a card in a list. Without --list the list from trello.toml is used.
--pos is top, bottom (the default) or a positive number.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listID, _ := cmd.Flags().GetString("list")
		desc, _ := cmd.Flags().GetString("desc")
		pos, _ := cmd.Flags().GetString("pos")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			if listID == "" {
				listID = cfg.DefaultList
			}
			return runCardCreate(ctx, c, os.Stdout, args[0], listID, desc, pos)
		}))
	},
}

var cardMoveCmd = &cobra.Command{
	Use:   "move <id>",
	Short: "Move a card to another list or position",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listID, _ := cmd.Flags().GetString("list")
		pos, _ := cmd.Flags().GetString("pos")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runCardMove(ctx, c, os.Stdout, args[0], listID, pos)
		}))
	},
}

var cardCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a card",
	Long: `Create a new card from an existing one, in the same list unless --list
is given. The copy is named "<name> Copy" unless --name is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		listID, _ := cmd.Flags().GetString("list")
		name, _ := cmd.Flags().GetString("name")
		keep, _ := cmd.Flags().GetStringSlice("keep")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runCardCopy(ctx, c, os.Stdout, args[0], listID, name, keep)
		}))
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runCardDelete(ctx, c, os.Stdout, args[0])
		}))
	},
}

var cardChecklistsCmd = &cobra.Command{
	Use:   "checklists <id>",
	Short: "List the checklists on a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runCardChecklists(ctx, c, os.Stdout, args[0])
		}))
	},
}

var cardActionsCmd = &cobra.Command{
	Use:   "actions <id>",
	Short: "Show recent activity on a card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runCardActions(ctx, c, os.Stdout, args[0])
		}))
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)

	cardCmd.AddCommand(cardShowCmd)
	cardCmd.AddCommand(cardCreateCmd)
	cardCmd.AddCommand(cardMoveCmd)
	cardCmd.AddCommand(cardCopyCmd)
	cardCmd.AddCommand(cardDeleteCmd)
	cardCmd.AddCommand(cardChecklistsCmd)
	cardCmd.AddCommand(cardActionsCmd)

	cardCreateCmd.Flags().String("list", "", "List to add the card to")
	cardCreateCmd.Flags().String("desc", "", "Card description")
	cardCreateCmd.Flags().String("pos", "", "Position: top, bottom or a positive number")
	cardMoveCmd.Flags().String("list", "", "Destination list")
	cardMoveCmd.Flags().String("pos", "", "Position: top, bottom or a positive number")
	cardCopyCmd.Flags().String("list", "", "List to put the copy in")
	cardCopyCmd.Flags().String("name", "", "Name of the copy")
	cardCopyCmd.Flags().StringSlice("keep", nil, "Fields to keep from the source card")
}

func runCardShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	card, err := c.GetCard(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, card.Fields(), jsonOutput)
	return nil
}

func runCardCreate(ctx context.Context, c *trello.Client, w io.Writer, name, listID, desc, pos string) error {
	card := trello.NewCard(c, nil).Set("name", name).Set("idList", listID)
	if desc != "" {
		card.Set("desc", desc)
	}
	p, ok, err := positionFlag(pos)
	if err != nil {
		return err
	}
	if ok {
		card.SetPosition(p)
	}

	created, err := card.Save(ctx)
	if err != nil {
		return err
	}
	printRecord(w, created.Fields(), jsonOutput)
	return nil
}

// runCardMove sends only the list and position so other fields are left alone.
func runCardMove(ctx context.Context, c *trello.Client, w io.Writer, id, listID, pos string) error {
	if listID == "" && pos == "" {
		return &usageError{"nothing to do: pass --list, --pos or both"}
	}

	card := trello.NewCard(c, nil).SetID(id)
	if listID != "" {
		card.Set("idList", listID)
	}
	p, ok, err := positionFlag(pos)
	if err != nil {
		return err
	}
	if ok {
		card.SetPosition(p)
	}

	moved, err := card.Update(ctx)
	if err != nil {
		return err
	}
	printSuccess(w, fmt.Sprintf("Moved card %s to list %s", moved.ID(), moved.GetString("idList")), jsonOutput)
	return nil
}

func runCardCopy(ctx context.Context, c *trello.Client, w io.Writer, id, listID, name string, keep []string) error {
	source, err := c.GetCard(ctx, id)
	if err != nil {
		return err
	}

	var opts []trello.CopyOption
	if listID != "" {
		opts = append(opts, trello.WithTargetList(listID))
	}
	if name != "" {
		opts = append(opts, trello.WithCopyName(name))
	}
	if len(keep) > 0 {
		opts = append(opts, trello.WithKeepFromSource(keep...))
	}

	dup, err := source.Copy(ctx, opts...)
	if err != nil {
		return err
	}
	printRecord(w, dup.Fields(), jsonOutput)
	return nil
}

func runCardDelete(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	if err := trello.NewCard(c, nil).SetID(id).Delete(ctx); err != nil {
		return err
	}
	printSuccess(w, fmt.Sprintf("Deleted card %s", id), jsonOutput)
	return nil
}

func runCardChecklists(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	checklists, err := trello.NewCard(c, nil).SetID(id).GetChecklists(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, recordsOf(checklists), []string{"id", "name"}, "No checklists found", jsonOutput)
	return nil
}

func runCardActions(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	actions, err := trello.NewCard(c, nil).SetID(id).GetActions(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, recordsOf(actions), []string{"id", "type", "date"}, "No actions found", jsonOutput)
	return nil
}

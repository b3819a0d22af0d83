package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Work with lists",
}

var listShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show list details",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultList, "list")
			if err != nil {
				return err
			}
			return runListShow(ctx, c, os.Stdout, id)
		}))
	},
}

var listCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a list on a board",
	Long: `Create a list. --pos is top, bottom (the default) or a positive number.
Without --board the board from trello.toml is used.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		boardID, _ := cmd.Flags().GetString("board")
		pos, _ := cmd.Flags().GetString("pos")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			if boardID == "" {
				boardID = cfg.DefaultBoard
			}
			return runListCreate(ctx, c, os.Stdout, args[0], boardID, pos)
		}))
	},
}

var listCardsCmd = &cobra.Command{
	Use:   "cards [id]",
	Short: "List the cards in a list",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultList, "list")
			if err != nil {
				return err
			}
			return runListCards(ctx, c, os.Stdout, id, filter)
		}))
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.AddCommand(listShowCmd)
	listCmd.AddCommand(listCreateCmd)
	listCmd.AddCommand(listCardsCmd)

	listCreateCmd.Flags().String("board", "", "Board to add the list to")
	listCreateCmd.Flags().String("pos", "", "Position: top, bottom or a positive number")
	listCardsCmd.Flags().String("filter", "open", "open, closed or all")
}

// positionFlag parses a --pos value. Empty means the API default.
func positionFlag(pos string) (trello.Position, bool, error) {
	if pos == "" {
		return trello.Position{}, false, nil
	}
	p, err := trello.ParsePosition(pos)
	if err != nil {
		return trello.Position{}, false, err
	}
	return p, true, nil
}

func runListShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	list, err := c.GetLane(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, list.Fields(), jsonOutput)
	return nil
}

func runListCreate(ctx context.Context, c *trello.Client, w io.Writer, name, boardID, pos string) error {
	list := trello.NewLane(c, nil).Set("name", name).Set("idBoard", boardID)
	p, ok, err := positionFlag(pos)
	if err != nil {
		return err
	}
	if ok {
		list.SetPosition(p)
	}

	created, err := list.Save(ctx)
	if err != nil {
		return err
	}
	printRecord(w, created.Fields(), jsonOutput)
	return nil
}

func runListCards(ctx context.Context, c *trello.Client, w io.Writer, id, filter string) error {
	cards, err := trello.NewLane(c, nil).SetID(id).GetCards(ctx, filterQuery(filter))
	if err != nil {
		return err
	}
	return printCards(w, recordsOf(cards), jsonOutput)
}

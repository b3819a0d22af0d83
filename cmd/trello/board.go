package main

import (
	"context"
	"io"
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Work with boards",
}

var boardShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show board details",
	Long:  `Show a board. Without an id the board from trello.toml is used.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultBoard, "board")
			if err != nil {
				return err
			}
			return runBoardShow(ctx, c, os.Stdout, id)
		}))
	},
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your boards",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runBoardList(ctx, c, os.Stdout, "me", filter)
		}))
	},
}

var boardCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a board",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		desc, _ := cmd.Flags().GetString("desc")
		org, _ := cmd.Flags().GetString("org")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runBoardCreate(ctx, c, os.Stdout, args[0], desc, org)
		}))
	},
}

var boardCopyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a board",
	Long: `Create a new board from an existing one. The copy is named
"<name> Copy" unless --name is given.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name, _ := cmd.Flags().GetString("name")
		keep, _ := cmd.Flags().GetStringSlice("keep")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runBoardCopy(ctx, c, os.Stdout, args[0], name, keep)
		}))
	},
}

var boardListsCmd = &cobra.Command{
	Use:   "lists [id]",
	Short: "List the lists on a board",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultBoard, "board")
			if err != nil {
				return err
			}
			return runBoardLists(ctx, c, os.Stdout, id, filter)
		}))
	},
}

var boardCardsCmd = &cobra.Command{
	Use:   "cards [id]",
	Short: "List the cards on a board",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultBoard, "board")
			if err != nil {
				return err
			}
			return runBoardCards(ctx, c, os.Stdout, id, filter)
		}))
	},
}

var boardActionsCmd = &cobra.Command{
	Use:   "actions [id]",
	Short: "Show recent activity on a board",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultBoard, "board")
			if err != nil {
				return err
			}
			return runBoardActions(ctx, c, os.Stdout, id)
		}))
	},
}

var boardMembersCmd = &cobra.Command{
	Use:   "members [id]",
	Short: "List the members of a board",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, err := idOrDefault(args, cfg.DefaultBoard, "board")
			if err != nil {
				return err
			}
			return runBoardMembers(ctx, c, os.Stdout, id)
		}))
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.AddCommand(boardShowCmd)
	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardCreateCmd)
	boardCmd.AddCommand(boardCopyCmd)
	boardCmd.AddCommand(boardListsCmd)
	boardCmd.AddCommand(boardCardsCmd)
	boardCmd.AddCommand(boardActionsCmd)
	boardCmd.AddCommand(boardMembersCmd)

	boardListCmd.Flags().String("filter", "open", "open, closed or all")
	boardCreateCmd.Flags().String("desc", "", "Board description")
	boardCreateCmd.Flags().String("org", "", "Organization the board belongs to")
	boardCopyCmd.Flags().String("name", "", "Name of the copy")
	boardCopyCmd.Flags().StringSlice("keep", nil, "Fields to keep from the source board")
	boardListsCmd.Flags().String("filter", "open", "open, closed or all")
	boardCardsCmd.Flags().String("filter", "open", "open, closed or all")
}

// filterQuery builds the query for the filter flag. open is the API default.
func filterQuery(filter string) url.Values {
	if filter == "" || filter == "open" {
		return nil
	}
	return url.Values{"filter": {filter}}
}

func runBoardShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	board, err := c.GetBoard(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, board.Fields(), jsonOutput)
	return nil
}

func runBoardList(ctx context.Context, c *trello.Client, w io.Writer, memberID, filter string) error {
	boards, err := trello.NewMember(c, nil).SetID(memberID).GetBoards(ctx, filterQuery(filter))
	if err != nil {
		return err
	}
	printTable(w, recordsOf(boards), []string{"id", "name", "url"}, "No boards found", jsonOutput)
	return nil
}

func runBoardCreate(ctx context.Context, c *trello.Client, w io.Writer, name, desc, org string) error {
	board := trello.NewBoard(c, nil).Set("name", name)
	if desc != "" {
		board.Set("desc", desc)
	}
	if org != "" {
		board.Set("idOrganization", org)
	}
	created, err := board.Save(ctx)
	if err != nil {
		return err
	}
	printRecord(w, created.Fields(), jsonOutput)
	return nil
}

func runBoardCopy(ctx context.Context, c *trello.Client, w io.Writer, id, name string, keep []string) error {
	source, err := c.GetBoard(ctx, id)
	if err != nil {
		return err
	}

	var opts []trello.CopyOption
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

func runBoardLists(ctx context.Context, c *trello.Client, w io.Writer, id, filter string) error {
	lists, err := trello.NewBoard(c, nil).SetID(id).GetLists(ctx, filterQuery(filter))
	if err != nil {
		return err
	}
	printTable(w, recordsOf(lists), []string{"id", "name", "pos"}, "No lists found", jsonOutput)
	return nil
}

func runBoardCards(ctx context.Context, c *trello.Client, w io.Writer, id, filter string) error {
	cards, err := trello.NewBoard(c, nil).SetID(id).GetCards(ctx, filterQuery(filter))
	if err != nil {
		return err
	}
	return printCards(w, recordsOf(cards), jsonOutput)
}

func runBoardActions(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	actions, err := trello.NewBoard(c, nil).SetID(id).GetActions(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, recordsOf(actions), []string{"id", "type", "date"}, "No actions found", jsonOutput)
	return nil
}

func runBoardMembers(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	members, err := trello.NewBoard(c, nil).SetID(id).GetMembers(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, recordsOf(members), []string{"id", "username", "fullName"}, "No members found", jsonOutput)
	return nil
}

package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/airyra/trello/internal/config"
	"github.com/airyra/trello/pkg/trello"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Work with members",
	Long:  `Commands for members. The id defaults to "me", the owner of the token.`,
}

var memberShowCmd = &cobra.Command{
	Use:   "show [id|username]",
	Short: "Show member details",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, _ := idOrDefault(args, "me", "member")
			return runMemberShow(ctx, c, os.Stdout, id)
		}))
	},
}

var memberBoardsCmd = &cobra.Command{
	Use:   "boards [id|username]",
	Short: "List a member's boards",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter, _ := cmd.Flags().GetString("filter")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, _ := idOrDefault(args, "me", "member")
			return runBoardList(ctx, c, os.Stdout, id, filter)
		}))
	},
}

var memberOrgsCmd = &cobra.Command{
	Use:   "orgs [id|username]",
	Short: "List a member's organizations",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, _ := idOrDefault(args, "me", "member")
			return runMemberOrgs(ctx, c, os.Stdout, id)
		}))
	},
}

var memberCardsCmd = &cobra.Command{
	Use:   "cards [id|username]",
	Short: "List the cards a member is assigned to",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			id, _ := idOrDefault(args, "me", "member")
			return runMemberCards(ctx, c, os.Stdout, id)
		}))
	},
}

var orgCmd = &cobra.Command{
	Use:   "org",
	Short: "Work with organizations",
}

var orgShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Show organization details",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runOrgShow(ctx, c, os.Stdout, args[0])
		}))
	},
}

var orgCreateCmd = &cobra.Command{
	Use:   "create <display-name>",
	Short: "Create an organization",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		desc, _ := cmd.Flags().GetString("desc")
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runOrgCreate(ctx, c, os.Stdout, args[0], desc)
		}))
	},
}

var orgBoardsCmd = &cobra.Command{
	Use:   "boards <id|name>",
	Short: "List an organization's boards",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		handleError(withClient(func(ctx context.Context, c *trello.Client, cfg *config.ResolvedConfig) error {
			return runOrgBoards(ctx, c, os.Stdout, args[0])
		}))
	},
}

func init() {
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(orgCmd)

	memberCmd.AddCommand(memberShowCmd)
	memberCmd.AddCommand(memberBoardsCmd)
	memberCmd.AddCommand(memberOrgsCmd)
	memberCmd.AddCommand(memberCardsCmd)

	orgCmd.AddCommand(orgShowCmd)
	orgCmd.AddCommand(orgCreateCmd)
	orgCmd.AddCommand(orgBoardsCmd)

	memberBoardsCmd.Flags().String("filter", "open", "open, closed or all")
	orgCreateCmd.Flags().String("desc", "", "Organization description")
}

func runMemberShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	member, err := c.GetMember(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, member.Fields(), jsonOutput)
	return nil
}

func runMemberOrgs(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	orgs, err := trello.NewMember(c, nil).SetID(id).GetOrganizations(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, recordsOf(orgs), []string{"id", "name", "displayName"}, "No organizations found", jsonOutput)
	return nil
}

func runMemberCards(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	cards, err := trello.NewMember(c, nil).SetID(id).GetCards(ctx, nil)
	if err != nil {
		return err
	}
	return printCards(w, recordsOf(cards), jsonOutput)
}

func runOrgShow(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	org, err := c.GetOrganization(ctx, id)
	if err != nil {
		return err
	}
	printRecord(w, org.Fields(), jsonOutput)
	return nil
}

func runOrgCreate(ctx context.Context, c *trello.Client, w io.Writer, displayName, desc string) error {
	org := trello.NewOrganization(c, nil).Set("displayName", displayName)
	if desc != "" {
		org.Set("desc", desc)
	}
	created, err := org.Save(ctx)
	if err != nil {
		return err
	}
	printRecord(w, created.Fields(), jsonOutput)
	return nil
}

func runOrgBoards(ctx context.Context, c *trello.Client, w io.Writer, id string) error {
	boards, err := trello.NewOrganization(c, nil).SetID(id).GetBoards(ctx, nil)
	if err != nil {
		return err
	}
	printTable(w, recordsOf(boards), []string{"id", "name", "url"}, "No boards found", jsonOutput)
	return nil
}

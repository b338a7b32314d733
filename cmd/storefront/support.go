package main

import (
	"fmt"

	"github.com/spf13/cobra"

	supportdomain "github.com/Apurer/go-water-storefront/internal/domains/support/domain"
)

func newSupportCmd(c *cli) *cobra.Command {
	support := &cobra.Command{Use: "support", Short: "Customer support tickets"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your tickets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tickets, err := c.app.Support.Tickets(cmd.Context())
			if err != nil {
				return err
			}
			if len(tickets) == 0 {
				printf(cmd, "No tickets\n")
				return nil
			}
			w := newTable(cmd.OutOrStdout())
			defer w.Flush()
			fmt.Fprintln(w, "ID\tSTATUS\tTITLE")
			for _, t := range tickets {
				fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Status, t.Title)
			}
			return nil
		},
	}

	var title, description string
	open := &cobra.Command{
		Use:   "open",
		Short: "Open a new ticket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ticket, err := c.app.Support.Open(cmd.Context(), title, description)
			if err != nil {
				return err
			}
			printf(cmd, "Ticket opened: %s\n", ticket.ID)
			return nil
		},
	}
	open.Flags().StringVar(&title, "title", "", "short summary")
	open.Flags().StringVar(&description, "description", "", "what went wrong")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a ticket and its conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := c.app.Support.Ticket(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTicket(cmd, ticket)
			return nil
		},
	}

	var message string
	comment := &cobra.Command{
		Use:   "comment <id>",
		Short: "Add a message to a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticket, err := c.app.Support.Comment(cmd.Context(), args[0], message)
			if err != nil {
				return err
			}
			printTicket(cmd, ticket)
			return nil
		},
	}
	comment.Flags().StringVar(&message, "message", "", "message text")

	support.AddCommand(list, open, show, comment)
	return support
}

func printTicket(cmd *cobra.Command, t supportdomain.Ticket) {
	printf(cmd, "%s [%s]\n", t.Title, t.Status)
	printf(cmd, "Opened %s\n\n%s\n", formatTime(t.CreatedAt), t.Description)
	for _, cm := range t.Comments {
		printf(cmd, "\n%s (%s):\n  %s\n", cm.Author(), formatTime(cm.CreatedAt), cm.Message)
	}
}

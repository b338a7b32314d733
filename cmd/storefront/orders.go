package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	ordersdomain "github.com/Apurer/go-water-storefront/internal/domains/orders/domain"
)

func newOrdersCmd(c *cli) *cobra.Command {
	orders := &cobra.Command{Use: "orders", Short: "Order history and details"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			history, err := c.app.Orders.History(cmd.Context())
			if err != nil {
				return err
			}
			if len(history) == 0 {
				printf(cmd, "No orders yet\n")
				return nil
			}
			w := newTable(cmd.OutOrStdout())
			defer w.Flush()
			fmt.Fprintln(w, "ORDER\tPLACED\tSTATUS\tTOTAL")
			for _, o := range history {
				fmt.Fprintf(w, "#%s\t%s\t%s\t%s\n", o.ShortID(), formatTime(o.CreatedAt), o.Status, o.Total)
			}
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order; the last six characters of the id are enough",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := c.app.Orders.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printOrder(cmd, order)
			return nil
		},
	}

	orders.AddCommand(list, show)
	return orders
}

func printOrder(cmd *cobra.Command, o ordersdomain.Order) {
	w := newTable(cmd.OutOrStdout())
	defer w.Flush()
	fmt.Fprintf(w, "Order:\t%s\n", o.ID)
	fmt.Fprintf(w, "Status:\t%s\n", o.Status)
	fmt.Fprintf(w, "Placed:\t%s\n", formatTime(o.CreatedAt))
	if o.ETA != nil {
		fmt.Fprintf(w, "ETA:\t%s\n", formatTime(o.ETA))
	}
	if o.DeliveredAt != nil {
		fmt.Fprintf(w, "Delivered:\t%s\n", formatTime(o.DeliveredAt))
	}
	fmt.Fprintf(w, "Address:\t%s\n", o.Address)
	if o.Notes != "" {
		fmt.Fprintf(w, "Notes:\t%s\n", o.Notes)
	}
	fmt.Fprintf(w, "Payment:\t%s %s\n", o.PaymentMethod, o.PaymentStatus)
	for _, item := range o.Items {
		name := item.ProductName
		if name == "" {
			name = item.ProductID
		}
		fmt.Fprintf(w, "  %d x\t%s\n", item.Quantity, name)
	}
	fmt.Fprintf(w, "Total:\t%s\n", o.Total)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

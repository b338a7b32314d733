package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	checkoutdomain "github.com/Apurer/go-water-storefront/internal/domains/checkout/domain"
)

func newProductsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "products [query]",
		Short: "Browse the catalog, optionally searching names and descriptions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			products, err := c.app.Catalog.Products(cmd.Context(), query)
			if err != nil {
				return err
			}
			if len(products) == 0 {
				printf(cmd, "No products found\n")
				return nil
			}
			w := newTable(cmd.OutOrStdout())
			defer w.Flush()
			fmt.Fprintln(w, "ID\tNAME\tSIZE\tPRICE")
			for _, p := range products {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, formatLiters(p.SizeLiters), p.Price)
			}
			return nil
		},
	}
}

func newDealsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "deals",
		Short: "List current promotions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deals, err := c.app.Catalog.Deals(cmd.Context())
			if err != nil {
				return err
			}
			now := time.Now()
			shown := 0
			for _, d := range deals {
				if !d.ActiveAt(now) {
					continue
				}
				shown++
				printf(cmd, "%s\n", d.Title)
				if d.Description != "" {
					printf(cmd, "  %s\n", d.Description)
				}
			}
			if shown == 0 {
				printf(cmd, "No deals right now\n")
			}
			return nil
		},
	}
}

func newCheckoutCmd(c *cli) *cobra.Command {
	var (
		items []string
		req   checkoutdomain.Request
	)
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Order products; --item takes id or id:quantity and may repeat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			for _, raw := range items {
				id, qty, err := parseItem(raw)
				if err != nil {
					return err
				}
				product, err := c.app.Catalog.Product(ctx, id)
				if err != nil {
					return fmt.Errorf("%s: %w", id, err)
				}
				c.app.Cart.AddItem(product.Ref(), qty)
			}
			w := newTable(cmd.OutOrStdout())
			for _, line := range c.app.Cart.Items() {
				fmt.Fprintf(w, "%d x\t%s\t%s\n", line.Quantity, line.Name, line.Subtotal())
			}
			fmt.Fprintf(w, "Total\t\t%s\n", c.app.Cart.Total())
			w.Flush()

			receipt, err := c.app.Checkout.Checkout(ctx, req)
			if err != nil {
				return err
			}
			status := "pay on delivery"
			if receipt.Paid {
				status = "paid"
			}
			printf(cmd, "Order placed: %s (%s, %s)\n", receipt.OrderID, receipt.Total, status)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&items, "item", nil, "product id with optional quantity, e.g. 1:2")
	cmd.Flags().StringVar(&req.Address, "address", "", "delivery address (defaults to the profile address)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "delivery notes")
	cmd.Flags().StringVar(&req.PaymentMethod, "payment", string(checkoutdomain.PaymentCOD), "cod or card")
	return cmd
}

// parseItem reads "id" or "id:qty".
func parseItem(raw string) (string, int, error) {
	id, rawQty, hasQty := strings.Cut(strings.TrimSpace(raw), ":")
	if id == "" {
		return "", 0, fmt.Errorf("invalid --item %q: missing product id", raw)
	}
	if !hasQty {
		return id, 1, nil
	}
	qty, err := strconv.Atoi(rawQty)
	if err != nil || qty < 1 {
		return "", 0, fmt.Errorf("invalid --item %q: quantity must be a positive integer", raw)
	}
	return id, qty, nil
}

func formatLiters(l float64) string {
	if l <= 0 {
		return "-"
	}
	return strconv.FormatFloat(l, 'f', -1, 64) + "L"
}

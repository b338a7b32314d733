package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appstorefront "github.com/Apurer/go-water-storefront/internal/app/storefront"
)

// cli carries the App between cobra hooks and commands.
type cli struct {
	loadApp func(ctx context.Context) (*appstorefront.App, error)
	app     *appstorefront.App
}

var errNotSignedIn = errors.New("not signed in; run `storefront login` first")

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "storefront",
		Short:         "Order water, track deliveries and talk to support",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, err := c.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			c.app = app
			return app.Session.Restore(cmd.Context())
		},
	}
	root.AddCommand(
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newProfileCmd(c),
		newPasswordCmd(c),
		newProductsCmd(c),
		newDealsCmd(c),
		newCheckoutCmd(c),
		newOrdersCmd(c),
		newSupportCmd(c),
		newStatusCmd(c),
		newAboutCmd(c),
		newDemoCmd(c),
	)
	return root
}

// close releases the App opened by the pre-run hook, if any.
func (c *cli) close() {
	if c.app != nil {
		c.app.Close()
		c.app = nil
	}
}

func (c *cli) requireSession() error {
	if !c.app.Session.IsAuthenticated() {
		return errNotSignedIn
	}
	return nil
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

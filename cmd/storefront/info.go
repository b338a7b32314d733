package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show API health, mode and session state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			health, err := c.app.Catalog.Health(cmd.Context())
			if err != nil {
				health = "unreachable: " + err.Error()
			}
			snap := c.app.Session.Snapshot()
			w := newTable(cmd.OutOrStdout())
			defer w.Flush()
			fmt.Fprintf(w, "API:\t%s\n", health)
			fmt.Fprintf(w, "Mode:\t%s\n", modeName(c.app.Demo))
			fmt.Fprintf(w, "Session:\t%s\n", snap.State)
			if snap.User != nil {
				fmt.Fprintf(w, "User:\t%s\n", displayName(snap.User))
			}
			return nil
		},
	}
}

func newAboutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "About the service and how to reach us",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			about, err := c.app.Catalog.About(cmd.Context())
			if err != nil {
				return err
			}
			if about.SiteName != "" {
				printf(cmd, "%s\n\n", about.SiteName)
			}
			if about.MissionStatement != "" {
				printf(cmd, "Mission: %s\n", about.MissionStatement)
			}
			if about.VisionStatement != "" {
				printf(cmd, "Vision: %s\n", about.VisionStatement)
			}
			for _, contact := range []string{about.ContactPhone, about.ContactEmail, about.Address} {
				if contact != "" {
					printf(cmd, "%s\n", contact)
				}
			}
			for _, link := range append(about.SocialLinks, about.UsefulLinks...) {
				printf(cmd, "%s %s\n", link.Label, link.URL)
			}
			return nil
		},
	}
}

func newDemoCmd(c *cli) *cobra.Command {
	demo := &cobra.Command{Use: "demo", Short: "Switch between the live API and built-in demo data"}
	set := func(on bool) *cobra.Command {
		name := "off"
		if on {
			name = "on"
		}
		return &cobra.Command{
			Use:   name,
			Short: "Turn demo mode " + name + " for later commands",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.app.Preferences.SetDemoMode(cmd.Context(), on); err != nil {
					return err
				}
				printf(cmd, "Demo mode %s\n", name)
				// tokens from one backend mean nothing to the other
				if c.app.Config.Demo == nil && on != c.app.Demo && c.app.Session.IsAuthenticated() {
					if err := c.app.Session.Logout(cmd.Context()); err != nil {
						return err
					}
					printf(cmd, "Signed out; sign in again for %s mode\n", modeName(on))
				}
				if c.app.Config.Demo != nil && *c.app.Config.Demo != on {
					printf(cmd, "Note: STOREFRONT_DEMO is set and takes precedence\n")
				}
				return nil
			},
		}
	}
	status := &cobra.Command{
		Use:   "status",
		Short: "Show whether demo mode is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printf(cmd, "%s\n", modeName(c.app.Demo))
			return nil
		},
	}
	demo.AddCommand(set(true), set(false), status)
	return demo
}

func modeName(demo bool) string {
	if demo {
		return "demo"
	}
	return "live"
}

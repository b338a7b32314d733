package main

import (
	"fmt"

	"github.com/spf13/cobra"

	sessiondomain "github.com/Apurer/go-water-storefront/internal/domains/session/domain"
)

func newLoginCmd(c *cli) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			printf(cmd, "Signed in as %s\n", displayName(c.app.Session.User()))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newRegisterCmd(c *cli) *cobra.Command {
	var reg sessiondomain.Registration
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.Register(cmd.Context(), reg); err != nil {
				return err
			}
			printf(cmd, "Welcome, %s\n", displayName(c.app.Session.User()))
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Password, "password", "", "password (at least 6 characters)")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&reg.CNIC, "cnic", "", "national identity card number")
	return cmd
}

func newLogoutCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session on this device",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			printf(cmd, "Signed out\n")
			return nil
		},
	}
}

func newWhoamiCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile, refreshed from the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requireSession(); err != nil {
				return err
			}
			user, err := c.app.Session.FetchMe(cmd.Context())
			if err != nil {
				return err
			}
			printUser(cmd, user)
			return nil
		},
	}
}

func newProfileCmd(c *cli) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Manage your profile"}

	var name, phone, address, avatar string
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; only the flags given are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var patch sessiondomain.ProfilePatch
			flags := cmd.Flags()
			if flags.Changed("name") {
				patch.Name = &name
			}
			if flags.Changed("phone") {
				patch.Phone = &phone
			}
			if flags.Changed("address") {
				patch.Address = &address
			}
			if flags.Changed("avatar") {
				patch.Avatar = &avatar
			}
			user, err := c.app.Session.UpdateMe(cmd.Context(), patch)
			if err != nil {
				return err
			}
			printUser(cmd, user)
			return nil
		},
	}
	update.Flags().StringVar(&name, "name", "", "full name")
	update.Flags().StringVar(&phone, "phone", "", "phone number")
	update.Flags().StringVar(&address, "address", "", "default delivery address")
	update.Flags().StringVar(&avatar, "avatar", "", "avatar image URL")
	profile.AddCommand(update)
	return profile
}

func newPasswordCmd(c *cli) *cobra.Command {
	password := &cobra.Command{Use: "password", Short: "Change or reset your password"}

	var current, next string
	change := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			printf(cmd, "Password changed\n")
			return nil
		},
	}
	change.Flags().StringVar(&current, "current", "", "current password")
	change.Flags().StringVar(&next, "new", "", "new password (at least 6 characters)")

	reset := &cobra.Command{Use: "reset", Short: "Reset a forgotten password"}

	var email string
	request := &cobra.Command{
		Use:   "request",
		Short: "Ask for a password reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ack, err := c.app.Session.RequestPasswordReset(cmd.Context(), email)
			if err != nil {
				return err
			}
			printf(cmd, "Check your email for reset instructions\n")
			if ack.Token != "" {
				printf(cmd, "Reset token: %s\n", ack.Token)
			}
			return nil
		},
	}
	request.Flags().StringVar(&email, "email", "", "account email")

	var token, newPassword string
	confirm := &cobra.Command{
		Use:   "confirm",
		Short: "Set a new password with a reset token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Session.ConfirmPasswordReset(cmd.Context(), token, newPassword); err != nil {
				return err
			}
			printf(cmd, "Password reset; sign in with your new password\n")
			return nil
		},
	}
	confirm.Flags().StringVar(&token, "token", "", "reset token")
	confirm.Flags().StringVar(&newPassword, "password", "", "new password (at least 6 characters)")

	reset.AddCommand(request, confirm)
	password.AddCommand(change, reset)
	return password
}

func printUser(cmd *cobra.Command, user *sessiondomain.User) {
	if user == nil {
		printf(cmd, "Not signed in\n")
		return
	}
	w := newTable(cmd.OutOrStdout())
	defer w.Flush()
	rows := [][2]string{
		{"Name", user.Name},
		{"Email", user.Email},
		{"Phone", user.Phone},
		{"Address", user.Address},
		{"CNIC", user.CNIC},
	}
	for _, row := range rows {
		if row[1] != "" {
			fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
		}
	}
}

func displayName(user *sessiondomain.User) string {
	switch {
	case user == nil:
		return "unknown user"
	case user.Name != "":
		return user.Name
	default:
		return user.Email
	}
}

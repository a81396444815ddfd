package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dtroode/shopfront/internal/model"
)

func (c *cli) signupCmd() *cobra.Command {
	var fullName, email, password string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.checkRoute(model.RouteSignUp); err != nil {
				return err
			}
			if err := c.app.session.Signup(cmd.Context(), fullName, email, password); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Registered %s. Run login to continue.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "full name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.checkRoute(model.RouteSignIn); err != nil {
				return err
			}
			user, err := c.app.session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.out, "Logged in as %s <%s>.\n", user.FullName, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Logged out.")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			user, ok := c.app.session.CurrentUser()
			if !ok {
				fmt.Fprintln(c.out, "Not logged in.")
				return nil
			}
			fmt.Fprintf(c.out, "%s <%s>\n", user.FullName, user.Email)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	var fullName, email string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the logged-in user's profile",
		Long: `Without flags, prints the profile. With --name or --email, updates it;
an omitted flag keeps the current value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.checkRoute(model.RouteProfile); err != nil {
				return err
			}
			user, _ := c.app.session.CurrentUser()

			nameSet := cmd.Flags().Changed("name")
			emailSet := cmd.Flags().Changed("email")
			if nameSet || emailSet {
				if !nameSet {
					fullName = user.FullName
				}
				if !emailSet {
					email = user.Email
				}
				updated, err := c.app.session.UpdateProfile(cmd.Context(), fullName, email)
				if err != nil {
					return err
				}
				user = updated
			}

			fmt.Fprintf(c.out, "Name:  %s\nEmail: %s\n", user.FullName, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&fullName, "name", "", "new full name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")

	return cmd
}

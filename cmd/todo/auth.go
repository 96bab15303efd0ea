package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/go-todo-client/internal/ui"
)

func newRegisterCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := credentialsFromFlags(cmd)
			creds.Name, _ = cmd.Flags().GetString("name")
			if err := ui.RunRegisterForm(&creds); err != nil {
				return err
			}

			if _, err := a.client.Register(cmd.Context(), creds.Email, creds.Password, creds.Name); err != nil {
				return err
			}
			ui.PrintSuccess(a.out, fmt.Sprintf("Registered and logged in as %s", creds.Email))
			return nil
		},
	}
	addCredentialFlags(cmd)
	cmd.Flags().String("name", "", "Display name (optional)")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := credentialsFromFlags(cmd)
			if err := ui.RunLoginForm(&creds); err != nil {
				return err
			}

			if _, err := a.client.Login(cmd.Context(), creds.Email, creds.Password); err != nil {
				return err
			}
			ui.PrintSuccess(a.out, fmt.Sprintf("Logged in as %s", creds.Email))
			return nil
		},
	}
	addCredentialFlags(cmd)
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.client.Logout(cmd.Context())
			ui.PrintSuccess(a.out, "Logged out")
			return nil
		},
	}
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the API and session in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loggedIn, err := a.client.Session().Authenticated(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to read session: %w", err)
			}

			fmt.Fprintf(a.out, "API:       %s\n", a.client.BaseURL())
			fmt.Fprintf(a.out, "Session:   %s\n", a.cfg.Session.Store)
			if loggedIn {
				fmt.Fprintln(a.out, "Logged in: yes")
			} else {
				fmt.Fprintln(a.out, "Logged in: no")
			}
			return nil
		},
	}
}

func addCredentialFlags(cmd *cobra.Command) {
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password (prompted when omitted)")
}

func credentialsFromFlags(cmd *cobra.Command) ui.Credentials {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	return ui.Credentials{Email: email, Password: password}
}

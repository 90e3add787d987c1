package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wangtaito/workout-project/internal/app"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/services"
)

func newLoginCommand(opts *rootOptions) *cobra.Command {
	var username, password, role string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				secret, err := passwordFromFlagOrPrompt(cmd, password, "Password: ")
				if err != nil {
					return err
				}
				user, err := runtime.Services.Session.Login(username, secret, role)
				if err != nil {
					if errors.Is(err, services.ErrAuthCredentialsInvalid) {
						return errors.New("login failed: check username, password and role")
					}
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", user.Username, user.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name")
	cmd.Flags().StringVar(&password, "password", "", "Password; prompted for when omitted")
	cmd.Flags().StringVar(&role, "role", models.RoleUser, "Role to sign in as")
	return cmd
}

func newLogoutCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				if err := runtime.Services.Session.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
				return nil
			})
		},
	}
}

func newWhoamiCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				user, err := runtime.Services.Session.Current()
				if errors.Is(err, services.ErrNoSession) {
					fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID, user.Username, user.Role)
				return nil
			})
		},
	}
}

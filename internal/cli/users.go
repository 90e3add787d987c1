package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wangtaito/workout-project/internal/app"
	"github.com/wangtaito/workout-project/internal/config"
	"github.com/wangtaito/workout-project/internal/models"
	"github.com/wangtaito/workout-project/internal/security"
)

const (
	temporaryPasswordAlphabet  = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	minTemporaryPasswordLength = 8
	temporaryPasswordLength    = 12
)

var errUserDirectoryVolatile = errors.New("user accounts are only kept by the sqlite backend")

func newUsersCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(
		newUsersListCommand(opts),
		newUsersCreateCommand(opts),
		newUsersDeleteCommand(opts),
		newUsersResetPasswordCommand(opts),
	)
	return cmd
}

// withUserDirectory refuses to change accounts on backends that forget them
// when the process exits.
func withUserDirectory(cmd *cobra.Command, opts *rootOptions, run func(*app.Runtime) error) error {
	return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
		if runtime.Config.StorageBackend != config.StorageSQLite {
			return errUserDirectoryVolatile
		}
		return run(runtime)
	})
}

func newUsersListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, opts, func(runtime *app.Runtime) error {
				users, err := runtime.Services.Users.ListUsers()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "ID\tUSERNAME\tROLE\tPASSWORD")
				for _, user := range users {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", user.ID, user.Username, user.Role, user.Password)
				}
				return nil
			})
		},
	}
}

func newUsersCreateCommand(opts *rootOptions) *cobra.Command {
	var username, password, role string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserDirectory(cmd, opts, func(runtime *app.Runtime) error {
				secret, err := passwordFromFlagOrPrompt(cmd, password, "Password: ")
				if err != nil {
					return err
				}
				user, err := runtime.Services.Users.CreateUser(username, secret, role)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s)\n", user.Role, user.Username, user.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password; prompted for when omitted")
	cmd.Flags().StringVar(&role, "role", models.RoleUser, "Role: admin, trainer or user")
	return cmd
}

func newUsersDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserDirectory(cmd, opts, func(runtime *app.Runtime) error {
				deleted, err := runtime.Services.Users.DeleteUser(args[0])
				if err != nil {
					return err
				}
				if !deleted {
					return fmt.Errorf("user %s not found", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
				return nil
			})
		},
	}
}

func newUsersResetPasswordCommand(opts *rootOptions) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Set a new password, generating a temporary one when none is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withUserDirectory(cmd, opts, func(runtime *app.Runtime) error {
				secret := password
				generated := secret == ""
				if generated {
					var err error
					if secret, err = generateTemporaryPassword(temporaryPasswordLength); err != nil {
						return fmt.Errorf("generate temporary password: %w", err)
					}
				}
				if err := runtime.Services.Users.ResetPassword(args[0], secret); err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "Password reset successful")
				if generated {
					fmt.Fprintf(cmd.OutOrStdout(), "Temporary password: %s\n", secret)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "New password")
	return cmd
}

func generateTemporaryPassword(length int) (string, error) {
	return security.RandomString(max(length, minTemporaryPasswordLength), temporaryPasswordAlphabet)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newUserCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newUserCreateCommand(a))
	return cmd
}

func newUserCreateCommand(a *app) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a user with a password",
		Example: `  hrmctl user create --name "Ada Lovelace" --email ada@example.com --password 'correct-horse'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 8 {
				return fmt.Errorf("password must be at least 8 characters")
			}

			ctx := cmd.Context()
			authService, err := a.Auth(ctx)
			if err != nil {
				return err
			}

			user, _, err := authService.Register(ctx, name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d <%s>\n", user.ID, user.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "initial password (8 to 72 bytes)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

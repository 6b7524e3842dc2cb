package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCommand(a *app) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token for a user",
		Long: `Mint a JWT for an existing user without checking their password.
Meant for operators debugging a deployment; the token is as powerful as a login.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			authService, err := a.Auth(ctx)
			if err != nil {
				return err
			}

			user, token, err := authService.IssueToken(ctx, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token.Value)
			fmt.Fprintf(cmd.ErrOrStderr(), "user %d, expires %s\n", user.ID, token.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "user email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/gopawn/internal/domain"
	"github.com/iho/gopawn/internal/infrastructure/auth"
)

// tokenCmd mints actor tokens for local development against a server running
// with AUTH_ENABLED.
func tokenCmd() *cobra.Command {
	var (
		actor          domain.Actor
		secret, issuer string
		ttl            time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development actor token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return errors.New("--secret or JWT_SECRET is required")
			}
			if actor.ID == "" {
				return errors.New("--id is required")
			}

			token, err := auth.NewJWTManager(secret, issuer).Generate(&actor, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor.ID, "id", "", "Actor ID")
	cmd.Flags().StringVar(&actor.Username, "username", "", "Actor username")
	cmd.Flags().BoolVar(&actor.IsStaff, "is-staff", false, "Grant staff access")
	cmd.Flags().BoolVar(&actor.IsApproved, "is-approved", true, "Mark the actor as approved")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("JWT_SECRET"), "HMAC secret")
	cmd.Flags().StringVar(&issuer, "issuer", os.Getenv("JWT_ISSUER"), "Token issuer")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")

	return cmd
}

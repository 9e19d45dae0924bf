package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &clientOptions{}

	rootCmd := &cobra.Command{
		Use:           "gopawn-cli",
		Short:         "GoPawn CLI tool",
		Long:          `A command line interface for the GoPawn entry ledger: offline interest calculations, database migrations and API access.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("GOPAWN_URL", "http://localhost:8080"), "Base URL of the GoPawn API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("GOPAWN_TOKEN"), "Bearer token issued by the identity provider")
	rootCmd.PersistentFlags().StringVar(&opts.actorID, "actor", os.Getenv("GOPAWN_ACTOR"), "Actor ID sent as X-Actor-ID when the server trusts headers")
	rootCmd.PersistentFlags().BoolVar(&opts.staff, "staff", false, "Send X-Actor-Staff: true")
	rootCmd.PersistentFlags().BoolVar(&opts.approved, "approved", true, "Send X-Actor-Approved")

	rootCmd.AddCommand(
		interestCmd(),
		migrateCmd(),
		tokenCmd(),
		entriesCmd(opts),
		adminCmd(opts),
	)

	return rootCmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

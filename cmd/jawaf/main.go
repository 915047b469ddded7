// Package main provides the entry point for the jawaf case-tracking core.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version    = "0.1.0-dev"
	configPath string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "jawaf",
		Short:   "Accountability case tracking: versioned cases, role-gated lifecycle, deduplicating import",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(
		newServeCmd(),
		newImportCmd(),
		newMigrateCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

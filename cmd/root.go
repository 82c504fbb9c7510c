// Package cmd wires the CLI entrypoints.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/folioworks/folio/cmd/users"
	"github.com/folioworks/folio/internal/config"
	"github.com/folioworks/folio/internal/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Portfolio record service with role and ownership based access control",
	Long: `Folio serves portfolio and position records over a REST API.
Identities come from a user directory; access is governed by roles and
record ownership.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		logger.Setup(cfg.Debug)
		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("server-addr", "", "Server bind address (env: SERVER_ADDR)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging (env: DEBUG)")

	// Add subcommands
	rootCmd.AddCommand(users.UsersCmd)
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

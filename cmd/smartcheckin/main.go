package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/admin"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/migrate"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/server"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/sweep"
)

// @title Smart Check-in API
// @version 1.0
// @description Passkey registration, usernameless login and two-factor self check-in for unattended lodging.
// @BasePath /
// @securityDefinitions.basic BasicAuth
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:   "smartcheckin",
		Short: "Smart Check-in - passkey based self check-in",
		Long:  `Smart Check-in serves the guest check-in API and provides migration and maintenance commands.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		sweep.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package migrate

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartcheckin/smartcheckin/internal/infrastructure/database"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/migration"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/bootstrap"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

var (
	env        string
	configPath string
	steps      int
	useGorm    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
		Long:  `Manage database migrations: apply pending migrations, roll back, and show status.`,
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(
		newUpCommand(),
		newDownCommand(),
		newStatusCommand(),
	)

	return cmd
}

func newUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Run all pending migrations",
		Long:  `Apply all pending database migrations to bring the database schema up to date.`,
		RunE:  runUp,
	}

	cmd.Flags().BoolVar(&useGorm, "gorm", false, "Use GORM AutoMigrate instead of the SQL scripts (development only)")

	return cmd
}

func newDownCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "down",
		Short: "Rollback migrations",
		Long:  `Rollback a specified number of database migrations.`,
		RunE:  runDown,
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to rollback")

	return cmd
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		Long:  `Display the current migration version and status of the database.`,
		RunE:  runStatus,
	}
}

func initEnv() (string, logger.Interface, error) {
	cfg, log, err := bootstrap.Init(env, configPath)
	if err != nil {
		return "", nil, err
	}
	return cfg.Database.Driver, log, nil
}

func runUp(cmd *cobra.Command, args []string) error {
	driver, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	manager, err := migration.NewManager(driver, useGorm)
	if err != nil {
		return err
	}

	log.Infow("running migrations", "driver", driver, "strategy", manager.GetStrategy().GetName())

	if err := manager.Migrate(database.Get()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Migrations completed successfully")
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	if steps < 1 {
		return fmt.Errorf("steps must be at least 1")
	}

	driver, log, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := migration.NewGooseStrategy(driver)
	if err != nil {
		return err
	}

	log.Infow("rolling back migrations", "driver", driver, "steps", steps)

	if err := strategy.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("failed to rollback migrations: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Rolled back up to %d migration(s)\n", steps)
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	driver, _, err := initEnv()
	if err != nil {
		return err
	}
	defer database.Close()

	strategy, err := migration.NewGooseStrategy(driver)
	if err != nil {
		return err
	}

	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	states, err := strategy.Status(database.Get())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Current migration version: %d\n\n", version)
	for _, st := range states {
		applied := "pending"
		if st.Applied {
			applied = st.AppliedAt.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(out, "%5d  %-45s %s\n", st.Version, st.Path, applied)
	}
	return nil
}

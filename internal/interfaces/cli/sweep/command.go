package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartcheckin/smartcheckin/internal/application/maintenance/usecases"
	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/cache"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/config"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/database"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/repository"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/bootstrap"
	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

var (
	env        string
	configPath string
	timeout    time.Duration
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep-challenges",
		Short: "Delete expired WebAuthn challenges once",
		Long:  `Delete expired WebAuthn challenges from the configured challenge store and exit.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "Maximum time to spend sweeping")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(env, configPath)
	if err != nil {
		return err
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	store, closeStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	deleted, err := usecases.NewSweepExpiredChallengesUseCase(store, log).Execute(ctx)
	if err != nil {
		return fmt.Errorf("failed to sweep expired challenges: %w", err)
	}

	fmt.Printf("Deleted %d expired challenge(s)\n", deleted)
	return nil
}

func newStore(ctx context.Context, cfg *config.Config, log logger.Interface) (challenge.Store, func(), error) {
	if cfg.Challenge.Store != constants.ChallengeStoreRedis {
		return repository.NewChallengeRepository(database.Get(), log), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewChallengeStore(client, log), func() { _ = client.Close() }, nil
}

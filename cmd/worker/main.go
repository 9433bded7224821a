package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/smartcheckin/smartcheckin/internal/application/maintenance/usecases"
	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/cache"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/database"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/repository"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/scheduler"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/cli/bootstrap"
	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// The worker runs housekeeping for deployments where the API replicas have
// scheduler.enabled=false.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	if err := run(env); err != nil {
		fmt.Fprintf(os.Stderr, "worker failed: %v\n", err)
		os.Exit(1)
	}
}

func run(env string) error {
	cfg, log, err := bootstrap.Init(env, "")
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting housekeeping worker", "environment", env, "challenge_store", cfg.Challenge.Store)

	var store challenge.Store
	if cfg.Challenge.Store == constants.ChallengeStoreRedis {
		client, err := cache.NewRedisClient(context.Background(), &cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		store = cache.NewChallengeStore(client, log)
	} else {
		store = repository.NewChallengeRepository(database.Get(), log)
	}

	manager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	sweep := usecases.NewSweepExpiredChallengesUseCase(store, logger.NewLogger().With("job", "challenge-sweep"))
	if err := manager.RegisterChallengeSweepJob(sweep, cfg.Scheduler.ChallengeSweepInterval); err != nil {
		return fmt.Errorf("failed to register challenge sweep: %w", err)
	}

	manager.Start()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	if err := manager.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}

	log.Infow("housekeeping worker stopped")
	return nil
}

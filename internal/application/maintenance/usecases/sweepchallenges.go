package usecases

import (
	"context"
	"fmt"

	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/metrics"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// SweepExpiredChallengesUseCase removes challenges that were issued but never
// completed. It satisfies scheduler.BatchJob.
type SweepExpiredChallengesUseCase struct {
	challengeStore challenge.Store
	logger         logger.Interface
}

func NewSweepExpiredChallengesUseCase(challengeStore challenge.Store, logger logger.Interface) *SweepExpiredChallengesUseCase {
	return &SweepExpiredChallengesUseCase{
		challengeStore: challengeStore,
		logger:         logger,
	}
}

// Execute returns the number of challenges deleted.
func (uc *SweepExpiredChallengesUseCase) Execute(ctx context.Context) (int, error) {
	deleted, err := uc.challengeStore.SweepExpired(ctx)
	if err != nil {
		uc.logger.Errorw("failed to sweep expired challenges", "error", err)
		return 0, fmt.Errorf("failed to sweep expired challenges: %w", err)
	}

	metrics.RecordChallengeSweep(int(deleted))
	if deleted > 0 {
		uc.logger.Infow("expired challenges swept", "count", deleted)
	}
	return int(deleted), nil
}

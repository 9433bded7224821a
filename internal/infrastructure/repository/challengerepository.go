package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// ChallengeRepository is the database-backed challenge.Store.
type ChallengeRepository struct {
	db     *gorm.DB
	logger logger.Interface
	now    func() time.Time
}

// NewChallengeRepository creates a challenge store over the webauthn_challenges table
func NewChallengeRepository(db *gorm.DB, logger logger.Interface) *ChallengeRepository {
	return NewChallengeRepositoryWithClock(db, logger, biztime.NowUTC)
}

func NewChallengeRepositoryWithClock(db *gorm.DB, logger logger.Interface, now func() time.Time) *ChallengeRepository {
	return &ChallengeRepository{db: db, logger: logger, now: now}
}

func (r *ChallengeRepository) Issue(ctx context.Context, c *challenge.Challenge) error {
	model := &models.WebAuthnChallengeModel{
		ID:          c.ID(),
		Challenge:   c.Value(),
		SessionData: c.SessionData(),
		CreatedAt:   c.CreatedAt(),
		ExpiresAt:   c.ExpiresAt(),
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to store webauthn challenge", "challenge_id", c.ID(), "error", err)
		return fmt.Errorf("failed to store challenge: %w", err)
	}
	return nil
}

// Consume reads the row and deletes it. Only the request whose delete removed
// the row gets the challenge back; expired rows are deleted and rejected.
func (r *ChallengeRepository) Consume(ctx context.Context, id string) (*challenge.Challenge, error) {
	var model models.WebAuthnChallengeModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to load webauthn challenge", "challenge_id", id, "error", err)
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.WebAuthnChallengeModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete webauthn challenge", "challenge_id", id, "error", result.Error)
		return nil, fmt.Errorf("failed to delete challenge: %w", result.Error)
	}
	if result.RowsAffected != 1 {
		r.logger.Warnw("webauthn challenge consumed concurrently", "challenge_id", id)
		return nil, nil
	}

	c := challenge.ReconstructChallenge(model.ID, model.Challenge, model.SessionData, model.CreatedAt, model.ExpiresAt)
	if c.IsExpired(r.now()) {
		return nil, nil
	}
	return c, nil
}

func (r *ChallengeRepository) SweepExpired(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&models.WebAuthnChallengeModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to sweep expired webauthn challenges", "error", result.Error)
		return 0, fmt.Errorf("failed to sweep expired challenges: %w", result.Error)
	}
	return result.RowsAffected, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/mappers"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// ReservationRepository implements reservation.Repository with GORM
type ReservationRepository struct {
	db     *gorm.DB
	mapper mappers.ReservationMapper
	logger logger.Interface
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB, logger logger.Interface) reservation.Repository {
	return &ReservationRepository{
		db:     db,
		mapper: mappers.NewReservationMapper(),
		logger: logger,
	}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	model := r.mapper.ToModel(res)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return reservation.ErrSecretCodeTaken
		}
		r.logger.Errorw("failed to create reservation in database", "error", err)
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	r.logger.Infow("reservation created", "reservation_id", model.ID)
	return nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*reservation.Reservation, error) {
	var model models.ReservationModel

	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get reservation by ID", "reservation_id", id, "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return r.mapper.ToEntity(&model), nil
}

func (r *ReservationRepository) ExistsActiveBySecretCode(ctx context.Context, code string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&models.ReservationModel{}).
		Where("secret_code = ? AND is_archived = ?", code, false).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to check secret code collision", "error", err)
		return false, fmt.Errorf("failed to check secret code: %w", err)
	}

	return count > 0, nil
}

func (r *ReservationRepository) UpdateGuestProfile(ctx context.Context, res *reservation.Reservation) (bool, error) {
	p := res.Profile()

	result := r.db.WithContext(ctx).
		Model(&models.ReservationModel{}).
		Where("id = ? AND is_checked_in = ?", res.ID(), false).
		Updates(map[string]interface{}{
			"guest_name":          p.Name,
			"guest_name_kana":     p.NameKana,
			"guest_address":       p.Address,
			"guest_contact":       p.Contact,
			"guest_occupation":    p.Occupation,
			"is_foreign_national": p.IsForeignNational,
			"nationality":         p.Nationality,
			"passport_number":     p.PassportNumber,
			"updated_at":          res.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update guest profile", "reservation_id", res.ID(), "error", result.Error)
		return false, fmt.Errorf("failed to update guest profile: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

func (r *ReservationRepository) MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ReservationModel{}).
		Where("id = ? AND is_checked_in = ?", id, false).
		Updates(map[string]interface{}{
			"is_checked_in": true,
			"checked_in_at": at,
			"updated_at":    at,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to mark reservation checked in", "reservation_id", id, "error", result.Error)
		return false, fmt.Errorf("failed to mark reservation checked in: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}

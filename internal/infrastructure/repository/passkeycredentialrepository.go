package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/mappers"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// PasskeyCredentialRepository stores one row per registered authenticator.
// Credential IDs are compared as raw bytes; the unique index on credential_id
// is what turns a concurrent double registration into ErrCredentialExists.
type PasskeyCredentialRepository struct {
	db     *gorm.DB
	mapper mappers.PasskeyCredentialMapper
	logger logger.Interface
}

func NewPasskeyCredentialRepository(db *gorm.DB, log logger.Interface) passkey.Repository {
	return &PasskeyCredentialRepository{
		db:     db,
		mapper: mappers.NewPasskeyCredentialMapper(),
		logger: log.Named("passkey_repository"),
	}
}

func withCredentialID(id []byte) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("credential_id = ?", id)
	}
}

func (r *PasskeyCredentialRepository) credentials(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.PasskeyCredentialModel{})
}

func (r *PasskeyCredentialRepository) Create(ctx context.Context, cred *passkey.Credential) error {
	row := r.mapper.ToModel(cred)

	err := r.db.WithContext(ctx).Create(row).Error
	switch {
	case err == nil:
	case isUniqueViolation(err):
		return passkey.ErrCredentialExists
	default:
		r.logger.Errorw("insert passkey credential", "reservation_id", row.ReservationID, "error", err)
		return fmt.Errorf("failed to create passkey credential: %w", err)
	}

	if err := cred.SetID(row.ID); err != nil {
		return fmt.Errorf("failed to set passkey credential ID: %w", err)
	}

	r.logger.Infow("passkey credential stored", "id", row.ID, "reservation_id", row.ReservationID)
	return nil
}

func (r *PasskeyCredentialRepository) GetByCredentialID(ctx context.Context, credentialID []byte) (*passkey.Credential, error) {
	var row models.PasskeyCredentialModel

	err := r.db.WithContext(ctx).Scopes(withCredentialID(credentialID)).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		r.logger.Errorw("select passkey credential", "error", err)
		return nil, fmt.Errorf("failed to get passkey credential: %w", err)
	}

	cred, err := r.mapper.ToEntity(&row)
	if err != nil {
		r.logger.Errorw("unusable passkey credential row", "id", row.ID, "error", err)
		return nil, err
	}
	return cred, nil
}

// GetByReservationID returns the newest credential first.
func (r *PasskeyCredentialRepository) GetByReservationID(ctx context.Context, reservationID string) ([]*passkey.Credential, error) {
	var rows []*models.PasskeyCredentialModel

	if err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("list passkey credentials", "reservation_id", reservationID, "error", err)
		return nil, fmt.Errorf("failed to get passkey credentials: %w", err)
	}

	creds, err := r.mapper.ToEntities(rows)
	if err != nil {
		r.logger.Errorw("unusable passkey credential row", "reservation_id", reservationID, "error", err)
		return nil, err
	}
	return creds, nil
}

func (r *PasskeyCredentialRepository) ExistsByCredentialID(ctx context.Context, credentialID []byte) (bool, error) {
	var n int64
	if err := r.credentials(ctx).Scopes(withCredentialID(credentialID)).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check passkey credential existence: %w", err)
	}
	return n > 0, nil
}

func (r *PasskeyCredentialRepository) UpdateSignCount(
	ctx context.Context,
	credentialID []byte,
	oldCount, newCount uint32,
	backupState bool,
	lastUsedAt time.Time,
) (bool, error) {
	res := r.credentials(ctx).
		Scopes(withCredentialID(credentialID)).
		Where("sign_count = ?", oldCount).
		Updates(map[string]any{
			"sign_count":   newCount,
			"backup_state": backupState,
			"last_used_at": lastUsedAt,
			"updated_at":   lastUsedAt,
		})
	if res.Error != nil {
		r.logger.Errorw("update passkey sign count", "error", res.Error)
		return false, fmt.Errorf("failed to update passkey sign count: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		r.logger.Warnw("sign count changed concurrently", "expected", oldCount)
	}
	return res.RowsAffected == 1, nil
}

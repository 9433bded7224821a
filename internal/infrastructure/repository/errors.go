package repository

import (
	"errors"

	"gorm.io/gorm"

	apperrors "github.com/smartcheckin/smartcheckin/internal/shared/errors"
)

// isUniqueViolation covers both translated GORM errors and raw driver messages.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateError(err)
}

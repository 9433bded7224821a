package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
)

// WebAuthnChallengeModel holds a pending ceremony until it is consumed or swept.
type WebAuthnChallengeModel struct {
	ID          string         `gorm:"primaryKey;size:36"`
	Challenge   string         `gorm:"size:128;not null"`
	SessionData datatypes.JSON `gorm:"not null"`
	CreatedAt   time.Time
	ExpiresAt   time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (WebAuthnChallengeModel) TableName() string {
	return constants.TableWebAuthnChallenges
}

package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
)

// PasskeyCredentialModel represents the database persistence model for passkey credentials
type PasskeyCredentialModel struct {
	ID              uint                        `gorm:"primarykey"`
	CredentialID    []byte                      `gorm:"size:1024;not null;uniqueIndex:uk_passkey_credentials_credential_id"`
	ReservationID   string                      `gorm:"size:36;not null;index"`
	PublicKey       []byte                      `gorm:"not null"`
	AttestationType string                      `gorm:"size:50;default:none"`
	AAGUID          []byte                      `gorm:"size:16;column:aaguid"`
	SignCount       uint32                      `gorm:"not null;default:0"`
	BackupEligible  bool                        `gorm:"default:false"` // WebAuthn BE flag
	BackupState     bool                        `gorm:"default:false"` // WebAuthn BS flag
	Transports      datatypes.JSONSlice[string] // JSON array of transport hints
	LastUsedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (PasskeyCredentialModel) TableName() string {
	return constants.TablePasskeyCredentials
}

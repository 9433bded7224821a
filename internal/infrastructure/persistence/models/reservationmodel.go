package models

import (
	"time"

	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
)

// ReservationModel represents the database persistence model for reservations
type ReservationModel struct {
	ID                string `gorm:"primaryKey;size:36"`
	GuestName         string `gorm:"size:200;default:''"`
	GuestNameKana     string `gorm:"size:200;default:''"`
	GuestAddress      string `gorm:"size:500;default:''"`
	GuestContact      string `gorm:"size:200;default:''"`
	GuestOccupation   string `gorm:"size:200;default:''"`
	IsForeignNational bool   `gorm:"default:false"`
	Nationality       string `gorm:"size:100;default:''"`
	PassportNumber    string `gorm:"size:50;default:''"`
	SecretCode        string `gorm:"size:11;not null;uniqueIndex:uk_reservations_secret_code"`
	DoorPIN           string `gorm:"column:door_pin;size:32;not null"`
	IsCheckedIn       bool   `gorm:"not null;default:false"`
	CheckedInAt       *time.Time
	IsArchived        bool `gorm:"not null;default:false;index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName specifies the table name for GORM
func (ReservationModel) TableName() string {
	return constants.TableReservations
}

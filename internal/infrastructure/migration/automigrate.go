package migration

import (
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ReservationModel{},
		&models.PasskeyCredentialModel{},
		&models.WebAuthnChallengeModel{},
	}
}

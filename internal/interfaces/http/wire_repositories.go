package http

import (
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	reservationRepo reservation.Repository
	passkeyRepo     passkey.Repository
}

func (c *Container) initRepositories() {
	c.repos = &repositories{
		reservationRepo: repository.NewReservationRepository(c.db, c.log),
		passkeyRepo:     repository.NewPasskeyCredentialRepository(c.db, c.log),
	}
}

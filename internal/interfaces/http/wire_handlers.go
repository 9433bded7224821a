package http

import (
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/handlers"
	"github.com/smartcheckin/smartcheckin/internal/interfaces/http/middleware"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	passkeyHandler     *handlers.PasskeyHandler
	checkinHandler     *handlers.CheckinHandler
	reservationHandler *handlers.ReservationHandler
	maintenanceHandler *handlers.MaintenanceHandler
	healthHandler      *handlers.HealthHandler
}

func (c *Container) initHandlers() {
	ucs := c.ucs

	var pinger handlers.Pinger
	if sqlDB, err := c.db.DB(); err == nil {
		pinger = sqlDB
	} else {
		c.log.Warnw("database handle unavailable for health checks", "error", err)
	}

	c.hdlrs = &allHandlers{
		passkeyHandler: handlers.NewPasskeyHandler(
			ucs.beginRegistrationUC,
			ucs.completeRegistrationUC,
			ucs.beginAuthenticationUC,
			ucs.completeAuthenticationUC,
			c.log.With("handler", "passkey"),
		),
		checkinHandler: handlers.NewCheckinHandler(ucs.attemptCheckInUC, c.log.With("handler", "checkin")),
		reservationHandler: handlers.NewReservationHandler(
			ucs.createReservationUC,
			ucs.getReservationUC,
			ucs.updateGuestProfileUC,
			c.log.With("handler", "reservation"),
		),
		maintenanceHandler: handlers.NewMaintenanceHandler(ucs.sweepChallengesUC, c.log.With("handler", "maintenance")),
		healthHandler:      handlers.NewHealthHandler(pinger, c.log),
	}

	c.adminMiddleware = middleware.NewAdminAuthMiddleware(
		c.cfg.Admin.Username,
		c.cfg.Admin.PasswordHash,
		c.svcs.hasher,
		c.log.With("middleware", "admin"),
	)
}

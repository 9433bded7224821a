package http

import (
	checkinUsecases "github.com/smartcheckin/smartcheckin/internal/application/checkin/usecases"
	maintenanceUsecases "github.com/smartcheckin/smartcheckin/internal/application/maintenance/usecases"
	passkeyUsecases "github.com/smartcheckin/smartcheckin/internal/application/passkey/usecases"
	reservationUsecases "github.com/smartcheckin/smartcheckin/internal/application/reservation/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	// WebAuthn ceremonies
	beginRegistrationUC      *passkeyUsecases.BeginRegistrationUseCase
	completeRegistrationUC   *passkeyUsecases.CompleteRegistrationUseCase
	beginAuthenticationUC    *passkeyUsecases.BeginAuthenticationUseCase
	completeAuthenticationUC *passkeyUsecases.CompleteAuthenticationUseCase

	// Check-in
	attemptCheckInUC *checkinUsecases.AttemptCheckInUseCase

	// Reservations
	createReservationUC  *reservationUsecases.CreateReservationUseCase
	getReservationUC     *reservationUsecases.GetReservationUseCase
	updateGuestProfileUC *reservationUsecases.UpdateGuestProfileUseCase

	// Housekeeping
	sweepChallengesUC *maintenanceUsecases.SweepExpiredChallengesUseCase
}

func (c *Container) initUseCases() {
	repos, svcs := c.repos, c.svcs
	ttl := c.cfg.Challenge.TTL

	var verifier checkinUsecases.TicketVerifier
	if svcs.ticketService != nil {
		verifier = svcs.ticketService
	}

	c.ucs = &allUseCases{
		beginRegistrationUC: passkeyUsecases.NewBeginRegistrationUseCase(
			repos.reservationRepo, repos.passkeyRepo, svcs.webAuthn, svcs.challengeStore, ttl, c.log,
		),
		completeRegistrationUC: passkeyUsecases.NewCompleteRegistrationUseCase(
			repos.reservationRepo, repos.passkeyRepo, svcs.webAuthn, svcs.challengeStore, c.log,
		),
		beginAuthenticationUC: passkeyUsecases.NewBeginAuthenticationUseCase(
			svcs.webAuthn, svcs.challengeStore, ttl, c.log,
		),
		completeAuthenticationUC: passkeyUsecases.NewCompleteAuthenticationUseCase(
			repos.reservationRepo, repos.passkeyRepo, svcs.webAuthn, svcs.challengeStore,
			svcs.ticketIssuer(), c.cfg.WebAuthn.StrictSignCount, c.log,
		),

		attemptCheckInUC: checkinUsecases.NewAttemptCheckInUseCase(
			repos.reservationRepo, verifier, c.cfg.Checkin.RequireTicket, c.log,
		),

		createReservationUC:  reservationUsecases.NewCreateReservationUseCase(repos.reservationRepo, c.log),
		getReservationUC:     reservationUsecases.NewGetReservationUseCase(repos.reservationRepo, repos.passkeyRepo, c.log),
		updateGuestProfileUC: reservationUsecases.NewUpdateGuestProfileUseCase(repos.reservationRepo, repos.passkeyRepo, c.log),

		sweepChallengesUC: maintenanceUsecases.NewSweepExpiredChallengesUseCase(svcs.challengeStore, c.log),
	}
}

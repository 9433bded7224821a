package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"

	"github.com/smartcheckin/smartcheckin/internal/application/passkey/helpers"
	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/auth"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// BeginRegistrationCommand represents the command to start passkey registration
type BeginRegistrationCommand struct {
	ReservationID string
}

// BeginRegistrationResult carries the creation options for the browser and
// the ID under which the ceremony session was stored.
type BeginRegistrationResult struct {
	Options     *protocol.CredentialCreation
	ChallengeID string
}

// BeginRegistrationUseCase handles the start of the registration ceremony
type BeginRegistrationUseCase struct {
	reservationRepo reservation.Repository
	passkeyRepo     passkey.Repository
	webAuthnService *auth.WebAuthnService
	challengeStore  challenge.Store
	challengeTTL    time.Duration
	logger          logger.Interface
	now             func() time.Time
}

// NewBeginRegistrationUseCase creates a new BeginRegistrationUseCase
func NewBeginRegistrationUseCase(
	reservationRepo reservation.Repository,
	passkeyRepo passkey.Repository,
	webAuthnService *auth.WebAuthnService,
	challengeStore challenge.Store,
	challengeTTL time.Duration,
	logger logger.Interface,
) *BeginRegistrationUseCase {
	return &BeginRegistrationUseCase{
		reservationRepo: reservationRepo,
		passkeyRepo:     passkeyRepo,
		webAuthnService: webAuthnService,
		challengeStore:  challengeStore,
		challengeTTL:    challengeTTL,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

// Execute starts the registration ceremony
func (uc *BeginRegistrationUseCase) Execute(ctx context.Context, cmd BeginRegistrationCommand) (*BeginRegistrationResult, error) {
	if cmd.ReservationID == "" {
		return nil, errors.NewValidationError("reservationId is required")
	}

	res, err := uc.reservationRepo.GetByID(ctx, cmd.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get reservation", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		return nil, errors.NewReservationNotFoundError()
	}

	existing, err := uc.passkeyRepo.GetByReservationID(ctx, cmd.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get existing passkeys", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get existing passkeys: %w", err)
	}

	webAuthnUser := helpers.NewWebAuthnUser(res, existing)

	exclude := make([][]byte, 0, len(existing))
	for _, cred := range existing {
		exclude = append(exclude, cred.CredentialID())
	}

	options, sessionData, err := uc.webAuthnService.BeginRegistration(webAuthnUser, exclude)
	if err != nil {
		uc.logger.Errorw("failed to begin registration", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to begin registration: %w", err)
	}

	challengeID, err := issueChallenge(ctx, uc.challengeStore, sessionData, uc.now(), uc.challengeTTL)
	if err != nil {
		uc.logger.Errorw("failed to store registration challenge", "reservation_id", cmd.ReservationID, "error", err)
		return nil, err
	}

	uc.logger.Infow("passkey registration started",
		"reservation_id", cmd.ReservationID,
		"challenge_id", challengeID,
		"excluded_credentials", len(exclude),
	)

	return &BeginRegistrationResult{
		Options:     options,
		ChallengeID: challengeID,
	}, nil
}

// issueChallenge serialises the ceremony session and stores it as a
// single-use challenge.
func issueChallenge(ctx context.Context, store challenge.Store, sessionData *webauthn.SessionData, now time.Time, ttl time.Duration) (string, error) {
	data, err := helpers.EncodeSessionData(sessionData)
	if err != nil {
		return "", fmt.Errorf("failed to encode session data: %w", err)
	}

	c, err := challenge.NewChallenge(sessionData.Challenge, data, now, ttl)
	if err != nil {
		return "", fmt.Errorf("failed to create challenge: %w", err)
	}

	if err := store.Issue(ctx, c); err != nil {
		return "", fmt.Errorf("failed to store challenge: %w", err)
	}
	return c.ID(), nil
}

// consumeSession takes the challenge out of the store and restores its
// ceremony session. A missing challenge is reported as ChallengeInvalid.
func consumeSession(ctx context.Context, store challenge.Store, challengeID string) (*webauthn.SessionData, error) {
	c, err := store.Consume(ctx, challengeID)
	if err != nil {
		return nil, fmt.Errorf("failed to consume challenge: %w", err)
	}
	if c == nil {
		return nil, errors.NewChallengeInvalidError()
	}

	session, err := helpers.DecodeSessionData(c.SessionData())
	if err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}
	return session, nil
}

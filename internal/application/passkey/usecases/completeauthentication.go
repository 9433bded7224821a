package usecases

import (
	"bytes"
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
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// CompleteAuthenticationCommand represents the command to finish a usernameless login
type CompleteAuthenticationCommand struct {
	ChallengeID string
	// Response is the browser's PublicKeyCredential JSON.
	Response []byte
}

// CompleteAuthenticationResult identifies the reservation resolved from the
// credential. CheckinTicket is empty when no ticket issuer is configured.
type CompleteAuthenticationResult struct {
	ReservationID string
	CheckinTicket string
}

// CompleteAuthenticationUseCase verifies an assertion and resolves the
// reservation from the credential alone.
type CompleteAuthenticationUseCase struct {
	reservationRepo reservation.Repository
	passkeyRepo     passkey.Repository
	webAuthnService *auth.WebAuthnService
	challengeStore  challenge.Store
	ticketIssuer    TicketIssuer
	strictSignCount bool
	logger          logger.Interface
	now             func() time.Time
}

// NewCompleteAuthenticationUseCase creates a new CompleteAuthenticationUseCase.
// ticketIssuer may be nil.
func NewCompleteAuthenticationUseCase(
	reservationRepo reservation.Repository,
	passkeyRepo passkey.Repository,
	webAuthnService *auth.WebAuthnService,
	challengeStore challenge.Store,
	ticketIssuer TicketIssuer,
	strictSignCount bool,
	logger logger.Interface,
) *CompleteAuthenticationUseCase {
	return &CompleteAuthenticationUseCase{
		reservationRepo: reservationRepo,
		passkeyRepo:     passkeyRepo,
		webAuthnService: webAuthnService,
		challengeStore:  challengeStore,
		ticketIssuer:    ticketIssuer,
		strictSignCount: strictSignCount,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

// Execute completes the authentication ceremony
func (uc *CompleteAuthenticationUseCase) Execute(ctx context.Context, cmd CompleteAuthenticationCommand) (*CompleteAuthenticationResult, error) {
	if cmd.ChallengeID == "" {
		return nil, errors.NewValidationError("challengeId is required")
	}

	sessionData, err := consumeSession(ctx, uc.challengeStore, cmd.ChallengeID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeChallengeInvalid) {
			uc.logger.Warnw("authentication challenge missing or expired", "challenge_id", utils.TruncateForLog(cmd.ChallengeID, 64))
			return nil, err
		}
		uc.logger.Errorw("failed to load authentication challenge", "challenge_id", cmd.ChallengeID, "error", err)
		return nil, err
	}

	parsed, err := protocol.ParseCredentialRequestResponseBytes(cmd.Response)
	if err != nil {
		uc.logger.Warnw("malformed assertion response", "challenge_id", cmd.ChallengeID, "error", err)
		return nil, errors.NewValidationError("invalid credential", err.Error())
	}

	credential, err := uc.passkeyRepo.GetByCredentialID(ctx, parsed.RawID)
	if err != nil {
		uc.logger.Errorw("failed to get passkey credential", "error", err)
		return nil, fmt.Errorf("failed to get passkey credential: %w", err)
	}
	if credential == nil {
		uc.logger.Warnw("assertion for unknown credential", "challenge_id", cmd.ChallengeID)
		return nil, errors.NewUnknownCredentialError()
	}

	res, err := uc.reservationRepo.GetByID(ctx, credential.ReservationID())
	if err != nil {
		uc.logger.Errorw("failed to get reservation", "reservation_id", credential.ReservationID(), "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		uc.logger.Warnw("credential owner no longer exists", "reservation_id", credential.ReservationID())
		return nil, errors.NewUnknownCredentialError()
	}

	handler := func(rawID, userHandle []byte) (webauthn.User, error) {
		if !bytes.Equal(rawID, credential.CredentialID()) {
			return nil, fmt.Errorf("credential id mismatch")
		}
		if !bytes.Equal(userHandle, res.WebAuthnUserHandle()) {
			return nil, fmt.Errorf("user handle does not belong to credential owner")
		}
		return helpers.NewWebAuthnUser(res, []*passkey.Credential{credential}), nil
	}

	if _, err := uc.webAuthnService.FinishDiscoverableLogin(handler, *sessionData, parsed); err != nil {
		uc.logger.Warnw("assertion verification failed",
			"reservation_id", res.ID(),
			"error", err,
		)
		return nil, errors.NewAssertionFailedError(protocolErrorDetail(err))
	}

	authData := parsed.Response.AuthenticatorData
	newCount := authData.Counter
	backupState := authData.Flags.HasBackupState()
	oldCount := credential.SignCount()
	if err := credential.CheckSignCount(newCount, uc.strictSignCount); err != nil {
		uc.logger.Warnw("security event: signature counter did not increase, possible cloned authenticator",
			"reservation_id", res.ID(),
			"credential_db_id", credential.ID(),
			"stored_sign_count", oldCount,
			"received_sign_count", newCount,
		)
		return nil, errors.NewAssertionFailedError("signature counter did not increase")
	}

	now := uc.now()
	updated, err := uc.passkeyRepo.UpdateSignCount(ctx, credential.CredentialID(), oldCount, newCount, backupState, now)
	if err != nil {
		uc.logger.Errorw("failed to update sign count", "reservation_id", res.ID(), "error", err)
		return nil, fmt.Errorf("failed to update sign count: %w", err)
	}
	if !updated {
		uc.logger.Warnw("security event: concurrent assertion replaced sign count",
			"reservation_id", res.ID(),
			"credential_db_id", credential.ID(),
		)
		return nil, errors.NewAssertionFailedError("signature counter changed concurrently")
	}
	credential.RecordAuthentication(newCount, backupState, now)

	result := &CompleteAuthenticationResult{ReservationID: res.ID()}
	if uc.ticketIssuer != nil {
		ticket, err := uc.ticketIssuer.Issue(res.ID())
		if err != nil {
			uc.logger.Errorw("failed to issue check-in ticket", "reservation_id", res.ID(), "error", err)
			return nil, fmt.Errorf("failed to issue check-in ticket: %w", err)
		}
		result.CheckinTicket = ticket
	}

	uc.logger.Infow("passkey authentication successful",
		"reservation_id", res.ID(),
		"sign_count", newCount,
	)

	return result, nil
}

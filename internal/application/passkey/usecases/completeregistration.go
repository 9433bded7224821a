package usecases

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-webauthn/webauthn/protocol"

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

// CompleteRegistrationCommand represents the command to finish passkey registration
type CompleteRegistrationCommand struct {
	ChallengeID   string
	ReservationID string
	// Response is the browser's PublicKeyCredential JSON.
	Response []byte
}

// CompleteRegistrationResult represents the result of finishing passkey registration
type CompleteRegistrationResult struct {
	Credential *passkey.Credential
}

// CompleteRegistrationUseCase handles the completion of the registration ceremony
type CompleteRegistrationUseCase struct {
	reservationRepo reservation.Repository
	passkeyRepo     passkey.Repository
	webAuthnService *auth.WebAuthnService
	challengeStore  challenge.Store
	logger          logger.Interface
	now             func() time.Time
}

// NewCompleteRegistrationUseCase creates a new CompleteRegistrationUseCase
func NewCompleteRegistrationUseCase(
	reservationRepo reservation.Repository,
	passkeyRepo passkey.Repository,
	webAuthnService *auth.WebAuthnService,
	challengeStore challenge.Store,
	logger logger.Interface,
) *CompleteRegistrationUseCase {
	return &CompleteRegistrationUseCase{
		reservationRepo: reservationRepo,
		passkeyRepo:     passkeyRepo,
		webAuthnService: webAuthnService,
		challengeStore:  challengeStore,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

// Execute verifies the attestation and stores the new credential
func (uc *CompleteRegistrationUseCase) Execute(ctx context.Context, cmd CompleteRegistrationCommand) (*CompleteRegistrationResult, error) {
	if cmd.ChallengeID == "" || cmd.ReservationID == "" {
		return nil, errors.NewValidationError("challengeId and reservationId are required")
	}

	sessionData, err := consumeSession(ctx, uc.challengeStore, cmd.ChallengeID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeChallengeInvalid) {
			uc.logger.Warnw("registration challenge missing or expired", "challenge_id", utils.TruncateForLog(cmd.ChallengeID, 64))
			return nil, err
		}
		uc.logger.Errorw("failed to load registration challenge", "challenge_id", cmd.ChallengeID, "error", err)
		return nil, err
	}

	res, err := uc.reservationRepo.GetByID(ctx, cmd.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get reservation", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		return nil, errors.NewReservationNotFoundError()
	}

	// the challenge must have been issued for this reservation
	if !bytes.Equal(sessionData.UserID, res.WebAuthnUserHandle()) {
		uc.logger.Warnw("registration challenge issued for a different reservation",
			"challenge_id", cmd.ChallengeID,
			"reservation_id", cmd.ReservationID,
		)
		return nil, errors.NewAttestationFailedError("challenge was not issued for this reservation")
	}

	parsed, err := protocol.ParseCredentialCreationResponseBytes(cmd.Response)
	if err != nil {
		uc.logger.Warnw("malformed attestation response", "reservation_id", cmd.ReservationID, "error", err)
		return nil, errors.NewValidationError("invalid credential", err.Error())
	}

	existing, err := uc.passkeyRepo.GetByReservationID(ctx, cmd.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get existing passkeys", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get existing passkeys: %w", err)
	}

	webAuthnUser := helpers.NewWebAuthnUser(res, existing)

	webAuthnCred, err := uc.webAuthnService.FinishRegistration(webAuthnUser, *sessionData, parsed)
	if err != nil {
		uc.logger.Warnw("attestation verification failed", "reservation_id", cmd.ReservationID, "error", err)
		return nil, errors.NewAttestationFailedError(protocolErrorDetail(err))
	}

	exists, err := uc.passkeyRepo.ExistsByCredentialID(ctx, webAuthnCred.ID)
	if err != nil {
		uc.logger.Errorw("failed to check credential existence", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to check credential existence: %w", err)
	}
	if exists {
		uc.logger.Warnw("credential already registered", "reservation_id", cmd.ReservationID)
		return nil, errors.NewDuplicateCredentialError()
	}

	credential, err := passkey.NewCredential(cmd.ReservationID, webAuthnCred, uc.now())
	if err != nil {
		uc.logger.Errorw("failed to build passkey credential", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to build passkey credential: %w", err)
	}

	if err := uc.passkeyRepo.Create(ctx, credential); err != nil {
		if stderrors.Is(err, passkey.ErrCredentialExists) {
			uc.logger.Warnw("credential registered concurrently", "reservation_id", cmd.ReservationID)
			return nil, errors.NewDuplicateCredentialError()
		}
		uc.logger.Errorw("failed to save passkey credential", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to save passkey credential: %w", err)
	}

	uc.logger.Infow("passkey registered",
		"reservation_id", cmd.ReservationID,
		"credential_id", credential.ID(),
		"backup_eligible", credential.BackupEligible(),
	)

	return &CompleteRegistrationResult{Credential: credential}, nil
}

// protocolErrorDetail extracts the library's developer-facing detail.
func protocolErrorDetail(err error) string {
	var perr *protocol.Error
	if stderrors.As(err, &perr) && perr.DevInfo != "" {
		return perr.DevInfo
	}
	return err.Error()
}

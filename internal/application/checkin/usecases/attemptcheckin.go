package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
	"github.com/smartcheckin/smartcheckin/internal/shared/utils"
)

// TicketVerifier checks the proof issued after a successful passkey assertion.
type TicketVerifier interface {
	Verify(token, reservationID string) error
}

// AttemptCheckInCommand is the second factor submitted by the guest.
type AttemptCheckInCommand struct {
	ReservationID string
	SecretCode    string
	Ticket        string
}

// AttemptCheckInResult carries the door PIN. AlreadyCheckedIn is set when
// the reservation had completed check-in before this request.
type AttemptCheckInResult struct {
	DoorPIN          string
	AlreadyCheckedIn bool
}

// AttemptCheckInUseCase moves a check-in session through AwaitingBiometric
// and AwaitingSecret to CheckedIn.
type AttemptCheckInUseCase struct {
	reservationRepo reservation.Repository
	ticketVerifier  TicketVerifier
	requireTicket   bool
	logger          logger.Interface
	now             func() time.Time
}

// NewAttemptCheckInUseCase creates a new AttemptCheckInUseCase. When
// requireTicket is false the biometric factor is trusted to the client and
// ticketVerifier may be nil.
func NewAttemptCheckInUseCase(
	reservationRepo reservation.Repository,
	ticketVerifier TicketVerifier,
	requireTicket bool,
	logger logger.Interface,
) *AttemptCheckInUseCase {
	return &AttemptCheckInUseCase{
		reservationRepo: reservationRepo,
		ticketVerifier:  ticketVerifier,
		requireTicket:   requireTicket,
		logger:          logger,
		now:             biztime.NowUTC,
	}
}

func (uc *AttemptCheckInUseCase) Execute(ctx context.Context, cmd AttemptCheckInCommand) (*AttemptCheckInResult, error) {
	if cmd.ReservationID == "" || cmd.SecretCode == "" {
		return nil, errors.NewValidationError("reservationId and secretCode are required")
	}

	biometricVerified, rejection := uc.biometricFactor(cmd)

	res, err := uc.reservationRepo.GetByID(ctx, cmd.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get reservation", "reservation_id", cmd.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		// an unverified session learns nothing about which reservations exist
		if !biometricVerified {
			return nil, rejection
		}
		return nil, errors.NewReservationNotFoundError()
	}

	switch res.CheckinState(biometricVerified) {
	case reservation.StateAwaitingBiometric:
		return nil, rejection
	case reservation.StateCheckedIn:
		uc.logger.Infow("check-in repeated for completed reservation", "reservation_id", res.ID())
		return &AttemptCheckInResult{DoorPIN: res.DoorPIN(), AlreadyCheckedIn: true}, nil
	}

	supplied, err := reservation.ParseSecretCode(cmd.SecretCode)
	if err != nil {
		uc.logger.Warnw("malformed secret code",
			"reservation_id", res.ID(),
			"input_length", len(cmd.SecretCode),
		)
		return nil, errors.NewValidationError("secret code must have the form XXX-XXX-XXX")
	}

	if !res.VerifySecret(supplied) {
		uc.logger.Warnw("secret code mismatch",
			"reservation_id", res.ID(),
			"supplied", utils.MaskSecretCode(supplied.String()),
		)
		return nil, errors.NewInvalidSecretError()
	}

	now := uc.now()
	updated, err := uc.reservationRepo.MarkCheckedIn(ctx, res.ID(), now)
	if err != nil {
		uc.logger.Errorw("failed to mark reservation checked in", "reservation_id", res.ID(), "error", err)
		return nil, fmt.Errorf("failed to mark reservation checked in: %w", err)
	}
	if !updated {
		// another request completed the transition first
		return uc.reloadCheckedIn(ctx, res.ID())
	}
	if err := res.MarkCheckedIn(now); err != nil && !stderrors.Is(err, reservation.ErrAlreadyCheckedIn) {
		return nil, err
	}

	uc.logger.Infow("reservation checked in",
		"reservation_id", res.ID(),
		"local_date", biztime.LocalDate(now),
	)

	return &AttemptCheckInResult{DoorPIN: res.DoorPIN(), AlreadyCheckedIn: false}, nil
}

// biometricFactor reports whether the session passed the passkey step. When
// tickets are not required the step is trusted to the client. A false result
// comes with the error to return for it.
func (uc *AttemptCheckInUseCase) biometricFactor(cmd AttemptCheckInCommand) (bool, error) {
	if !uc.requireTicket {
		return true, nil
	}
	if cmd.Ticket == "" {
		uc.logger.Warnw("check-in attempted without biometric ticket", "reservation_id", cmd.ReservationID)
		return false, errors.NewBiometricRequiredError()
	}
	if uc.ticketVerifier == nil {
		uc.logger.Errorw("check-in ticket required but no verifier configured")
		return false, errors.NewInternalError("check-in is not available")
	}
	if err := uc.ticketVerifier.Verify(cmd.Ticket, cmd.ReservationID); err != nil {
		uc.logger.Warnw("check-in ticket rejected", "reservation_id", cmd.ReservationID, "error", err)
		return false, errors.NewBiometricRequiredError()
	}
	return true, nil
}

func (uc *AttemptCheckInUseCase) reloadCheckedIn(ctx context.Context, id string) (*AttemptCheckInResult, error) {
	res, err := uc.reservationRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to reload reservation", "reservation_id", id, "error", err)
		return nil, fmt.Errorf("failed to reload reservation: %w", err)
	}
	if res == nil || !res.IsCheckedIn() {
		uc.logger.Errorw("check-in update affected no rows", "reservation_id", id)
		return nil, errors.NewInternalError("failed to complete check-in")
	}

	uc.logger.Infow("concurrent check-in already completed", "reservation_id", id)
	return &AttemptCheckInResult{DoorPIN: res.DoorPIN(), AlreadyCheckedIn: true}, nil
}

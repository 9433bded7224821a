package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/id"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// maxSecretCodeAttempts bounds retries on secret code collisions.
const maxSecretCodeAttempts = 5

// CreateReservationCommand represents the command to open a reservation
type CreateReservationCommand struct {
	DoorPIN string
}

// CreateReservationUseCase opens a reservation with a fresh secret code.
type CreateReservationUseCase struct {
	reservationRepo reservation.Repository
	logger          logger.Interface
	generateCode    func() (reservation.SecretCode, error)
	newID           func() string
	now             func() time.Time
}

func NewCreateReservationUseCase(reservationRepo reservation.Repository, logger logger.Interface) *CreateReservationUseCase {
	return &CreateReservationUseCase{
		reservationRepo: reservationRepo,
		logger:          logger,
		generateCode:    reservation.GenerateSecretCode,
		newID:           id.NewUUID,
		now:             biztime.NowUTC,
	}
}

func (uc *CreateReservationUseCase) Execute(ctx context.Context, cmd CreateReservationCommand) (*dto.ReservationResponse, error) {
	if cmd.DoorPIN == "" {
		return nil, errors.NewValidationError("door_pin is required")
	}

	for attempt := 1; attempt <= maxSecretCodeAttempts; attempt++ {
		code, err := uc.generateCode()
		if err != nil {
			uc.logger.Errorw("failed to generate secret code", "error", err)
			return nil, fmt.Errorf("failed to generate secret code: %w", err)
		}

		taken, err := uc.reservationRepo.ExistsActiveBySecretCode(ctx, code.String())
		if err != nil {
			uc.logger.Errorw("failed to check secret code uniqueness", "error", err)
			return nil, fmt.Errorf("failed to check secret code uniqueness: %w", err)
		}
		if taken {
			uc.logger.Warnw("secret code collision, retrying", "attempt", attempt)
			continue
		}

		res, err := reservation.NewReservation(uc.newID(), code, cmd.DoorPIN, uc.now())
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}

		if err := uc.reservationRepo.Create(ctx, res); err != nil {
			if stderrors.Is(err, reservation.ErrSecretCodeTaken) {
				uc.logger.Warnw("secret code taken on insert, retrying", "attempt", attempt)
				continue
			}
			uc.logger.Errorw("failed to create reservation", "error", err)
			return nil, fmt.Errorf("failed to create reservation: %w", err)
		}

		uc.logger.Infow("reservation created",
			"reservation_id", res.ID(),
			"attempts", attempt,
		)
		return dto.ToReservationResponse(res), nil
	}

	uc.logger.Errorw("exhausted secret code attempts", "attempts", maxSecretCodeAttempts)
	return nil, errors.NewInternalError("failed to allocate a unique secret code")
}

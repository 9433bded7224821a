package usecases

import (
	"context"
	"fmt"

	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/shared/errors"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// GetReservationQuery represents the query to load the guest view
type GetReservationQuery struct {
	ReservationID string
}

// GetReservationUseCase returns the guest-facing view of a reservation
type GetReservationUseCase struct {
	reservationRepo reservation.Repository
	passkeyRepo     passkey.Repository
	logger          logger.Interface
}

func NewGetReservationUseCase(
	reservationRepo reservation.Repository,
	passkeyRepo passkey.Repository,
	logger logger.Interface,
) *GetReservationUseCase {
	return &GetReservationUseCase{
		reservationRepo: reservationRepo,
		passkeyRepo:     passkeyRepo,
		logger:          logger,
	}
}

func (uc *GetReservationUseCase) Execute(ctx context.Context, query GetReservationQuery) (*dto.GuestReservationResponse, error) {
	if query.ReservationID == "" {
		return nil, errors.NewValidationError("reservation id is required")
	}

	res, err := uc.reservationRepo.GetByID(ctx, query.ReservationID)
	if err != nil {
		uc.logger.Errorw("failed to get reservation", "reservation_id", query.ReservationID, "error", err)
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if res == nil {
		return nil, errors.NewReservationNotFoundError()
	}

	creds, err := uc.passkeyRepo.GetByReservationID(ctx, res.ID())
	if err != nil {
		uc.logger.Errorw("failed to get passkeys", "reservation_id", res.ID(), "error", err)
		return nil, fmt.Errorf("failed to get passkeys: %w", err)
	}

	return dto.ToGuestReservationResponse(res, len(creds) > 0), nil
}

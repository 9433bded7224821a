package handlers

import (
	"context"

	checkinUsecases "github.com/smartcheckin/smartcheckin/internal/application/checkin/usecases"
	passkeyUsecases "github.com/smartcheckin/smartcheckin/internal/application/passkey/usecases"
	"github.com/smartcheckin/smartcheckin/internal/application/reservation/dto"
	reservationUsecases "github.com/smartcheckin/smartcheckin/internal/application/reservation/usecases"
)

// Use case interfaces for the check-in handlers - enables unit testing with mocks.

type beginRegistrationUseCase interface {
	Execute(ctx context.Context, cmd passkeyUsecases.BeginRegistrationCommand) (*passkeyUsecases.BeginRegistrationResult, error)
}

type completeRegistrationUseCase interface {
	Execute(ctx context.Context, cmd passkeyUsecases.CompleteRegistrationCommand) (*passkeyUsecases.CompleteRegistrationResult, error)
}

type beginAuthenticationUseCase interface {
	Execute(ctx context.Context) (*passkeyUsecases.BeginAuthenticationResult, error)
}

type completeAuthenticationUseCase interface {
	Execute(ctx context.Context, cmd passkeyUsecases.CompleteAuthenticationCommand) (*passkeyUsecases.CompleteAuthenticationResult, error)
}

type attemptCheckInUseCase interface {
	Execute(ctx context.Context, cmd checkinUsecases.AttemptCheckInCommand) (*checkinUsecases.AttemptCheckInResult, error)
}

type createReservationUseCase interface {
	Execute(ctx context.Context, cmd reservationUsecases.CreateReservationCommand) (*dto.ReservationResponse, error)
}

type getReservationUseCase interface {
	Execute(ctx context.Context, query reservationUsecases.GetReservationQuery) (*dto.GuestReservationResponse, error)
}

type updateGuestProfileUseCase interface {
	Execute(ctx context.Context, cmd reservationUsecases.UpdateGuestProfileCommand) (*dto.GuestReservationResponse, error)
}

// sweepChallengesUseCase matches the scheduler's BatchJob contract.
type sweepChallengesUseCase interface {
	Execute(ctx context.Context) (int, error)
}

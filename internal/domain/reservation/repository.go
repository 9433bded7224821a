package reservation

import (
	"context"
	"time"
)

// Repository persists reservations. Lookups return (nil, nil) when absent.
type Repository interface {
	// Create inserts a reservation. A secret code collision surfaces as ErrSecretCodeTaken.
	Create(ctx context.Context, r *Reservation) error

	GetByID(ctx context.Context, id string) (*Reservation, error)

	// ExistsActiveBySecretCode checks unarchived reservations only.
	ExistsActiveBySecretCode(ctx context.Context, code string) (bool, error)

	// UpdateGuestProfile writes the profile unless the reservation is checked in.
	// Returns false when no row was updated.
	UpdateGuestProfile(ctx context.Context, r *Reservation) (bool, error)

	// MarkCheckedIn flips is_checked_in from false to true. Returns false when
	// the reservation was already checked in or does not exist.
	MarkCheckedIn(ctx context.Context, id string, at time.Time) (bool, error)
}

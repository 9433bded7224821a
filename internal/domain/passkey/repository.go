package passkey

import (
	"context"
	"time"
)

// Repository persists credentials. Lookups return (nil, nil) when absent.
type Repository interface {
	// Create inserts a credential. A duplicate credential ID surfaces as ErrCredentialExists.
	Create(ctx context.Context, cred *Credential) error

	GetByCredentialID(ctx context.Context, credentialID []byte) (*Credential, error)

	GetByReservationID(ctx context.Context, reservationID string) ([]*Credential, error)

	ExistsByCredentialID(ctx context.Context, credentialID []byte) (bool, error)

	// UpdateSignCount stores newCount only if the row still holds oldCount.
	// Returns false when another request changed the counter first.
	UpdateSignCount(ctx context.Context, credentialID []byte, oldCount, newCount uint32, backupState bool, lastUsedAt time.Time) (bool, error)
}

// Package challenge models the single-use value that correlates the two
// round-trips of a WebAuthn ceremony.
package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcheckin/smartcheckin/internal/shared/id"
)

// DefaultTTL is the window in which a ceremony must be completed.
const DefaultTTL = 5 * time.Minute

type Challenge struct {
	id          string
	value       string
	sessionData []byte
	createdAt   time.Time
	expiresAt   time.Time
}

// NewChallenge assigns a fresh UUID and sets the expiry to now+ttl.
func NewChallenge(value string, sessionData []byte, now time.Time, ttl time.Duration) (*Challenge, error) {
	if value == "" {
		return nil, fmt.Errorf("challenge value is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Challenge{
		id:          id.NewUUID(),
		value:       value,
		sessionData: sessionData,
		createdAt:   now,
		expiresAt:   now.Add(ttl),
	}, nil
}

// ReconstructChallenge rebuilds a challenge from storage.
func ReconstructChallenge(id, value string, sessionData []byte, createdAt, expiresAt time.Time) *Challenge {
	return &Challenge{
		id:          id,
		value:       value,
		sessionData: sessionData,
		createdAt:   createdAt,
		expiresAt:   expiresAt,
	}
}

func (c *Challenge) ID() string           { return c.id }
func (c *Challenge) Value() string        { return c.value }
func (c *Challenge) SessionData() []byte  { return c.sessionData }
func (c *Challenge) CreatedAt() time.Time { return c.createdAt }
func (c *Challenge) ExpiresAt() time.Time { return c.expiresAt }

// IsExpired reports whether the challenge can no longer be accepted at now.
func (c *Challenge) IsExpired(now time.Time) bool {
	return !now.Before(c.expiresAt)
}

// RemainingTTL is the time left before expiry, zero once expired.
func (c *Challenge) RemainingTTL(now time.Time) time.Duration {
	if c.IsExpired(now) {
		return 0
	}
	return c.expiresAt.Sub(now)
}

// Store issues and consumes challenges.
type Store interface {
	// Issue persists c under c.ID().
	Issue(ctx context.Context, c *Challenge) error

	// Consume removes and returns the challenge in one step. A missing,
	// expired or already consumed challenge yields (nil, nil).
	Consume(ctx context.Context, id string) (*Challenge, error)

	// SweepExpired deletes challenges past their expiry and reports how many.
	SweepExpired(ctx context.Context) (int64, error)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// ChallengeKeyPrefix is the Redis key prefix for pending WebAuthn ceremonies
const ChallengeKeyPrefix = "webauthn:challenge:"

// ChallengeStore keeps challenges in Redis with a TTL equal to their
// remaining lifetime. GETDEL gives one-time reads.
type ChallengeStore struct {
	client *redis.Client
	prefix string
	logger logger.Interface
	now    func() time.Time
}

// NewChallengeStore creates a Redis-backed challenge.Store
func NewChallengeStore(client *redis.Client, logger logger.Interface) *ChallengeStore {
	return NewChallengeStoreWithClock(client, logger, biztime.NowUTC)
}

func NewChallengeStoreWithClock(client *redis.Client, logger logger.Interface, now func() time.Time) *ChallengeStore {
	return &ChallengeStore{
		client: client,
		prefix: ChallengeKeyPrefix,
		logger: logger,
		now:    now,
	}
}

type storedChallenge struct {
	Challenge   string          `json:"challenge"`
	SessionData json.RawMessage `json:"session_data"`
	CreatedAt   int64           `json:"created_at"` // Unix milliseconds
	ExpiresAt   int64           `json:"expires_at"` // Unix milliseconds
}

func (s *ChallengeStore) Issue(ctx context.Context, c *challenge.Challenge) error {
	ttl := c.RemainingTTL(s.now())
	if ttl <= 0 {
		return fmt.Errorf("challenge %s is already expired", c.ID())
	}

	data, err := json.Marshal(storedChallenge{
		Challenge:   c.Value(),
		SessionData: c.SessionData(),
		CreatedAt:   c.CreatedAt().UnixMilli(),
		ExpiresAt:   c.ExpiresAt().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal challenge: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(c.ID()), data, ttl).Err(); err != nil {
		s.logger.Errorw("failed to store webauthn challenge in redis", "challenge_id", c.ID(), "error", err)
		return fmt.Errorf("failed to store challenge in Redis: %w", err)
	}
	return nil
}

func (s *ChallengeStore) Consume(ctx context.Context, id string) (*challenge.Challenge, error) {
	if id == "" {
		return nil, nil
	}

	data, err := s.client.GetDel(ctx, s.buildKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Errorw("failed to consume webauthn challenge from redis", "challenge_id", id, "error", err)
		return nil, fmt.Errorf("failed to consume challenge from Redis: %w", err)
	}

	var stored storedChallenge
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
	}

	c := challenge.ReconstructChallenge(
		id,
		stored.Challenge,
		stored.SessionData,
		time.UnixMilli(stored.CreatedAt).UTC(),
		time.UnixMilli(stored.ExpiresAt).UTC(),
	)
	// the key TTL and the stored expiry can drift by clock skew between hosts
	if c.IsExpired(s.now()) {
		return nil, nil
	}
	return c, nil
}

// SweepExpired is a no-op: Redis evicts keys on TTL.
func (s *ChallengeStore) SweepExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (s *ChallengeStore) buildKey(id string) string {
	return s.prefix + id
}

package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/smartcheckin/smartcheckin/internal/domain/challenge"
	"github.com/smartcheckin/smartcheckin/internal/domain/passkey"
	"github.com/smartcheckin/smartcheckin/internal/domain/reservation"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.ReservationModel{},
		&models.PasskeyCredentialModel{},
		&models.WebAuthnChallengeModel{},
	))
	return db
}

func newReservation(t *testing.T, id, code string) *reservation.Reservation {
	t.Helper()
	r, err := reservation.NewReservation(id, reservation.ReconstructSecretCode(code), "4821", time.Now().UTC())
	require.NoError(t, err)
	return r
}

func TestReservationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db, logger.NewNop())
	ctx := context.Background()

	res := newReservation(t, "8f14e45f-ceea-467f-a0e6-1a2b3c4d5e6f", "A1B-2C3-D4E")
	require.NoError(t, repo.Create(ctx, res))

	t.Run("get by id", func(t *testing.T) {
		found, err := repo.GetByID(ctx, res.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "A1B-2C3-D4E", found.SecretCode().String())
		assert.Equal(t, "4821", found.DoorPIN())
		assert.False(t, found.IsCheckedIn())
	})

	t.Run("missing reservation returns nil", func(t *testing.T) {
		found, err := repo.GetByID(ctx, "does-not-exist")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("secret code collision", func(t *testing.T) {
		exists, err := repo.ExistsActiveBySecretCode(ctx, "A1B-2C3-D4E")
		require.NoError(t, err)
		assert.True(t, exists)

		dup := newReservation(t, "another-id", "A1B-2C3-D4E")
		assert.ErrorIs(t, repo.Create(ctx, dup), reservation.ErrSecretCodeTaken)
	})

	t.Run("guest profile update", func(t *testing.T) {
		require.NoError(t, res.UpdateGuestProfile(reservation.GuestProfile{
			Name: "Sato Hanako", Address: "Kyoto", Contact: "hanako@example.com", Nationality: "JP",
		}, time.Now().UTC()))

		ok, err := repo.UpdateGuestProfile(ctx, res)
		require.NoError(t, err)
		assert.True(t, ok)

		found, err := repo.GetByID(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, "Sato Hanako", found.Profile().Name)
		assert.Equal(t, "JP", found.Profile().Nationality)
	})

	t.Run("mark checked in flips once", func(t *testing.T) {
		at := time.Date(2026, 10, 1, 15, 0, 0, 0, time.UTC)

		ok, err := repo.MarkCheckedIn(ctx, res.ID(), at)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.MarkCheckedIn(ctx, res.ID(), at.Add(time.Minute))
		require.NoError(t, err)
		assert.False(t, ok)

		found, err := repo.GetByID(ctx, res.ID())
		require.NoError(t, err)
		assert.True(t, found.IsCheckedIn())
		require.NotNil(t, found.CheckedInAt())
		assert.True(t, at.Equal(*found.CheckedInAt()))
	})

	t.Run("profile update rejected after check-in", func(t *testing.T) {
		ok, err := repo.UpdateGuestProfile(ctx, res)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestReservationRepository_ConcurrentCheckIn(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReservationRepository(db, logger.NewNop())
	ctx := context.Background()

	res := newReservation(t, "res-concurrent", "ZZZ-ZZZ-ZZZ")
	require.NoError(t, repo.Create(ctx, res))

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.MarkCheckedIn(ctx, res.ID(), time.Now().UTC())
			assert.NoError(t, err)
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
}

func newCredential(t *testing.T, id []byte, reservationID string, count uint32) *passkey.Credential {
	t.Helper()
	c, err := passkey.NewCredential(reservationID, &webauthn.Credential{
		ID:              id,
		PublicKey:       []byte{0xa5, 0x01, 0x02},
		AttestationType: "none",
		Transport:       []protocol.AuthenticatorTransport{protocol.Internal},
		Flags:           webauthn.CredentialFlags{BackupEligible: true},
		Authenticator:   webauthn.Authenticator{SignCount: count},
	}, time.Now().UTC())
	require.NoError(t, err)
	return c
}

func TestPasskeyCredentialRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPasskeyCredentialRepository(db, logger.NewNop())
	ctx := context.Background()

	cred := newCredential(t, []byte("cred-123"), "res-1", 1)
	require.NoError(t, repo.Create(ctx, cred))
	assert.NotZero(t, cred.ID())

	t.Run("lookup by credential id", func(t *testing.T) {
		found, err := repo.GetByCredentialID(ctx, []byte("cred-123"))
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "res-1", found.ReservationID())
		assert.Equal(t, uint32(1), found.SignCount())
		assert.Equal(t, []string{"internal"}, found.Transports())
		assert.True(t, found.BackupEligible())
	})

	t.Run("unknown credential returns nil", func(t *testing.T) {
		found, err := repo.GetByCredentialID(ctx, []byte("cred-999"))
		require.NoError(t, err)
		assert.Nil(t, found)

		exists, err := repo.ExistsByCredentialID(ctx, []byte("cred-999"))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate credential id rejected", func(t *testing.T) {
		dup := newCredential(t, []byte("cred-123"), "res-2", 0)
		assert.ErrorIs(t, repo.Create(ctx, dup), passkey.ErrCredentialExists)

		exists, err := repo.ExistsByCredentialID(ctx, []byte("cred-123"))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("by reservation", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, newCredential(t, []byte("cred-456"), "res-1", 0)))

		creds, err := repo.GetByReservationID(ctx, "res-1")
		require.NoError(t, err)
		assert.Len(t, creds, 2)
	})

	t.Run("sign count compare and set", func(t *testing.T) {
		at := time.Now().UTC()

		ok, err := repo.UpdateSignCount(ctx, []byte("cred-123"), 1, 2, true, at)
		require.NoError(t, err)
		assert.True(t, ok)

		// stale old value loses
		ok, err = repo.UpdateSignCount(ctx, []byte("cred-123"), 1, 3, true, at)
		require.NoError(t, err)
		assert.False(t, ok)

		found, err := repo.GetByCredentialID(ctx, []byte("cred-123"))
		require.NoError(t, err)
		assert.Equal(t, uint32(2), found.SignCount())
		assert.True(t, found.BackupState())
		assert.NotNil(t, found.LastUsedAt())
	})
}

func TestChallengeRepository(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	clock := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	store := NewChallengeRepositoryWithClock(db, logger.NewNop(), now)

	issue := func(t *testing.T, issuedAt time.Time) *challenge.Challenge {
		t.Helper()
		c, err := challenge.NewChallenge("dGVzdC1jaGFsbGVuZ2U", []byte(`{"challenge":"dGVzdC1jaGFsbGVuZ2U"}`), issuedAt, 5*time.Minute)
		require.NoError(t, err)
		require.NoError(t, store.Issue(ctx, c))
		return c
	}

	t.Run("single use", func(t *testing.T) {
		c := issue(t, clock)

		got, err := store.Consume(ctx, c.ID())
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, c.Value(), got.Value())
		assert.JSONEq(t, string(c.SessionData()), string(got.SessionData()))

		again, err := store.Consume(ctx, c.ID())
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("expired challenge is rejected and removed", func(t *testing.T) {
		c := issue(t, clock.Add(-6*time.Minute))

		got, err := store.Consume(ctx, c.ID())
		require.NoError(t, err)
		assert.Nil(t, got)

		var count int64
		require.NoError(t, db.Model(&models.WebAuthnChallengeModel{}).Where("id = ?", c.ID()).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("unknown id", func(t *testing.T) {
		got, err := store.Consume(ctx, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("sweep removes only expired", func(t *testing.T) {
		issue(t, clock.Add(-10*time.Minute))
		issue(t, clock.Add(-7*time.Minute))
		fresh := issue(t, clock)

		deleted, err := store.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		deleted, err = store.SweepExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, deleted)

		got, err := store.Consume(ctx, fresh.ID())
		require.NoError(t, err)
		assert.NotNil(t, got)
	})
}

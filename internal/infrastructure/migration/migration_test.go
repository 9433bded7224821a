package migration

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/infrastructure/persistence/models"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrate.db")), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestNewGooseStrategy_UnsupportedDriver(t *testing.T) {
	_, err := NewGooseStrategy("oracle")
	assert.Error(t, err)
}

func TestGooseStrategy_UpAndDown_SQLite(t *testing.T) {
	db := openSQLite(t)

	manager, err := NewManager("sqlite", false)
	require.NoError(t, err)
	assert.Equal(t, "goose", manager.GetStrategy().GetName())

	require.NoError(t, manager.Migrate(db))

	for _, m := range AutoMigrateModels() {
		assert.True(t, db.Migrator().HasTable(m))
	}

	strategy := manager.GetStrategy().(*GooseStrategy)
	version, err := strategy.GetVersion(db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running again is a no-op.
	require.NoError(t, manager.Migrate(db))

	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.ReservationModel{
		ID:         "res-1",
		SecretCode: "ABCDEFGHJKM",
		DoorPIN:    "1234",
		CreatedAt:  now,
		UpdatedAt:  now,
	}).Error)
	require.NoError(t, db.Create(&models.PasskeyCredentialModel{
		CredentialID:  []byte("cred-1"),
		ReservationID: "res-1",
		PublicKey:     []byte("pk"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}).Error)

	dup := db.Create(&models.ReservationModel{
		ID:         "res-2",
		SecretCode: "ABCDEFGHJKM",
		DoorPIN:    "5678",
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	assert.Error(t, dup.Error)

	require.NoError(t, strategy.MigrateDown(db, 1))
	assert.False(t, db.Migrator().HasTable(&models.ReservationModel{}))
	assert.False(t, db.Migrator().HasTable(&models.WebAuthnChallengeModel{}))
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	db := openSQLite(t)

	manager, err := NewManager("sqlite", true)
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", manager.GetStrategy().GetName())

	require.NoError(t, manager.Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.PasskeyCredentialModel{}))
	assert.True(t, db.Migrator().HasIndex(&models.ReservationModel{}, "uk_reservations_secret_code"))
}

func TestGooseStrategy_StatusAndPending(t *testing.T) {
	db := openSQLite(t)

	strategy, err := NewGooseStrategy("sqlite")
	require.NoError(t, err)

	pending, err := strategy.HasPending(db)
	require.NoError(t, err)
	assert.True(t, pending)

	states, err := strategy.Status(db)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.False(t, states[0].Applied)

	require.NoError(t, strategy.Migrate(db))

	pending, err = strategy.HasPending(db)
	require.NoError(t, err)
	assert.False(t, pending)

	states, err = strategy.Status(db)
	require.NoError(t, err)
	assert.True(t, states[0].Applied)
	assert.Equal(t, int64(1), states[0].Version)

	// more steps than applied scripts stops at zero
	require.NoError(t, strategy.MigrateDown(db, 3))
	version, err := strategy.GetVersion(db)
	require.NoError(t, err)
	assert.Zero(t, version)
}

package migration

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// scripts holds one directory of goose SQL files per driver.
//
//go:embed scripts
var scripts embed.FS

// Strategy applies the schema for reservations, passkey credentials and
// WebAuthn challenges.
type Strategy interface {
	Migrate(db *gorm.DB, models ...interface{}) error
	GetName() string
}

// GormAutoMigrateStrategy derives the schema from the GORM models. It is
// meant for local development against a throwaway database.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{logger: logger.NewLogger().Named("migration.gorm")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	s.logger.Infow("auto-migrating models", "count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

var gooseDialects = map[string]struct {
	dialect goose.Dialect
	dir     string
}{
	"mysql":    {goose.DialectMySQL, "scripts/mysql"},
	"postgres": {goose.DialectPostgres, "scripts/postgres"},
	"sqlite":   {goose.DialectSQLite3, "scripts/sqlite"},
}

// GooseStrategy applies the versioned SQL scripts for one driver through a
// goose.Provider, so nothing is set on goose's package-level state.
type GooseStrategy struct {
	dialect goose.Dialect
	fsys    fs.FS
	logger  logger.Interface
}

// MigrationState is one script and whether it has been applied.
type MigrationState struct {
	Version   int64
	Path      string
	Applied   bool
	AppliedAt time.Time
}

func NewGooseStrategy(driver string) (*GooseStrategy, error) {
	d, ok := gooseDialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	sub, err := fs.Sub(scripts, d.dir)
	if err != nil {
		return nil, fmt.Errorf("missing migration scripts for %s: %w", driver, err)
	}
	return &GooseStrategy{
		dialect: d.dialect,
		fsys:    sub,
		logger:  logger.NewLogger().Named("migration.goose"),
	}, nil
}

func (s *GooseStrategy) provider(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p, err := goose.NewProvider(s.dialect, sqlDB, s.fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return p, nil
}

// Migrate applies every pending script. The models argument is ignored; the
// scripts are the source of truth.
func (s *GooseStrategy) Migrate(db *gorm.DB, _ ...interface{}) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}
	ctx := context.Background()

	from, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, r := range results {
		s.logger.Infow("migration applied",
			"version", r.Source.Version,
			"script", r.Source.Path,
			"duration", r.Duration)
	}

	to, err := p.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	s.logger.Infow("schema up to date", "from_version", from, "to_version", to, "dialect", s.dialect)
	return nil
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

// MigrateDown rolls back up to steps scripts, stopping early at version 0.
func (s *GooseStrategy) MigrateDown(db *gorm.DB, steps int) error {
	p, err := s.provider(db)
	if err != nil {
		return err
	}
	ctx := context.Background()

	for i := 0; i < steps; i++ {
		version, err := p.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}
		if version == 0 {
			s.logger.Infow("nothing left to roll back", "rolled_back", i)
			return nil
		}

		r, err := p.Down(ctx)
		if err != nil {
			return fmt.Errorf("failed to roll back version %d: %w", version, err)
		}
		s.logger.Infow("migration rolled back", "version", r.Source.Version, "script", r.Source.Path)
	}
	return nil
}

func (s *GooseStrategy) GetVersion(db *gorm.DB) (int64, error) {
	p, err := s.provider(db)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(context.Background())
}

// HasPending reports whether any script has not been applied yet.
func (s *GooseStrategy) HasPending(db *gorm.DB) (bool, error) {
	p, err := s.provider(db)
	if err != nil {
		return false, err
	}
	return p.HasPending(context.Background())
}

func (s *GooseStrategy) Status(db *gorm.DB) ([]MigrationState, error) {
	p, err := s.provider(db)
	if err != nil {
		return nil, err
	}
	statuses, err := p.Status(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	out := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, MigrationState{
			Version:   st.Source.Version,
			Path:      st.Source.Path,
			Applied:   st.State == goose.StateApplied,
			AppliedAt: st.AppliedAt,
		})
	}
	return out, nil
}

// Package database owns the process-wide GORM handle shared by the
// repositories, the migration runner and the sweep worker.
package database

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/config"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

var (
	current *gorm.DB
	mu      sync.RWMutex
)

// Dialector selects the GORM driver for cfg.Driver. An empty driver means mysql.
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.GetDSN()
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql", "":
		return mysql.New(mysql.Config{DSN: dsn, SkipInitializeWithVersion: true}), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// Open connects, sizes the pool and pings. It does not touch the handle
// returned by Get.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newQueryLogger(logger.NewLogger().Named("gorm")),
		PrepareStmt:    true,
		TranslateError: true,
		NowFunc:        biztime.NowUTC,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	configurePool(cfg, sqlDB)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return conn, nil
}

type pool interface {
	SetMaxOpenConns(int)
	SetMaxIdleConns(int)
	SetConnMaxLifetime(time.Duration)
}

func configurePool(cfg *config.DatabaseConfig, p pool) {
	// sqlite has a single writer
	if cfg.Driver == "sqlite" {
		p.SetMaxOpenConns(1)
		return
	}
	if cfg.MaxOpenConns > 0 {
		p.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		p.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		p.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}
}

// Init opens the connection and publishes it for Get.
func Init(cfg *config.DatabaseConfig) error {
	conn, err := Open(cfg)
	if err != nil {
		return err
	}

	mu.Lock()
	current = conn
	mu.Unlock()

	logger.Info("database connected", "driver", cfg.Driver, "database", cfg.Database)
	return nil
}

func Get() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Close releases the shared handle. Calling it before Init, or twice, is a no-op.
func Close() error {
	mu.Lock()
	conn := current
	current = nil
	mu.Unlock()

	if conn == nil {
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	logger.Info("database connection closed")
	return nil
}

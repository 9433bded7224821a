package migration

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// Manager runs the chosen Strategy over the check-in models.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose scripts for the configured driver, or GORM
// AutoMigrate when autoMigrate is set.
func NewManager(driver string, autoMigrate bool) (*Manager, error) {
	if autoMigrate {
		return NewManagerWithStrategy(NewGormAutoMigrateStrategy()), nil
	}

	strategy, err := NewGooseStrategy(driver)
	if err != nil {
		return nil, err
	}
	return NewManagerWithStrategy(strategy), nil
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewLogger().Named("migration"),
	}
}

func (m *Manager) Migrate(db *gorm.DB) error {
	name := m.strategy.GetName()
	start := time.Now()

	if err := m.strategy.Migrate(db, AutoMigrateModels()...); err != nil {
		m.logger.Errorw("migration failed", "strategy", name, "error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", name, err)
	}

	m.logger.Infow("migration finished", "strategy", name, "duration", time.Since(start))
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}

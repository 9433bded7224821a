// Package bootstrap loads configuration and initializes the process-wide
// logger, business timezone and database for CLI commands.
package bootstrap

import (
	"fmt"

	"github.com/smartcheckin/smartcheckin/internal/infrastructure/config"
	"github.com/smartcheckin/smartcheckin/internal/infrastructure/database"
	"github.com/smartcheckin/smartcheckin/internal/shared/biztime"
	"github.com/smartcheckin/smartcheckin/internal/shared/logger"
)

// LoadConfig reads configuration and maps env onto a gin mode.
func LoadConfig(env, configPath string) (*config.Config, error) {
	cfg, err := config.Load("", configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if env != "" {
		cfg.Server.Mode = MapEnvToGinMode(env)
	}
	return cfg, nil
}

// Init loads configuration, then initializes the logger, timezone and
// database connection. Callers close the database with database.Close.
func Init(env, configPath string) (*config.Config, logger.Interface, error) {
	cfg, err := LoadConfig(env, configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

func MapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

package config

import (
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/smartcheckin/smartcheckin/internal/shared/config"
	"github.com/smartcheckin/smartcheckin/internal/shared/constants"
)

// EnvPrefix prefixes every environment override, e.g. CHECKIN_WEBAUTHN_RP_ID.
const EnvPrefix = "CHECKIN"

type Config struct {
	Server      sharedConfig.ServerConfig      `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig    `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig      `mapstructure:"logger"`
	Redis       sharedConfig.RedisConfig       `mapstructure:"redis"`
	WebAuthn    sharedConfig.WebAuthnConfig    `mapstructure:"webauthn"`
	Challenge   sharedConfig.ChallengeConfig   `mapstructure:"challenge"`
	Checkin     sharedConfig.CheckinConfig     `mapstructure:"checkin"`
	Admin       sharedConfig.AdminConfig       `mapstructure:"admin"`
	Maintenance sharedConfig.MaintenanceConfig `mapstructure:"maintenance"`
	Scheduler   sharedConfig.SchedulerConfig   `mapstructure:"scheduler"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (or configFile when set) and environment
// variables. A missing default config file is not an error: every setting can
// come from the environment.
func Load(env, configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../configs")
		v.AddConfigPath("../../configs")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Allow env parameter to override server mode if provided
	if env != "" && env != "default" {
		v.Set("server.mode", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	var problems []string

	if !c.WebAuthn.IsConfigured() {
		problems = append(problems, "webauthn.rp_id, webauthn.rp_name and webauthn.rp_origins are required")
	}

	switch c.Challenge.Store {
	case constants.ChallengeStoreDatabase, constants.ChallengeStoreRedis:
	default:
		problems = append(problems, fmt.Sprintf("challenge.store must be %q or %q", constants.ChallengeStoreDatabase, constants.ChallengeStoreRedis))
	}

	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		problems = append(problems, "database.driver must be mysql, postgres or sqlite")
	}

	if c.Checkin.RequireTicket && len(c.Checkin.TicketSecret) < 32 {
		problems = append(problems, "checkin.ticket_secret must be at least 32 bytes when checkin.require_ticket is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.timezone", "Asia/Tokyo")

	// Database defaults
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "smartcheckin")
	v.SetDefault("database.path", "smartcheckin.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// WebAuthn relying party (must be configured)
	v.SetDefault("webauthn.rp_id", "")
	v.SetDefault("webauthn.rp_name", "")
	v.SetDefault("webauthn.rp_origins", []string{})
	v.SetDefault("webauthn.timeout_ms", 300000)
	v.SetDefault("webauthn.strict_sign_count", false)

	v.SetDefault("challenge.store", constants.ChallengeStoreDatabase)
	v.SetDefault("challenge.ttl", "5m")

	v.SetDefault("checkin.require_ticket", false)
	v.SetDefault("checkin.ticket_secret", "")
	v.SetDefault("checkin.ticket_ttl", "10m")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password_hash", "")

	v.SetDefault("maintenance.cron_secret", "")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.challenge_sweep_interval", "1m")
}

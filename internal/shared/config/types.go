package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	Timezone       string   `mapstructure:"timezone"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	// Driver is one of mysql, postgres, sqlite
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"` // sqlite file path
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	switch d.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	case "sqlite":
		return d.Path
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&collation=utf8mb4_general_ci&parseTime=true&loc=UTC",
			d.Username, d.Password, d.Host, d.Port, d.Database)
	}
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// WebAuthnConfig holds relying party settings. All three identity fields are
// supplied externally; nothing here is derived from the request.
type WebAuthnConfig struct {
	RPID      string   `mapstructure:"rp_id"`
	RPName    string   `mapstructure:"rp_name"`
	RPOrigins []string `mapstructure:"rp_origins"`
	Timeout   int      `mapstructure:"timeout_ms"`
	// StrictSignCount rejects assertions whose counter stays at zero.
	StrictSignCount bool `mapstructure:"strict_sign_count"`
}

// IsConfigured reports whether the relying party identity is complete.
func (w WebAuthnConfig) IsConfigured() bool {
	return w.RPID != "" && w.RPName != "" && len(w.RPOrigins) > 0
}

type ChallengeConfig struct {
	// Store is either "database" or "redis"
	Store string        `mapstructure:"store"`
	TTL   time.Duration `mapstructure:"ttl"`
}

type CheckinConfig struct {
	RequireTicket bool          `mapstructure:"require_ticket"`
	TicketSecret  string        `mapstructure:"ticket_secret"`
	TicketTTL     time.Duration `mapstructure:"ticket_ttl"`
}

type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type MaintenanceConfig struct {
	CronSecret string `mapstructure:"cron_secret"`
}

type SchedulerConfig struct {
	Enabled                bool          `mapstructure:"enabled"`
	ChallengeSweepInterval time.Duration `mapstructure:"challenge_sweep_interval"`
}

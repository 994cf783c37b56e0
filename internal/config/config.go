package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config is the full service configuration loaded from config.toml.
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Schedule   ScheduleConfig   `toml:"schedule"`
	Calendar   CalendarConfig   `toml:"calendar"`
	Notify     NotifyConfig     `toml:"notify"`
	Reconciler ReconcilerConfig `toml:"reconciler"`
}

type ServerConfig struct {
	HTTPPort        int    `toml:"http_port"`
	ReadTimeout     int    `toml:"read_timeout"`
	WriteTimeout    int    `toml:"write_timeout"`
	IdleTimeout     int    `toml:"idle_timeout"`
	ShutdownTimeout int    `toml:"shutdown_timeout"`
	AdminToken      string `toml:"admin_token"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig holds the fixed operational parameters of the practice.
// The admin-mutable weekly schedule lives in the database; only the timezone
// is deployment configuration.
type ScheduleConfig struct {
	Timezone string `toml:"timezone"`
}

type CalendarConfig struct {
	Enabled    bool   `toml:"enabled"`
	BaseURL    string `toml:"base_url"`
	CalendarID string `toml:"calendar_id"`
	AuthToken  string `toml:"auth_token"`
	Timeout    int    `toml:"timeout"`
}

type NotifyConfig struct {
	Enabled        bool   `toml:"enabled"`
	SendgridAPIKey string `toml:"sendgrid_api_key"`
	FromEmail      string `toml:"from_email"`
	FromName       string `toml:"from_name"`
	AdminEmail     string `toml:"admin_email"`
	AdminName      string `toml:"admin_name"`
	PublicBaseURL  string `toml:"public_base_url"`
}

type ReconcilerConfig struct {
	Enabled    bool   `toml:"enabled"`
	SweepCron  string `toml:"sweep_cron"`
	DigestCron string `toml:"digest_cron"`
	WindowDays int    `toml:"window_days"`
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = "America/Montevideo"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "ginecoschedule"
	}
	if cfg.Reconciler.SweepCron == "" {
		cfg.Reconciler.SweepCron = "@every 15m"
	}
	if cfg.Reconciler.DigestCron == "" {
		cfg.Reconciler.DigestCron = "0 19 * * *"
	}
	if cfg.Reconciler.WindowDays <= 0 || cfg.Reconciler.WindowDays > 90 {
		// The remote calendar rate-limits wide listings; cap the sweep range.
		cfg.Reconciler.WindowDays = 60
	}

	if cfg.Database.Host == "" {
		return nil, fmt.Errorf("config: database.host is required")
	}

	return &cfg, nil
}

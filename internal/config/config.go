// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/olegiv/folio-go/internal/scheduler"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Remote drivers.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite
	DriverSQLite3 = "sqlite3" // mattn/go-sqlite3
	DriverMySQL   = "mysql"
	DriverMemory  = "memory"
)

var validDrivers = []string{DriverSQLite, DriverSQLite3, DriverMySQL, DriverMemory}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"FOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"FOLIO_LOG_LEVEL" envDefault:"info"`
	ServerHost string `env:"FOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"FOLIO_SERVER_PORT" envDefault:"8080"`

	// Remote store
	RemoteDriver string `env:"FOLIO_REMOTE_DRIVER" envDefault:"sqlite"`
	RemoteDSN    string `env:"FOLIO_REMOTE_DSN" envDefault:"./data/folio.db"`

	// Sessions
	SessionSecret string `env:"FOLIO_SESSION_SECRET,required"`
	SessionDBPath string `env:"FOLIO_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	RedisURL      string `env:"FOLIO_REDIS_URL"` // Optional; sessions live in Redis when set

	// Admin gate: exactly one of these
	AdminSecret     string `env:"FOLIO_ADMIN_SECRET"`
	AdminSecretHash string `env:"FOLIO_ADMIN_SECRET_HASH"` // argon2id encoded hash

	RefreshSchedule string `env:"FOLIO_REFRESH_SCHEDULE"` // Cron expression; empty disables

	RateLimitRPS   float64 `env:"FOLIO_RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int     `env:"FOLIO_RATE_LIMIT_BURST" envDefault:"20"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisSessions returns true if sessions should be stored in Redis.
func (c Config) UseRedisSessions() bool {
	return c.RedisURL != ""
}

// SlogLevel maps LogLevel to a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MinSessionSecretLength is the minimum required length for the session secret.
// It doubles as the 32-byte CSRF key.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a validated Config.
func Load() (*Config, error) {
	return load(env.Options{})
}

// load parses with the given options; tests pass an explicit Environment.
func load(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that env tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < MinSessionSecretLength {
		return fmt.Errorf("FOLIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(c.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if c.SessionSecret == weak {
			return errors.New("FOLIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(c.SessionSecret) {
		slog.Warn("FOLIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	switch {
	case c.AdminSecret == "" && c.AdminSecretHash == "":
		return errors.New("one of FOLIO_ADMIN_SECRET or FOLIO_ADMIN_SECRET_HASH must be set")
	case c.AdminSecret != "" && c.AdminSecretHash != "":
		return errors.New("FOLIO_ADMIN_SECRET and FOLIO_ADMIN_SECRET_HASH are mutually exclusive")
	}

	if !slices.Contains(validDrivers, c.RemoteDriver) {
		return fmt.Errorf("FOLIO_REMOTE_DRIVER %q is not supported (want one of %s)",
			c.RemoteDriver, strings.Join(validDrivers, ", "))
	}

	if c.RefreshSchedule != "" {
		if err := scheduler.ValidateSchedule(c.RefreshSchedule); err != nil {
			return fmt.Errorf("FOLIO_REFRESH_SCHEDULE: %w", err)
		}
	}

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("FOLIO_RATE_LIMIT_RPS and FOLIO_RATE_LIMIT_BURST must be positive")
	}

	return nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}

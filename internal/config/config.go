// Package config loads sheetfilter settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ukaji3/sheetfilter-go/internal/logging"
	"github.com/ukaji3/sheetfilter-go/pkg/sheetfilter"
)

// Environment variable names.
const (
	EnvSource       = "SHEETFILTER_SOURCE"
	EnvAddr         = "SHEETFILTER_ADDR"
	EnvFetchTimeout = "SHEETFILTER_FETCH_TIMEOUT"
	EnvMaxBytes     = "SHEETFILTER_MAX_BYTES"
	EnvSessionTTL   = "SHEETFILTER_SESSION_TTL"
	EnvLogLevel     = "LOG_LEVEL"
)

// Config represents the complete application configuration
type Config struct {
	// Source is the workbook URL or path loaded at start-up.
	Source string
	// Addr is the listen address of the web server.
	Addr string
	// FetchTimeout bounds the initial workbook download.
	FetchTimeout time.Duration
	// MaxBytes caps the workbook size.
	MaxBytes int64
	// SessionTTL is how long an idle browser session is kept.
	SessionTTL time.Duration
	// LogLevel is one of ERROR, WARN, INFO, DEBUG.
	LogLevel string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:         ":8080",
		FetchTimeout: 30 * time.Second,
		MaxBytes:     sheetfilter.DefaultMaxBytes,
		SessionTTL:   30 * time.Minute,
		LogLevel:     "INFO",
	}
}

// Load reads a .env file when present, then environment variables, on top
// of Default.
func Load() (Config, error) {
	// a missing .env is not an error
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a configuration from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()

	if v := strings.TrimSpace(getenv(EnvSource)); v != "" {
		cfg.Source = v
	}
	if v := strings.TrimSpace(getenv(EnvAddr)); v != "" {
		cfg.Addr = v
	}
	if v := strings.TrimSpace(getenv(EnvFetchTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvFetchTimeout, err)
		}
		cfg.FetchTimeout = d
	}
	if v := strings.TrimSpace(getenv(EnvMaxBytes)); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvMaxBytes, err)
		}
		cfg.MaxBytes = n
	}
	if v := strings.TrimSpace(getenv(EnvSessionTTL)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvSessionTTL, err)
		}
		cfg.SessionTTL = d
	}
	if v := strings.TrimSpace(getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}

	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %s", c.FetchTimeout)
	}
	if c.MaxBytes <= 0 {
		return fmt.Errorf("max bytes must be positive, got %d", c.MaxBytes)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	if _, ok := logging.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log level %q (must be ERROR, WARN, INFO or DEBUG)", c.LogLevel)
	}
	return nil
}

// LoadOptions returns workbook loading options for c.
func (c Config) LoadOptions() sheetfilter.Options {
	opts := sheetfilter.DefaultOptions()
	opts.MaxBytes = c.MaxBytes
	return opts
}

// Logger returns a stderr logger at the configured level.
func (c Config) Logger() *logging.Logger {
	level, _ := logging.ParseLevel(c.LogLevel)
	return logging.New(os.Stderr, level)
}

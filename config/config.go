// Package config loads chargectl settings from the environment.
//
// Values come from process environment variables, optionally seeded from a
// .env file, and are checked with struct tags before use:
//
//	CHARGE_HTTP_ADDR          listen address (default :8080)
//	CHARGE_LOG_LEVEL          debug|info|warn|error (default info)
//	CHARGE_LOG_FORMAT         json|console (default json)
//	CHARGE_CORS_ORIGINS       comma separated allowed origins
//	CHARGE_SHUTDOWN_TIMEOUT   graceful shutdown budget (default 30s)
//	CHARGE_READ_TIMEOUT, CHARGE_WRITE_TIMEOUT, CHARGE_IDLE_TIMEOUT
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// ErrParsingConfig is returned when environment values cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse config")
	// ErrInvalidConfig is returned when parsed values fail validation.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config holds the service settings.
type Config struct {
	HTTPAddr        string        `env:"CHARGE_HTTP_ADDR" envDefault:":8080" validate:"required"`
	LogLevel        string        `env:"CHARGE_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `env:"CHARGE_LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
	CORSOrigins     []string      `env:"CHARGE_CORS_ORIGINS" envSeparator:"," validate:"dive,url"`
	ShutdownTimeout time.Duration `env:"CHARGE_SHUTDOWN_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ReadTimeout     time.Duration `env:"CHARGE_READ_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"CHARGE_WRITE_TIMEOUT" envDefault:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `env:"CHARGE_IDLE_TIMEOUT" envDefault:"60s" validate:"gt=0"`
}

// Load reads an optional .env file, then the environment. Files listed in
// envFiles must exist; with none given, a missing ./.env is ignored.
// Variables already set in the process win over file values.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrParsingConfig, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrParsingConfig, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// NewLogger builds the zap logger described by the log settings.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	zc := zap.NewProductionConfig()
	if c.LogFormat == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

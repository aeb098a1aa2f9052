// Package config reads the process configuration from TRANSFERSCOPE_*
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/gabapcia/transferscope/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. TRANSFERSCOPE_LOG_LEVEL.
const Prefix = "TRANSFERSCOPE"

// Config holds every setting that is not part of a wallet query.
type Config struct {
	// HyperSyncToken is sent as a Bearer token when set.
	HyperSyncToken string `envconfig:"HYPERSYNC_TOKEN"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFile  string `envconfig:"LOG_FILE" default:"transferscope.log" validate:"required"`

	OutputDir string `envconfig:"OUTPUT_DIR" default:"outputs" validate:"required"`

	HTTPTimeout         time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s" validate:"gt=0"`
	HTTPRetryMax        int           `envconfig:"HTTP_RETRY_MAX" default:"2" validate:"gte=0"`
	StreamRetryAttempts uint          `envconfig:"STREAM_RETRY_ATTEMPTS" default:"3" validate:"gte=1"`

	TelemetryEnabled bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
	ServiceName      string `envconfig:"SERVICE_NAME" default:"transferscope" validate:"required"`
}

// Load reads and validates the configuration.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read configuration: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

package config

import (
	"os"
	"strconv"

	"github.com/giulialestini/PopED/internal/errors"

	"github.com/joho/godotenv"
)

// Config represents the complete command-line workflow configuration
type Config struct {
	Database DatabaseConfig
	Defaults DefaultsConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds evaluation-store connection settings. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL string
}

// DefaultsConfig holds the evaluation defaults the CLI starts from.
type DefaultsConfig struct {
	Alpha       float64
	TargetPower float64
}

// LoggingConfig holds CLI logging settings
type LoggingConfig struct {
	Level string
}

// Load reads configuration from the environment, honouring a local .env
// file when present.
func Load() (*Config, error) {
	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Database: DatabaseConfig{
			URL: os.Getenv("POPED_DATABASE_URL"),
		},
		Defaults: DefaultsConfig{
			Alpha:       0.05,
			TargetPower: 80,
		},
		Logging: LoggingConfig{
			Level: getEnvOrDefault("POPED_LOG_LEVEL", "info"),
		},
	}

	if v := os.Getenv("POPED_ALPHA"); v != "" {
		alpha, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("POPED_ALPHA is not a number")
		}
		cfg.Defaults.Alpha = alpha
	}
	if v := os.Getenv("POPED_TARGET_POWER"); v != "" {
		target, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.ConfigInvalid("POPED_TARGET_POWER is not a number")
		}
		cfg.Defaults.TargetPower = target
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Defaults.Alpha <= 0 || cfg.Defaults.Alpha >= 1 {
		return errors.ConfigInvalid("alpha must lie in (0,1)")
	}
	if cfg.Defaults.TargetPower <= 0 || cfg.Defaults.TargetPower >= 100 {
		return errors.ConfigInvalid("target power must lie in (0,100)")
	}
	return nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

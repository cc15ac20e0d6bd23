// Package config loads daemon configuration from the environment or a YAML file.
package config

import (
	"errors"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the nemisd runtime configuration.
type Config struct {
	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string `yaml:"database_dsn" env:"DATABASE_DSN"`
	// SweepInterval drives the periodic election-status sweep; zero disables it.
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SWEEP_INTERVAL" env-default:"0s"`
	// LogLevel selects the zap level: debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the configuration from path when given, otherwise from the
// environment only.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseDSN == "" {
		return nil, errors.New("config: DATABASE_DSN is required")
	}
	if cfg.SweepInterval < 0 {
		return nil, errors.New("config: SWEEP_INTERVAL must not be negative")
	}
	return &cfg, nil
}

package config

import (
	"fmt"
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Config is the process configuration shared by the binaries. Command-line
// flags default to these values.
type Config struct {
	Addr     string `env:"SKIRMISH_ADDR"      envDefault:"localhost:9000"` // address "join" dials
	Port     string `env:"SKIRMISH_PORT"      envDefault:"9000"`           // TCP port "host" listens on
	WebPort  int    `env:"SKIRMISH_WEB_PORT"  envDefault:"8080"`
	Presets  string `env:"SKIRMISH_PRESETS"   envDefault:"presets.yaml"`
	LogLevel string `env:"SKIRMISH_LOG_LEVEL" envDefault:"info"`
	Seed     int64  `env:"SKIRMISH_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the environment with defaults applied.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the diagnostics logger at the configured level.
func (c Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

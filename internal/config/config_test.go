package config

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", cfg.Addr)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 8080, cfg.WebPort)
	assert.Equal(t, "presets.yaml", cfg.Presets)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Zero(t, cfg.Seed)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SKIRMISH_PORT", "9100")
	t.Setenv("SKIRMISH_PRESETS", "/tmp/p.yaml")
	t.Setenv("SKIRMISH_SEED", "42")
	t.Setenv("SKIRMISH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "/tmp/p.yaml", cfg.Presets)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadError(t *testing.T) {
	t.Setenv("SKIRMISH_SEED", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Config{LogLevel: "warn"}.NewLogger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.WithField("port", 9000).Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "port=9000")

	_, err = Config{LogLevel: "loud"}.NewLogger(&buf)
	assert.Error(t, err)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmcclure382/DragaliaAPI/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_FileValuesAndDefaults(t *testing.T) {
	// Arrange
	t.Setenv("DATABASE_URL", "")
	path := writeConfig(t, `
database:
  type: sqlite
  path: /tmp/fort.db
logging:
  level: debug
  format: text
fort:
  time_skip_unit: 6m
  rate_limit:
    requests: 5
`)

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "/tmp/fort.db", cfg.Database.DSN())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, 6*time.Minute, cfg.Fort.TimeSkipUnit)
	assert.True(t, cfg.Fort.RateLimit.Enabled())
	assert.Equal(t, 10, cfg.Fort.RateLimit.Burst)
	assert.Equal(t, "localhost:9090", cfg.Metrics.Address())
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DF_LOGGING_LEVEL", "warn")
	t.Setenv("DF_FORT_TIME_SKIP_UNIT", "30m")
	path := writeConfig(t, `
database:
  type: sqlite
logging:
  level: debug
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 30*time.Minute, cfg.Fort.TimeSkipUnit)
}

func TestLoadConfig_DatabaseURLOverride(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgresql://fort:secret@db:5432/fort")
	path := writeConfig(t, "database:\n  type: postgres\n")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgresql://fort:secret@db:5432/fort", cfg.Database.DSN())
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown database type", "database:\n  type: mysql\n"},
		{"unknown log level", "database:\n  type: sqlite\nlogging:\n  level: loud\n"},
		{"file output without path", "database:\n  type: sqlite\nlogging:\n  output: file\n"},
		{"time skip unit too small", "database:\n  type: sqlite\nfort:\n  time_skip_unit: 10ms\n"},
		{"metrics path without slash", "database:\n  type: sqlite\nmetrics:\n  path: metrics\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "")
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, "invalid configuration")
		})
	}
}

func TestSetDefaults_SQLitePath(t *testing.T) {
	cfg := &config.Config{Database: config.DatabaseConfig{Type: "sqlite"}}

	config.SetDefaults(cfg)

	assert.Equal(t, "dragalia.db", cfg.Database.Path)
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestUserConfigHandler_RoundTrip(t *testing.T) {
	handler, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Nil(t, empty.DefaultPlayerID)

	require.NoError(t, handler.SetDefaultPlayer(42))
	require.NoError(t, handler.SetDefaultSkipPayment("WYRMITE"))

	loaded, err := handler.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded.DefaultPlayerID)
	assert.Equal(t, 42, *loaded.DefaultPlayerID)
	assert.Equal(t, "WYRMITE", loaded.DefaultSkipPayment)

	require.NoError(t, handler.ClearDefaultPlayer())
	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Nil(t, cleared.DefaultPlayerID)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "development", cfg.AppEnv)
	require.True(t, cfg.SeedDemo)
	require.False(t, cfg.LogJSON)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadRejectsMalformedBool(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SEED_DEMO", "notabool")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "SEED_DEMO")
}

func TestLoadRejectsMalformedInt(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "DB_MAX_OPEN_CONNS")
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("JWT_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "JWT_TTL")
}

func TestProductionFlipsDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	require.True(t, cfg.IsProduction())
	require.False(t, cfg.SeedDemo)
	require.True(t, cfg.LogJSON)
}

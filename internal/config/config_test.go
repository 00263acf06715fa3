package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, time.Hour, cfg.Security.SessionTTL)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.True(t, cfg.Postgres.Migrate)
	assert.True(t, cfg.Sweep.Enabled)
	assert.Equal(t, "0 */10 * * * *", cfg.Sweep.Schedule)
	assert.Equal(t, 5*time.Minute, cfg.Sweep.LockTTL)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PHOTOGRID_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}

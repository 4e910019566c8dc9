package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "file:test?mode=memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("FRONTEND_URL", "https://starclub.app/")

	cfg, _, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5, cfg.Database.ConnectAttempts)
	assert.Equal(t, 720*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.DemoLoginEnabled)
	assert.Equal(t, "loyalty.exchange", cfg.VisitExchange)
	assert.Equal(t, "https://starclub.app", cfg.FrontendURL)
	assert.False(t, cfg.R2.Enabled())
}

func TestLoadConfigRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	_, _, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_URL", "x")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DATABASE_DRIVER", "mysql")

	_, _, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_DRIVER")
}

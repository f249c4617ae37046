package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.False(t, cfg.RemindersEnabled)
}

func TestNewConfigRequiresSigningSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigRequiresAlgorithm(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ALGORITHM", "")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigRejectsBadTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PORT", "9090")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "9090", cfg.Port)
}

func TestNewConfigRemindersRequireSMTP(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REMINDERS_ENABLED", "true")
	t.Setenv("SMTP_HOST", "")

	_, err := NewConfig()
	assert.Error(t, err)

	t.Setenv("SMTP_HOST", "smtp.example.com")
	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.RemindersEnabled)
}

package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cardly/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_HOST", "db")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com,https://pos.example.com")
	t.Setenv("IDEMPOTENCY_TTL", "1h")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.Secret)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"https://admin.example.com", "https://pos.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Redis.IdempotencyTTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, "postgres://postgres:@db:5432/cardly?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := config.Load()
	assert.Error(t, err)
}

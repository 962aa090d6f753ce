package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATABASE_URL", "MYSQL_URL", "ADMIN_KEY", "FRONTEND_URL", "CORS_ORIGINS", "PORT",
		"APP_ENV", "LOG_LEVEL", "LOG_FORMAT", "REDIS_URL", "RATE_LIMIT_MAX",
		"RATE_LIMIT_WINDOW", "BOOKING_STRICT_FORMAT", "TRUSTED_PROXIES",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, _ := Load()
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.StrictFormat)
	assert.Nil(t, cfg.TrustedProxies)
	assert.False(t, cfg.IsProduction())
	assert.EqualError(t, cfg.Validate(), "DATABASE_URL is not set")
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "mysql://u:p@db:3306/bookings")
	t.Setenv("ADMIN_KEY", " secret ")
	t.Setenv("FRONTEND_URL", "https://a.example/, https://b.example")
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("RATE_LIMIT_MAX", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "1m")
	t.Setenv("BOOKING_STRICT_FORMAT", "false")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 127.0.0.1")

	cfg, _ := Load()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "mysql://u:p@db:3306/bookings", cfg.DatabaseURL)
	assert.Equal(t, "secret", cfg.AdminKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, "8081", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.StrictFormat)
	assert.Equal(t, []string{"10.0.0.0/8", "127.0.0.1"}, cfg.TrustedProxies)
}

func TestLoadFallbackKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("MYSQL_URL", "mysql://u:p@db/bookings")
	t.Setenv("CORS_ORIGINS", "https://c.example")

	cfg, _ := Load()
	assert.Equal(t, "mysql://u:p@db/bookings", cfg.DatabaseURL)
	assert.Equal(t, []string{"https://c.example"}, cfg.AllowedOrigins)
}

func TestLoadIgnoresBadNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("RATE_LIMIT_MAX", "-3")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	t.Setenv("BOOKING_STRICT_FORMAT", "maybe")

	cfg, _ := Load()
	assert.Equal(t, 20, cfg.RateLimitMax)
	assert.Equal(t, 15*time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.StrictFormat)
}

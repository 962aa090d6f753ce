package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at process start.
type Config struct {
	Port            string
	Environment     string
	DatabaseURL     string
	AdminKey        string
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string
	RedisURL        string
	RateLimitMax    int
	RateLimitWindow time.Duration
	StrictFormat    bool
	TrustedProxies  []string
}

// Load reads .env (when present) and the process environment. The returned
// bool reports whether a .env file was loaded.
func Load() (*Config, bool) {
	loaded := godotenv.Load() == nil

	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		databaseURL = strings.TrimSpace(os.Getenv("MYSQL_URL"))
	}

	origins := os.Getenv("FRONTEND_URL")
	if strings.TrimSpace(origins) == "" {
		origins = os.Getenv("CORS_ORIGINS")
	}

	return &Config{
		Port:            envOrDefault("PORT", "5000"),
		Environment:     strings.ToLower(envOrDefault("APP_ENV", "development")),
		DatabaseURL:     databaseURL,
		AdminKey:        strings.TrimSpace(os.Getenv("ADMIN_KEY")),
		AllowedOrigins:  parseOrigins(origins),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		RedisURL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		RateLimitMax:    envAsInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow: envAsDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		StrictFormat:    envAsBool("BOOKING_STRICT_FORMAT", true),
		TrustedProxies:  envAsList("TRUSTED_PROXIES"),
	}, loaded
}

// Validate reports configuration the server cannot start without.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is not set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimRight(strings.TrimSpace(part), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// envAsList splits a comma separated value. An unset key yields nil.
func envAsList(key string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return nil
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envAsInt(key string, def int) int {
	if n, err := strconv.Atoi(envOrDefault(key, "")); err == nil && n > 0 {
		return n
	}
	return def
}

func envAsBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(envOrDefault(key, "")); err == nil {
		return b
	}
	return def
}

func envAsDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(envOrDefault(key, "")); err == nil && d > 0 {
		return d
	}
	return def
}

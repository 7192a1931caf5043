// Package config provides centralized configuration for the e2e suite and
// the reference server. Everything is loaded from environment variables via
// go-envconfig; defaults point at a local development stack.
package config

import (
	"context"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all suite configuration.
type Config struct {
	// Service URLs
	FrontendURL string `env:"FRONTEND_URL, default=http://localhost:3000"`
	BackendURL  string `env:"BACKEND_URL, default=http://localhost:8080"`
	APIBaseURL  string `env:"API_BASE_URL, default=http://localhost:8080/api"`

	// Credentials per role
	AdminEmail    string `env:"ADMIN_EMAIL, default=landlord1"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=pass123"`
	UserEmail     string `env:"TEST_USER_EMAIL, default=renter1"`
	UserPassword  string `env:"TEST_USER_PASSWORD, default=pass123"`

	// Reference server
	ListenAddr string `env:"LISTEN_ADDR, default=:8080"`
	DBPath     string `env:"DB_PATH, default=./data/apartment.db"`
	JWTSecret  string `env:"JWT_SECRET, default=insecure-test-secret"`

	// Health-check dependencies
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// Test behaviour
	CI          bool          `env:"CI"`
	Headless    bool          `env:"HEADLESS, default=true"`
	TestTimeout time.Duration `env:"TEST_TIMEOUT, default=10s"`
	LogLevel    string        `env:"LOG_LEVEL, default=info"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad loads configuration and panics on failure. Use in main().
func MustLoad(ctx context.Context) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		panic("config: " + err.Error())
	}
	return cfg
}

// WaitTimeout is the bound for individual UI waits. Navigation and login
// redirects get the full TestTimeout; element-level waits use half of it.
func (c *Config) WaitTimeout() time.Duration {
	return c.TestTimeout / 2
}

// RequireSecureCookies reports whether the target deployment should be
// setting Secure cookies. Always false for localhost development URLs.
func (c *Config) RequireSecureCookies() bool {
	return !strings.HasPrefix(c.FrontendURL, "http://localhost") &&
		!strings.HasPrefix(c.FrontendURL, "http://127.0.0.1")
}

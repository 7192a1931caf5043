package config

import (
	"context"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Fatalf("FrontendURL = %s", cfg.FrontendURL)
	}
	if cfg.APIBaseURL != "http://localhost:8080/api" {
		t.Fatalf("APIBaseURL = %s", cfg.APIBaseURL)
	}
	if cfg.AdminEmail != "landlord1" || cfg.UserEmail != "renter1" {
		t.Fatalf("default accounts = %s / %s", cfg.AdminEmail, cfg.UserEmail)
	}
	if !cfg.Headless {
		t.Fatal("Headless default is false")
	}
	if cfg.TestTimeout != 10*time.Second {
		t.Fatalf("TestTimeout = %s", cfg.TestTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://staging.example.com")
	t.Setenv("ADMIN_EMAIL", "chu-nha@example.com")
	t.Setenv("TEST_TIMEOUT", "30s")
	t.Setenv("HEADLESS", "false")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.FrontendURL != "https://staging.example.com" {
		t.Fatalf("FrontendURL = %s", cfg.FrontendURL)
	}
	if cfg.AdminEmail != "chu-nha@example.com" {
		t.Fatalf("AdminEmail = %s", cfg.AdminEmail)
	}
	if cfg.TestTimeout != 30*time.Second {
		t.Fatalf("TestTimeout = %s", cfg.TestTimeout)
	}
	if cfg.Headless {
		t.Fatal("HEADLESS=false not applied")
	}
}

func TestWaitTimeoutIsHalfOfTestTimeout(t *testing.T) {
	cfg := &Config{TestTimeout: 10 * time.Second}
	if got := cfg.WaitTimeout(); got != 5*time.Second {
		t.Fatalf("WaitTimeout = %s, want 5s", got)
	}
}

func TestRequireSecureCookies(t *testing.T) {
	cases := []struct {
		url  string
		want bool
	}{
		{"http://localhost:3000", false},
		{"http://127.0.0.1:3000", false},
		{"https://app.example.com", true},
		{"http://staging.internal:3000", true},
	}
	for _, c := range cases {
		cfg := &Config{FrontendURL: c.url}
		if got := cfg.RequireSecureCookies(); got != c.want {
			t.Errorf("RequireSecureCookies(%s) = %v, want %v", c.url, got, c.want)
		}
	}
}

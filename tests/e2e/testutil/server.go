// Package testutil provides the shared in-process fixture for API-level
// tests. The full application (store, auth, REST API, HTML pages) runs on an
// httptest server; state is wiped between tests and the default accounts are
// re-seeded.
package testutil

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/miniapartment/e2e/internal/apiclient"
	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/config"
	"github.com/miniapartment/e2e/internal/logger"
	"github.com/miniapartment/e2e/internal/server"
)

var (
	fixtureMu     sync.Mutex
	sharedFixture *APITestEnv
)

// APITestEnv is the in-process application under test.
type APITestEnv struct {
	Server  *httptest.Server
	BaseURL string
	Config  *config.Config
	App     *server.Server
	Client  *apiclient.Client

	tempDir string
}

// SetupAPITestEnv returns the shared fixture with a clean store. The shared
// fixture uses a permissive login limiter; tests that assert throttling
// should build a private env with NewAPITestEnv.
func SetupAPITestEnv(t *testing.T) *APITestEnv {
	t.Helper()

	fixtureMu.Lock()
	defer fixtureMu.Unlock()

	if sharedFixture == nil {
		// High limits so ordinary tests never trip the throttle.
		limiter := auth.LoginLimiterConfig{RPS: 10000, Burst: 100000, CleanupInterval: time.Hour}
		sharedFixture = newAPITestEnv(t, &limiter)
	}
	resetEnvState(t, sharedFixture)
	return sharedFixture
}

// NewAPITestEnv builds a private fixture, optionally with a custom login
// limiter. The caller owns cleanup via t.Cleanup registered here.
func NewAPITestEnv(t *testing.T, limiter *auth.LoginLimiterConfig) *APITestEnv {
	t.Helper()
	env := newAPITestEnv(t, limiter)
	t.Cleanup(func() {
		env.Server.Close()
		env.App.Close()
		os.RemoveAll(env.tempDir)
	})
	return env
}

func newAPITestEnv(t *testing.T, limiter *auth.LoginLimiterConfig) *APITestEnv {
	t.Helper()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "apitest-*")
	if err != nil {
		t.Fatalf("Failed to create fixture temp dir: %v", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.DBPath = filepath.Join(tempDir, "apartment.db")

	app, err := server.New(ctx, cfg, logger.Get(), server.Options{LimiterConfig: limiter})
	if err != nil {
		t.Fatalf("Failed to assemble server: %v", err)
	}

	ts := httptest.NewServer(app.Handler)
	cfg.FrontendURL = ts.URL
	cfg.BackendURL = ts.URL
	cfg.APIBaseURL = ts.URL + "/api"

	return &APITestEnv{
		Server:  ts,
		BaseURL: ts.URL,
		Config:  cfg,
		App:     app,
		Client:  apiclient.New(ts.URL+"/api", logger.Get()),
		tempDir: tempDir,
	}
}

func resetEnvState(t *testing.T, env *APITestEnv) {
	t.Helper()
	ctx := context.Background()

	if err := env.App.Store.Reset(ctx); err != nil {
		t.Fatalf("Failed to reset store: %v", err)
	}
	if err := env.App.Store.ClearUsers(ctx); err != nil {
		t.Fatalf("Failed to clear users: %v", err)
	}
	err := env.App.Users.SeedDefaults(ctx,
		env.Config.AdminEmail, env.Config.AdminPassword,
		env.Config.UserEmail, env.Config.UserPassword)
	if err != nil {
		t.Fatalf("Failed to re-seed accounts: %v", err)
	}
}

// CleanupShared tears down the shared fixture. Called from TestMain.
func CleanupShared() {
	fixtureMu.Lock()
	defer fixtureMu.Unlock()
	if sharedFixture == nil {
		return
	}
	sharedFixture.Server.Close()
	sharedFixture.App.Close()
	os.RemoveAll(sharedFixture.tempDir)
	sharedFixture = nil
}

// NoRedirectClient returns an HTTP client with a cookie jar that never
// follows redirects, so tests can assert on Location headers and Set-Cookie
// directly.
func NoRedirectClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("Failed to create cookie jar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
		Timeout: 30 * time.Second,
	}
}

// Package browser provides shared test utilities for Playwright browser
// tests. All browser test files use BrowserTestEnv via SetupBrowserTestEnv(t).
package browser

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/miniapartment/e2e/internal/auth"
	"github.com/miniapartment/e2e/internal/config"
	"github.com/miniapartment/e2e/internal/logger"
	"github.com/miniapartment/e2e/internal/server"
)

const (
	// Element-level waits stay short; page objects own the longer
	// navigation waits.
	browserMaxTimeoutMS = 5000
	browserMaxTimeout   = 5 * time.Second
)

var browserFixtureMu sync.Mutex
var browserSharedFixture *BrowserTestEnv

// BrowserTestEnv is the unified test environment for all browser tests: the
// full application on an httptest server plus a shared Chromium instance.
type BrowserTestEnv struct {
	Server  *httptest.Server
	BaseURL string
	Config  *config.Config
	App     *server.Server
	TempDir string

	pw        *playwright.Playwright
	browser   playwright.Browser
	browserMu sync.Mutex
}

// SetupBrowserTestEnv returns the shared fixture with a clean store and the
// default accounts re-seeded.
func SetupBrowserTestEnv(t *testing.T) *BrowserTestEnv {
	t.Helper()

	browserFixtureMu.Lock()
	defer browserFixtureMu.Unlock()

	if browserSharedFixture == nil {
		browserSharedFixture = createBrowserTestEnv(t)
	}
	resetBrowserTestEnvState(t, browserSharedFixture)
	return browserSharedFixture
}

func createBrowserTestEnv(t *testing.T) *BrowserTestEnv {
	t.Helper()
	ctx := context.Background()

	tempDir, err := os.MkdirTemp("", "browser-shared-*")
	if err != nil {
		t.Fatalf("Failed to create shared browser fixture temp dir: %v", err)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	cfg.DBPath = filepath.Join(tempDir, "apartment.db")

	// Permissive limiter: UI tests log in repeatedly.
	limiter := auth.LoginLimiterConfig{RPS: 10000, Burst: 100000, CleanupInterval: time.Hour}
	app, err := server.New(ctx, cfg, logger.Get(), server.Options{LimiterConfig: &limiter})
	if err != nil {
		t.Fatalf("Failed to assemble server: %v", err)
	}

	ts := httptest.NewServer(app.Handler)
	cfg.FrontendURL = ts.URL
	cfg.BackendURL = ts.URL

	return &BrowserTestEnv{
		Server:  ts,
		BaseURL: ts.URL,
		Config:  cfg,
		App:     app,
		TempDir: tempDir,
	}
}

func resetBrowserTestEnvState(t *testing.T, env *BrowserTestEnv) {
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

func cleanupSharedBrowserTestEnv() {
	browserFixtureMu.Lock()
	defer browserFixtureMu.Unlock()
	if browserSharedFixture == nil {
		return
	}
	if browserSharedFixture.browser != nil {
		_ = browserSharedFixture.browser.Close()
	}
	if browserSharedFixture.pw != nil {
		_ = browserSharedFixture.pw.Stop()
	}
	browserSharedFixture.Server.Close()
	browserSharedFixture.App.Close()
	_ = os.RemoveAll(browserSharedFixture.TempDir)
	browserSharedFixture = nil
}

func TestMain(m *testing.M) {
	code := m.Run()
	cleanupSharedBrowserTestEnv()
	os.Exit(code)
}

// =============================================================================
// Browser lifecycle helpers
// =============================================================================

// InitBrowser initializes Playwright and launches Chromium. Skips the test
// if not available.
func (env *BrowserTestEnv) InitBrowser(t *testing.T) {
	t.Helper()

	env.browserMu.Lock()
	defer env.browserMu.Unlock()

	if env.browser != nil {
		return
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Skip("Playwright not available:", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(env.Config.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		t.Skip("Could not launch browser:", err)
	}
	env.pw = pw
	env.browser = browser
}

// NewPage creates a new browser page with the default timeouts.
func (env *BrowserTestEnv) NewPage(t *testing.T) playwright.Page {
	t.Helper()

	page, err := env.browser.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	page.SetDefaultTimeout(browserMaxTimeoutMS)
	page.SetDefaultNavigationTimeout(browserMaxTimeoutMS)
	return page
}

// NewContext creates a new browser context.
func (env *BrowserTestEnv) NewContext(t *testing.T) playwright.BrowserContext {
	t.Helper()

	ctx, err := env.browser.NewContext()
	if err != nil {
		t.Fatalf("could not create browser context: %v", err)
	}
	ctx.SetDefaultTimeout(browserMaxTimeoutMS)
	ctx.SetDefaultNavigationTimeout(browserMaxTimeoutMS)
	return ctx
}

// NewContextWithOptions creates a new browser context with caller-provided
// options.
func (env *BrowserTestEnv) NewContextWithOptions(t *testing.T, options playwright.BrowserNewContextOptions) playwright.BrowserContext {
	t.Helper()

	ctx, err := env.browser.NewContext(options)
	if err != nil {
		t.Fatalf("could not create browser context with options: %v", err)
	}
	ctx.SetDefaultTimeout(browserMaxTimeoutMS)
	ctx.SetDefaultNavigationTimeout(browserMaxTimeoutMS)
	return ctx
}

// =============================================================================
// Session helpers
// =============================================================================

// LoginAs creates a server-side session for the account and returns the
// session ID for the cookie.
func (env *BrowserTestEnv) LoginAs(t *testing.T, email string) string {
	t.Helper()

	user, err := env.App.Store.GetUserByEmail(context.Background(), email)
	if err != nil {
		t.Fatalf("Failed to look up account %s: %v", email, err)
	}
	sessionID, err := env.App.Sessions.Create(user.ID, user.Email, user.Role)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return sessionID
}

// SetSessionCookie sets the session cookie on a Playwright browser context.
func SetSessionCookie(t *testing.T, ctx playwright.BrowserContext, sessionID string) {
	t.Helper()
	err := ctx.AddCookies([]playwright.OptionalCookie{
		{
			Name:     auth.SessionCookieName,
			Value:    sessionID,
			Domain:   playwright.String("127.0.0.1"),
			Path:     playwright.String("/"),
			HttpOnly: playwright.Bool(true),
			Secure:   playwright.Bool(false),
			SameSite: playwright.SameSiteAttributeLax,
		},
	})
	if err != nil {
		t.Fatalf("Failed to set session cookie: %v", err)
	}
}

// NewLandlordContext creates a context already logged in as the landlord.
func (env *BrowserTestEnv) NewLandlordContext(t *testing.T) playwright.BrowserContext {
	t.Helper()
	ctx := env.NewContext(t)
	SetSessionCookie(t, ctx, env.LoginAs(t, env.Config.AdminEmail))
	return ctx
}

// NewRenterContext creates a context already logged in as the renter.
func (env *BrowserTestEnv) NewRenterContext(t *testing.T) playwright.BrowserContext {
	t.Helper()
	ctx := env.NewContext(t)
	SetSessionCookie(t, ctx, env.LoginAs(t, env.Config.UserEmail))
	return ctx
}

// NewPageIn opens a page inside a context.
func NewPageIn(t *testing.T, ctx playwright.BrowserContext) playwright.Page {
	t.Helper()
	page, err := ctx.NewPage()
	if err != nil {
		t.Fatalf("could not create page: %v", err)
	}
	return page
}

// SessionCookieValue returns the value of the session cookie held by the
// context, or "" when absent.
func SessionCookieValue(t *testing.T, ctx playwright.BrowserContext) string {
	t.Helper()
	cookies, err := ctx.Cookies()
	if err != nil {
		t.Fatalf("Failed to read cookies: %v", err)
	}
	for _, c := range cookies {
		if c.Name == auth.SessionCookieName {
			return c.Value
		}
	}
	return ""
}

// =============================================================================
// Navigation helpers
// =============================================================================

// Navigate navigates to a path on the test server and waits for
// DOMContentLoaded.
func Navigate(t *testing.T, page playwright.Page, baseURL, path string) {
	t.Helper()

	_, err := page.Goto(baseURL+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(browserMaxTimeoutMS),
	})
	if err != nil {
		t.Fatalf("Failed to navigate to %s: %v", path, err)
	}
}

// WaitForSelector waits for an element to be visible and returns its locator.
func WaitForSelector(t *testing.T, page playwright.Page, selector string) playwright.Locator {
	t.Helper()

	locator := page.Locator(selector).First()
	err := locator.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(browserMaxTimeoutMS),
	})
	if err != nil {
		content, _ := page.Content()
		if len(content) > 500 {
			content = content[:500] + "..."
		}
		t.Logf("Current URL: %s", page.URL())
		t.Logf("Content preview: %s", content)
		t.Fatalf("Failed to wait for selector %s: %v", selector, err)
	}
	return locator
}

package browser

import (
	"strings"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/miniapartment/e2e/internal/pages"
)

func TestLoginPageRenders(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	page := env.NewPage(t)
	defer page.Close()

	Navigate(t, page, env.BaseURL, "/login")

	WaitForSelector(t, page, "input#username")
	WaitForSelector(t, page, "input#password")

	submit := WaitForSelector(t, page, `button[type="submit"]`)
	text, err := submit.TextContent()
	if err != nil {
		t.Fatalf("Failed to read submit button text: %v", err)
	}
	if !strings.Contains(text, "Đăng Nhập") {
		t.Fatalf("Submit button text = %q, want it to contain %q", text, "Đăng Nhập")
	}

	registerLink := page.Locator(`a[href="/register"]`)
	count, err := registerLink.Count()
	if err != nil {
		t.Fatalf("Failed to count register links: %v", err)
	}
	if count == 0 {
		t.Fatal("Login page has no link to /register")
	}
}

func TestLoginEmptyFieldsBlockedByNativeValidation(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	page := env.NewPage(t)
	defer page.Close()

	Navigate(t, page, env.BaseURL, "/login")
	WaitForSelector(t, page, "input#username")

	for _, sel := range []string{"input#username", "input#password"} {
		count, err := page.Locator(sel + "[required]").Count()
		if err != nil {
			t.Fatalf("Failed to probe %s[required]: %v", sel, err)
		}
		if count == 0 {
			t.Fatalf("%s is not marked required", sel)
		}
	}

	// With both fields empty the browser blocks submission client-side.
	if err := page.Locator(`button[type="submit"]`).Click(); err != nil {
		t.Fatalf("Failed to click submit: %v", err)
	}
	if !strings.Contains(page.URL(), "/login") {
		t.Fatalf("Empty form submitted, URL = %s", page.URL())
	}
}

func TestLoginWrongPasswordShowsAlert(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	page := env.NewPage(t)
	defer page.Close()

	login := pages.NewLoginPage(page, env.BaseURL)
	if err := login.Open(); err != nil {
		t.Fatalf("Failed to open login page: %v", err)
	}
	if err := login.Login(env.Config.AdminEmail, "wrong-password"); err != nil {
		t.Fatalf("Failed to submit login form: %v", err)
	}
	if err := login.WaitForLoginError(); err != nil {
		t.Fatalf("Login error alert did not appear: %v", err)
	}

	msg, err := login.ErrorMessage()
	if err != nil {
		t.Fatalf("Failed to read error message: %v", err)
	}
	if !strings.Contains(msg, "không đúng") {
		t.Fatalf("Error message = %q, want credential failure text", msg)
	}
	if !strings.Contains(page.URL(), "/login") {
		t.Fatalf("After failed login URL = %s, want to stay on /login", page.URL())
	}
}

func TestLoginSuccessRedirectsToDashboard(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	ctx := env.NewContext(t)
	defer ctx.Close()
	page := NewPageIn(t, ctx)

	login := pages.NewLoginPage(page, env.BaseURL)
	if err := login.Open(); err != nil {
		t.Fatalf("Failed to open login page: %v", err)
	}
	if err := login.Login(env.Config.AdminEmail, env.Config.AdminPassword); err != nil {
		t.Fatalf("Failed to submit login form: %v", err)
	}
	if err := login.WaitForLoginSuccess(); err != nil {
		t.Fatalf("Login did not redirect to dashboard: %v", err)
	}

	if SessionCookieValue(t, ctx) == "" {
		t.Fatal("Session cookie not set after successful login")
	}
}

func TestSessionSurvivesReload(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	ctx := env.NewLandlordContext(t)
	defer ctx.Close()
	page := NewPageIn(t, ctx)

	Navigate(t, page, env.BaseURL, "/dashboard")
	WaitForSelector(t, page, `h1:has-text("Tổng quan")`)

	if _, err := page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	WaitForSelector(t, page, `h1:has-text("Tổng quan")`)
	if strings.Contains(page.URL(), "/login") {
		t.Fatal("Reload dropped the session and bounced to /login")
	}
}

func TestLogoutClearsSession(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	ctx := env.NewLandlordContext(t)
	defer ctx.Close()
	page := NewPageIn(t, ctx)

	dash := pages.NewDashboardPage(page, env.BaseURL)
	if err := dash.Open(); err != nil {
		t.Fatalf("Failed to open dashboard: %v", err)
	}
	if err := dash.WaitLoaded(); err != nil {
		t.Fatalf("Dashboard did not load: %v", err)
	}
	if err := dash.Logout(); err != nil {
		t.Fatalf("Logout did not land on /login: %v", err)
	}

	if v := SessionCookieValue(t, ctx); v != "" {
		t.Fatalf("Session cookie still present after logout: %q", v)
	}

	// Protected pages now redirect to login.
	Navigate(t, page, env.BaseURL, "/dashboard")
	if err := page.WaitForURL("**/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(browserMaxTimeoutMS),
	}); err != nil {
		t.Fatalf("Dashboard did not redirect to /login after logout: %v", err)
	}
}

func TestUnauthenticatedDashboardRedirects(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	page := env.NewPage(t)
	defer page.Close()

	Navigate(t, page, env.BaseURL, "/dashboard")
	if err := page.WaitForURL("**/login", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(browserMaxTimeoutMS),
	}); err != nil {
		t.Fatalf("Expected redirect to /login, still at %s: %v", page.URL(), err)
	}
}

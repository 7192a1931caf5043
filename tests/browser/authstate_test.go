package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/miniapartment/e2e/internal/authstate"
	"github.com/miniapartment/e2e/internal/pages"
)

func TestAuthStateSaveAndRestore(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	// Keep state files inside the test's temp dir.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working dir: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Failed to enter temp dir: %v", err)
	}
	defer os.Chdir(origDir)

	// Log in once and persist the storage state.
	loginCtx := env.NewContext(t)
	page := NewPageIn(t, loginCtx)
	login := pages.NewLoginPage(page, env.BaseURL)
	if err := login.Open(); err != nil {
		t.Fatalf("Failed to open login page: %v", err)
	}
	if err := login.Login(env.Config.AdminEmail, env.Config.AdminPassword); err != nil {
		t.Fatalf("Failed to log in: %v", err)
	}
	if err := login.WaitForLoginSuccess(); err != nil {
		t.Fatalf("Login did not reach dashboard: %v", err)
	}

	path, err := authstate.Save(loginCtx, authstate.RoleAdmin)
	if err != nil {
		t.Fatalf("Failed to save auth state: %v", err)
	}
	if filepath.Base(path) != "admin.json" {
		t.Fatalf("State path = %s, want auth/admin.json", path)
	}
	if !authstate.Exists(authstate.RoleAdmin) {
		t.Fatal("Exists reports no saved state after Save")
	}
	loginCtx.Close()

	// A fresh context restored from the state file is already logged in.
	restored := env.NewContextWithOptions(t, authstate.ContextOptions(authstate.RoleAdmin))
	defer restored.Close()
	page2 := NewPageIn(t, restored)

	dash := pages.NewDashboardPage(page2, env.BaseURL)
	if err := dash.Open(); err != nil {
		t.Fatalf("Failed to open dashboard: %v", err)
	}
	if err := dash.WaitLoaded(); err != nil {
		t.Fatalf("Restored context is not logged in: %v", err)
	}

	if err := authstate.Cleanup(); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}
	if authstate.Exists(authstate.RoleAdmin) {
		t.Fatal("State file still present after Cleanup")
	}
}

func TestDashboardRevenueFormat(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	// One occupied room contributes its rent to the month's revenue.
	room := seedRoomsDirect(t, env, 1)[0]
	if _, err := env.App.Store.UpdateRoom(t.Context(), room.ID, roomWithStatus(room, "OCCUPIED")); err != nil {
		t.Fatalf("Failed to mark room occupied: %v", err)
	}

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

	revenue, err := dash.Revenue()
	if err != nil {
		t.Fatalf("Failed to read revenue: %v", err)
	}
	// 2,000,000 VND renders as "2.0tr".
	if revenue != "2.0tr" {
		t.Fatalf("Revenue = %q, want %q", revenue, "2.0tr")
	}
}

package browser

import (
	"slices"
	"testing"

	"github.com/playwright-community/playwright-go"

	"github.com/miniapartment/e2e/internal/pages"
)

func TestLandlordMenuShowsManagementEntries(t *testing.T) {
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

	items, err := dash.MenuItems()
	if err != nil {
		t.Fatalf("Failed to read menu: %v", err)
	}
	for _, want := range []string{"Tổng quan", "Quản lý Căn Hộ", "Hóa đơn", "Tài Sản", "Thông báo"} {
		if !slices.Contains(items, want) {
			t.Fatalf("Landlord menu %v is missing %q", items, want)
		}
	}
}

func TestRenterMenuHidesManagementEntries(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	ctx := env.NewRenterContext(t)
	defer ctx.Close()
	page := NewPageIn(t, ctx)

	dash := pages.NewDashboardPage(page, env.BaseURL)
	if err := dash.Open(); err != nil {
		t.Fatalf("Failed to open dashboard: %v", err)
	}
	if err := dash.WaitLoaded(); err != nil {
		t.Fatalf("Dashboard did not load: %v", err)
	}

	items, err := dash.MenuItems()
	if err != nil {
		t.Fatalf("Failed to read menu: %v", err)
	}
	for _, hidden := range []string{"Quản lý Căn Hộ", "Tài Sản"} {
		if slices.Contains(items, hidden) {
			t.Fatalf("Renter menu %v must not contain %q", items, hidden)
		}
	}
	for _, want := range []string{"Tổng quan", "Hóa đơn", "Thông báo"} {
		if !slices.Contains(items, want) {
			t.Fatalf("Renter menu %v is missing %q", items, want)
		}
	}
}

func TestRenterCannotOpenRoomManagement(t *testing.T) {
	env := SetupBrowserTestEnv(t)
	env.InitBrowser(t)

	ctx := env.NewRenterContext(t)
	defer ctx.Close()
	page := NewPageIn(t, ctx)

	// Direct navigation bounces back to the dashboard, not a 403 page.
	Navigate(t, page, env.BaseURL, "/room")
	if err := page.WaitForURL("**/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(browserMaxTimeoutMS),
	}); err != nil {
		t.Fatalf("Renter at /room was not redirected to /dashboard, at %s: %v", page.URL(), err)
	}
}

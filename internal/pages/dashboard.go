package pages

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// DashboardPage drives the overview page.
type DashboardPage struct {
	*BasePage
}

// NewDashboardPage creates the dashboard page object.
func NewDashboardPage(page playwright.Page, baseURL string) *DashboardPage {
	return &DashboardPage{BasePage: NewBasePage(page, baseURL)}
}

// Open navigates to /dashboard.
func (p *DashboardPage) Open() error {
	return p.Navigate("/dashboard")
}

// WaitLoaded waits for the page heading.
func (p *DashboardPage) WaitLoaded() error {
	_, err := p.WaitVisible(`h1:has-text("Tổng quan")`, "h1")
	return err
}

// Revenue returns the revenue card's formatted value, e.g. "1.5tr".
func (p *DashboardPage) Revenue() (string, error) {
	loc, err := p.WaitVisible(`[data-testid="revenue-value"]`, `[data-testid="stat-revenue"] p`)
	if err != nil {
		return "", err
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("read revenue: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// MenuItems returns the visible sidebar menu labels in order.
func (p *DashboardPage) MenuItems() ([]string, error) {
	loc := p.Page.Locator("aside nav a")
	texts, err := loc.AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("read menu items: %w", err)
	}
	items := make([]string, 0, len(texts))
	for _, t := range texts {
		items = append(items, strings.TrimSpace(t))
	}
	return items, nil
}

// Logout clicks the sidebar logout button and waits for the login page.
func (p *DashboardPage) Logout() error {
	if err := p.Click(`[data-testid="logout"]`, `aside button[type="submit"]`); err != nil {
		return err
	}
	return p.WaitForURL("**/login")
}

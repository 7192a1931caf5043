// Package pages holds the Playwright page objects the browser suite drives
// the UI through. Each element is located through an ordered list of selector
// strategies so markup refactors (id renamed, testid added) do not break the
// suite as long as one strategy still matches.
package pages

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// DefaultTimeout bounds individual page-object waits.
const DefaultTimeout = 10 * time.Second

// BasePage wraps a Playwright page with resilient element location.
type BasePage struct {
	Page    playwright.Page
	BaseURL string
	Timeout time.Duration
}

// NewBasePage creates a page object rooted at baseURL.
func NewBasePage(page playwright.Page, baseURL string) *BasePage {
	return &BasePage{Page: page, BaseURL: baseURL, Timeout: DefaultTimeout}
}

func (p *BasePage) timeoutMS() float64 {
	return float64(p.Timeout.Milliseconds())
}

// Navigate opens a path under the base URL and waits for DOMContentLoaded.
func (p *BasePage) Navigate(path string) error {
	_, err := p.Page.Goto(p.BaseURL+path, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(p.timeoutMS()),
	})
	if err != nil {
		return fmt.Errorf("navigate to %s: %w", path, err)
	}
	return nil
}

// Locate probes each selector strategy in order and returns the first that
// matches at least one element. Order encodes preference: most specific
// first, most stable last.
func (p *BasePage) Locate(strategies ...string) (playwright.Locator, error) {
	for _, sel := range strategies {
		loc := p.Page.Locator(sel)
		count, err := loc.Count()
		if err != nil {
			continue
		}
		if count > 0 {
			return loc.First(), nil
		}
	}
	return nil, fmt.Errorf("no selector strategy matched: %v", strategies)
}

// Fill locates an element via strategies and fills it.
func (p *BasePage) Fill(value string, strategies ...string) error {
	loc, err := p.Locate(strategies...)
	if err != nil {
		return err
	}
	if err := loc.Fill(value); err != nil {
		return fmt.Errorf("fill %v: %w", strategies, err)
	}
	return nil
}

// Click locates an element via strategies and clicks it.
func (p *BasePage) Click(strategies ...string) error {
	loc, err := p.Locate(strategies...)
	if err != nil {
		return err
	}
	if err := loc.Click(); err != nil {
		return fmt.Errorf("click %v: %w", strategies, err)
	}
	return nil
}

// SelectOption locates a select element and chooses an option by value.
func (p *BasePage) SelectOption(value string, strategies ...string) error {
	loc, err := p.Locate(strategies...)
	if err != nil {
		return err
	}
	if _, err := loc.SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	}); err != nil {
		return fmt.Errorf("select %q on %v: %w", value, strategies, err)
	}
	return nil
}

// WaitVisible waits for an element to become visible and returns it.
func (p *BasePage) WaitVisible(strategies ...string) (playwright.Locator, error) {
	loc, err := p.Locate(strategies...)
	if err != nil {
		return nil, err
	}
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(p.timeoutMS()),
	}); err != nil {
		return nil, fmt.Errorf("wait for %v: %w", strategies, err)
	}
	return loc, nil
}

// WaitForURL waits for the page URL to match pattern (glob syntax).
func (p *BasePage) WaitForURL(pattern string) error {
	if err := p.Page.WaitForURL(pattern, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(p.timeoutMS()),
	}); err != nil {
		return fmt.Errorf("wait for URL %s: %w", pattern, err)
	}
	return nil
}

// Screenshot captures the page into dir with a timestamped filename and
// returns the file path.
func (p *BasePage) Screenshot(dir, label string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create screenshot dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s.png", label, time.Now().Format("20060102-150405.000"))
	path := filepath.Join(dir, name)
	if _, err := p.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("capture screenshot: %w", err)
	}
	return path, nil
}

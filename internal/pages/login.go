package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// LoginPage drives the login form.
type LoginPage struct {
	*BasePage
}

// NewLoginPage creates the login page object.
func NewLoginPage(page playwright.Page, baseURL string) *LoginPage {
	return &LoginPage{BasePage: NewBasePage(page, baseURL)}
}

// Open navigates to /login.
func (p *LoginPage) Open() error {
	return p.Navigate("/login")
}

// Login fills the credential fields and submits the form. It does not wait
// for the outcome; pair with WaitForLoginSuccess or WaitForLoginError.
func (p *LoginPage) Login(username, password string) error {
	if err := p.Fill(username,
		"input#username", `[data-testid="username"]`, `input[name="username"]`); err != nil {
		return err
	}
	if err := p.Fill(password,
		"input#password", `[data-testid="password"]`, `input[name="password"]`); err != nil {
		return err
	}
	return p.Click(
		`[data-testid="login-submit"]`, `button[type="submit"]`)
}

// WaitForLoginSuccess waits for the post-login redirect to the dashboard.
func (p *LoginPage) WaitForLoginSuccess() error {
	return p.WaitForURL("**/dashboard")
}

// WaitForLoginError waits for the alert message to appear.
func (p *LoginPage) WaitForLoginError() error {
	_, err := p.WaitVisible(`[data-testid="login-error"]`, `p[role="alert"]`)
	return err
}

// ErrorMessage returns the text of the visible login error.
func (p *LoginPage) ErrorMessage() (string, error) {
	loc, err := p.WaitVisible(`[data-testid="login-error"]`, `p[role="alert"]`)
	if err != nil {
		return "", err
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("read login error text: %w", err)
	}
	return text, nil
}

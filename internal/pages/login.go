package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/webstore-qa/shopcheck/internal/testdata"
)

// Login is the returning-customer sign-in form.
type Login struct {
	page playwright.Page
}

// NewLogin binds the login page to a browser page.
func NewLogin(page playwright.Page) *Login {
	return &Login{page: page}
}

// Visit navigates to the login form.
func (l *Login) Visit() error {
	if _, err := l.page.Goto("/login"); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	return nil
}

// SignIn submits the credentials. Outcome is observed through the Home
// page header or ErrorMessage, not here.
func (l *Login) SignIn(creds testdata.Credentials) error {
	// Scope to the returning-customer block; the page also hosts the
	// guest and new-customer forms.
	form := l.page.Locator(".returning-wrapper")
	if err := form.Locator("#Email").Fill(creds.Email); err != nil {
		return fmt.Errorf("fill email: %w", err)
	}
	if err := form.Locator("#Password").Fill(creds.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}
	if err := form.Locator("input.login-button").Click(); err != nil {
		return fmt.Errorf("click log in: %w", err)
	}
	return nil
}

// ErrorMessage waits for and returns the login failure summary.
func (l *Login) ErrorMessage() (string, error) {
	loc := l.page.Locator(".validation-summary-errors")
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("wait for login error: %w", err)
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("read login error: %w", err)
	}
	return text, nil
}

package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/webstore-qa/shopcheck/internal/testdata"
)

// Register is the customer sign-up form.
type Register struct {
	page playwright.Page
}

// NewRegister binds the registration page to a browser page.
func NewRegister(page playwright.Page) *Register {
	return &Register{page: page}
}

// Visit navigates to the registration form.
func (r *Register) Visit() error {
	if _, err := r.page.Goto("/register"); err != nil {
		return fmt.Errorf("open registration page: %w", err)
	}
	return nil
}

// Submit fills the form from rec and presses Register. It does not judge
// the outcome; pair it with SuccessMessage or one of the error readers.
func (r *Register) Submit(rec testdata.Registration) error {
	fields := []struct {
		selector string
		value    string
	}{
		{"#FirstName", rec.FirstName},
		{"#LastName", rec.LastName},
		{"#Email", rec.Email},
		{"#Password", rec.Password},
		{"#ConfirmPassword", rec.Password},
	}
	for _, f := range fields {
		if err := r.page.Locator(f.selector).Fill(f.value); err != nil {
			return fmt.Errorf("fill %s: %w", f.selector, err)
		}
	}

	if err := r.page.Locator("#register-button").Click(); err != nil {
		return fmt.Errorf("click register: %w", err)
	}
	return nil
}

// SuccessMessage waits for and returns the post-registration result text.
func (r *Register) SuccessMessage() (string, error) {
	loc := r.page.Locator(".page-body .result")
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("wait for registration result: %w", err)
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("read registration result: %w", err)
	}
	return text, nil
}

// SummaryError returns the form-level validation summary, where the shop
// reports account-level rejections such as a duplicate email.
func (r *Register) SummaryError() (string, error) {
	loc := r.page.Locator(".validation-summary-errors")
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("wait for validation summary: %w", err)
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("read validation summary: %w", err)
	}
	return text, nil
}

// FieldError returns the inline validation message attached to one input,
// such as the minimum-length complaint under the password field.
func (r *Register) FieldError() (string, error) {
	loc := r.page.Locator("span.field-validation-error").First()
	if err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return "", fmt.Errorf("wait for field validation error: %w", err)
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", fmt.Errorf("read field validation error: %w", err)
	}
	return text, nil
}

// HasValidationErrors reports whether any validation text is visible,
// without waiting for it to appear.
func (r *Register) HasValidationErrors() (bool, error) {
	count, err := r.page.Locator(".validation-summary-errors, span.field-validation-error").Count()
	if err != nil {
		return false, fmt.Errorf("count validation errors: %w", err)
	}
	return count > 0, nil
}

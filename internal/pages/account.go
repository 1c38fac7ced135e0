package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Account is the customer info screen where profile fields are edited.
type Account struct {
	page playwright.Page
}

// NewAccount binds the account page to a browser page.
func NewAccount(page playwright.Page) *Account {
	return &Account{page: page}
}

// Visit navigates to the customer info form. Requires a signed-in
// session; the shop redirects anonymous visitors to the login page.
func (a *Account) Visit() error {
	if _, err := a.page.Goto("/customer/info"); err != nil {
		return fmt.Errorf("open customer info page: %w", err)
	}
	return nil
}

// UpdateFirstName replaces the first name field and saves the form.
func (a *Account) UpdateFirstName(name string) error {
	if err := a.page.Locator("#FirstName").Fill(name); err != nil {
		return fmt.Errorf("fill first name: %w", err)
	}
	if err := a.page.Locator("input.save-customer-info-button").Click(); err != nil {
		return fmt.Errorf("click save: %w", err)
	}
	return nil
}

// FirstName reads the current value of the first name field.
func (a *Account) FirstName() (string, error) {
	value, err := a.page.Locator("#FirstName").InputValue()
	if err != nil {
		return "", fmt.Errorf("read first name: %w", err)
	}
	return value, nil
}

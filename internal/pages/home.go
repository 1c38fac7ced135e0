package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// Home is the shop's landing page, including the site-wide header with
// the search box and the account links.
type Home struct {
	page playwright.Page
}

// NewHome binds the home page to a browser page.
func NewHome(page playwright.Page) *Home {
	return &Home{page: page}
}

// Visit navigates to the shop root.
func (h *Home) Visit() error {
	if _, err := h.page.Goto("/"); err != nil {
		return fmt.Errorf("open home page: %w", err)
	}
	return nil
}

// Search submits a term through the header search box and returns the
// results page.
func (h *Home) Search(term string) (*SearchResults, error) {
	if err := h.page.Locator("#small-searchterms").Fill(term); err != nil {
		return nil, fmt.Errorf("fill search box: %w", err)
	}
	if err := h.page.Locator("input.search-box-button").Click(); err != nil {
		return nil, fmt.Errorf("click search: %w", err)
	}
	return NewSearchResults(h.page), nil
}

// LoggedInAccount returns the email shown in the header account link,
// present only while a customer is signed in.
func (h *Home) LoggedInAccount() (string, error) {
	text, err := h.page.Locator(".header-links a.account").First().TextContent()
	if err != nil {
		return "", fmt.Errorf("read account header: %w", err)
	}
	return text, nil
}

// Logout clicks the header log out link, ending the customer session.
func (h *Home) Logout() error {
	if err := h.page.Locator("a.ico-logout").Click(); err != nil {
		return fmt.Errorf("click log out: %w", err)
	}
	return nil
}

// IsLoggedIn reports whether the header carries the log out link. It
// waits for the header itself so a page mid-navigation cannot read as
// logged out, then checks the link without waiting.
func (h *Home) IsLoggedIn() (bool, error) {
	header := h.page.Locator(".header-links")
	if err := header.WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return false, fmt.Errorf("wait for header: %w", err)
	}
	count, err := h.page.Locator("a.ico-logout").Count()
	if err != nil {
		return false, fmt.Errorf("check log out link: %w", err)
	}
	return count > 0, nil
}

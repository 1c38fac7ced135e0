package pages

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// SearchResults is the product listing produced by a catalog search.
type SearchResults struct {
	page playwright.Page
}

// NewSearchResults binds the results page to a browser page.
func NewSearchResults(page playwright.Page) *SearchResults {
	return &SearchResults{page: page}
}

// Titles returns the product titles in display order. An empty slice
// means the search matched nothing.
func (s *SearchResults) Titles() ([]string, error) {
	// Wait for the results container so an empty grid is distinguishable
	// from a page that has not rendered yet.
	if err := s.page.Locator(".search-results").WaitFor(playwright.LocatorWaitForOptions{
		State: playwright.WaitForSelectorStateVisible,
	}); err != nil {
		return nil, fmt.Errorf("wait for search results: %w", err)
	}

	titles, err := s.page.Locator(".product-item .product-title a").AllInnerTexts()
	if err != nil {
		return nil, fmt.Errorf("read product titles: %w", err)
	}
	return titles, nil
}

// NoResultsMessage returns the "nothing matched" indicator text, empty
// when results are present.
func (s *SearchResults) NoResultsMessage() (string, error) {
	loc := s.page.Locator(".search-results .result")
	count, err := loc.Count()
	if err != nil {
		return "", fmt.Errorf("count no-results indicator: %w", err)
	}
	if count == 0 {
		return "", nil
	}
	text, err := loc.First().TextContent()
	if err != nil {
		return "", fmt.Errorf("read no-results indicator: %w", err)
	}
	return text, nil
}

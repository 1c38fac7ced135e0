// Package pages holds the Page Objects for the demo shop. Each type wraps
// one logical screen: it holds the bound playwright.Page, resolves elements
// through stable locators (the shop's field IDs and CSS hooks) and exposes
// one method per user action. Methods either perform an action
// or return an observable value for the spec to assert on; a locator that
// never resolves fails with Playwright's timeout error, which propagates
// and fails the enclosing spec.
package pages

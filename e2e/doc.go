//go:build e2e

// Package e2e holds the browser specs for the demo web shop.
//
// The specs are isolated from the unit test suite via the e2e build tag.
// They need the Playwright driver and a Chromium install:
//
//	go run github.com/playwright-community/playwright-go/cmd/playwright@latest install --with-deps chromium
//
// Running through the CLI (progress, retries, report artifacts):
//
//	go run ./cmd/shopcheck run
//
// Running directly:
//
//	go test -tags=e2e ./e2e/...
//
// Unit tests only:
//
//	go test ./...
//
// Isolation: the browser and Playwright driver are shared per binary, but
// every spec gets its own browser context, so cookies and storage never
// leak between specs and they can run in parallel. Generated identities
// are unique per run; nothing is cleaned up server side, the shop is an
// opaque external system.
package e2e

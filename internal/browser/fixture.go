// Package browser owns the Playwright lifecycle for the suite: one driver
// and one browser per test binary, one isolated context per spec, and the
// artifact capture (screenshot, video, trace) that happens when a spec fails.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/webstore-qa/shopcheck/internal/config"
)

// Fixture holds the per-binary Playwright state. It is created once in
// TestMain and shared; isolation happens at the context level, never here.
type Fixture struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	cfg     config.Config
	runDir  string
}

// NewFixture starts the Playwright driver and launches Chromium.
// Artifacts for this run land under runDir.
func NewFixture(cfg config.Config, runDir string) (*Fixture, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMoMS)),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}

	return &Fixture{pw: pw, browser: b, cfg: cfg, runDir: runDir}, nil
}

// Close releases the browser and stops the driver. Always call it, or
// orphaned browser processes accumulate.
func (f *Fixture) Close() error {
	var firstErr error
	if f.browser != nil {
		if err := f.browser.Close(); err != nil {
			firstErr = fmt.Errorf("close browser: %w", err)
		}
	}
	if f.pw != nil {
		if err := f.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("stop playwright: %w", err)
		}
	}
	return firstErr
}

// LazyFixture defers driver and browser startup until the first spec
// actually asks for a session. `go test -list` (and any -run pattern
// matching nothing) executes TestMain too, and enumerating spec names
// must not launch Chromium, create artifact directories, or require
// browsers to be installed at all.
type LazyFixture struct {
	cfg    config.Config
	runDir string

	once sync.Once
	fx   *Fixture
	err  error
}

// NewLazyFixture prepares a fixture without starting anything. Pass an
// empty runDir to derive a local one when (and only when) the first
// session is created.
func NewLazyFixture(cfg config.Config, runDir string) *LazyFixture {
	return &LazyFixture{cfg: cfg, runDir: runDir}
}

// NewSession launches the browser on first use, then behaves exactly
// like Fixture.NewSession. Safe for parallel specs.
func (l *LazyFixture) NewSession(t *testing.T) *Session {
	t.Helper()
	l.once.Do(l.init)
	if l.err != nil {
		t.Fatalf("%v", l.err)
	}
	return l.fx.NewSession(t)
}

func (l *LazyFixture) init() {
	runDir := l.runDir
	if runDir == "" {
		var err error
		runDir, err = l.cfg.RunDir("local-" + time.Now().Format("20060102-150405"))
		if err != nil {
			l.err = err
			return
		}
	}
	l.fx, l.err = NewFixture(l.cfg, runDir)
}

// Close releases the underlying fixture if it was ever started.
func (l *LazyFixture) Close() error {
	if l.fx == nil {
		return nil
	}
	return l.fx.Close()
}

// Session is one spec's exclusive browser context plus its page.
// Cookies and storage are isolated from every other session.
type Session struct {
	Context playwright.BrowserContext
	Page    playwright.Page

	dir string
}

// NewSession creates an isolated context and page for the calling spec
// and registers cleanup on t: on failure a full-page screenshot and (if
// enabled) the trace are saved before the context is closed.
func (f *Fixture) NewSession(t *testing.T) *Session {
	t.Helper()

	dir := filepath.Join(f.runDir, sanitize(t.Name()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create session artifact dir: %v", err)
	}

	opts := playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(f.cfg.BaseURL),
	}
	if f.cfg.Video {
		opts.RecordVideo = &playwright.RecordVideo{Dir: dir}
	}

	ctx, err := f.browser.NewContext(opts)
	if err != nil {
		t.Fatalf("create browser context: %v", err)
	}
	ctx.SetDefaultTimeout(float64(f.cfg.Timeout().Milliseconds()))

	page, err := startSession(ctx, f.cfg.Trace, t.Name())
	if err != nil {
		t.Fatalf("%v", err)
	}

	s := &Session{Context: ctx, Page: page, dir: dir}

	t.Cleanup(func() {
		if t.Failed() {
			s.SaveScreenshot(t, "failure")
		}
		if f.cfg.Trace {
			tracePath := filepath.Join(dir, "trace.zip")
			if err := ctx.Tracing().Stop(tracePath); err != nil {
				t.Logf("stop tracing: %v", err)
			}
		}
		if err := ctx.Close(); err != nil {
			t.Logf("close context: %v", err)
		}
	})

	return s
}

// sessionContext is the slice of playwright.BrowserContext that session
// setup needs; narrowed so the failure paths stay testable.
type sessionContext interface {
	Tracing() playwright.Tracing
	NewPage() (playwright.Page, error)
	Close(options ...playwright.BrowserContextCloseOptions) error
}

// startSession starts tracing (when enabled) and opens the spec's page.
// On any failure the context is closed before returning, so an aborted
// setup cannot leak it until the fixture-wide browser close.
func startSession(ctx sessionContext, trace bool, title string) (playwright.Page, error) {
	if trace {
		err := ctx.Tracing().Start(playwright.TracingStartOptions{
			Screenshots: playwright.Bool(true),
			Snapshots:   playwright.Bool(true),
			Title:       playwright.String(title),
		})
		if err != nil {
			_ = ctx.Close()
			return nil, fmt.Errorf("start tracing: %w", err)
		}
	}

	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("create page: %w", err)
	}
	return page, nil
}

// ArtifactDir is where this session's evidence files are written.
func (s *Session) ArtifactDir() string { return s.dir }

// SaveScreenshot captures the full page into the session's artifact dir.
// Best effort: a screenshot failure is logged, never fatal, since it
// usually means the page is already gone.
func (s *Session) SaveScreenshot(t *testing.T, name string) {
	t.Helper()

	path := filepath.Join(s.dir, fmt.Sprintf("%s-%s.png", sanitize(name), time.Now().Format("150405")))
	_, err := s.Page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		t.Logf("screenshot %s: %v", name, err)
		return
	}
	t.Logf("screenshot saved: %s", path)
}

// sanitize makes a test or artifact name safe as a path component.
func sanitize(name string) string {
	r := strings.NewReplacer("/", "_", " ", "_", ":", "_", "\\", "_")
	return r.Replace(name)
}

// Package config loads suite configuration from shopcheck.yaml, a local
// .env file, and SHOPCHECK_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name, looked up in the
// working directory when no explicit path is given.
const DefaultConfigFile = "shopcheck.yaml"

// ErrConfigNotFound is returned when an explicitly requested configuration
// file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// AxeConfig configures the accessibility scan.
type AxeConfig struct {
	// Threshold is the minimum axe impact that fails a spec.
	// One of "minor", "moderate", "serious", "critical".
	Threshold string `yaml:"threshold"`

	// ScriptURL is where axe-core is loaded from at scan time.
	ScriptURL string `yaml:"script_url"`
}

// Config holds every knob the suite and the CLI runner read.
type Config struct {
	// BaseURL is the root of the shop under test. All navigation is
	// relative to it.
	BaseURL string `yaml:"base_url"`

	// Headless controls whether the browser runs without a visible window.
	Headless bool `yaml:"headless"`

	// SlowMoMS delays each browser action by this many milliseconds.
	// Useful headed, zero for CI.
	SlowMoMS int `yaml:"slow_mo_ms"`

	// TimeoutSeconds bounds every locator wait and navigation.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Workers is the number of specs run in parallel.
	Workers int `yaml:"workers"`

	// Retries is how many times the runner re-executes failed specs
	// before declaring the run failed.
	Retries int `yaml:"retries"`

	// ArtifactDir receives reports, screenshots, videos and traces.
	ArtifactDir string `yaml:"artifact_dir"`

	// Video enables video recording for every spec session.
	Video bool `yaml:"video"`

	// Trace enables Playwright trace capture for every spec session.
	Trace bool `yaml:"trace"`

	// Seed fixes the test-data generator. Zero means derive a fresh
	// seed per run.
	Seed uint64 `yaml:"seed"`

	Axe AxeConfig `yaml:"axe"`
}

// Default returns the configuration used when no file or environment
// overrides are present. The defaults target the public Demo Web Shop.
func Default() Config {
	return Config{
		BaseURL:        "https://demowebshop.tricentis.com",
		Headless:       true,
		TimeoutSeconds: 30,
		Workers:        4,
		Retries:        1,
		ArtifactDir:    "artifacts",
		Video:          false,
		Trace:          true,
		Axe: AxeConfig{
			Threshold: "serious",
			ScriptURL: "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js",
		},
	}
}

// Timeout returns TimeoutSeconds as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SlowMo returns SlowMoMS as a duration.
func (c Config) SlowMo() time.Duration {
	return time.Duration(c.SlowMoMS) * time.Millisecond
}

// Validate reports configuration values the suite cannot run with.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url must not be empty")
	}
	if c.TimeoutSeconds <= 0 {
		return errors.New("timeout_seconds must be positive")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if c.Retries < 0 {
		return errors.New("retries must not be negative")
	}
	switch c.Axe.Threshold {
	case "minor", "moderate", "serious", "critical":
	default:
		return fmt.Errorf("axe threshold %q is not one of minor, moderate, serious, critical", c.Axe.Threshold)
	}
	return nil
}

// Load builds the effective configuration: defaults, then the YAML file,
// then a .env file in the working directory, then SHOPCHECK_* variables.
// Pass an empty path to use shopcheck.yaml from the working directory if
// it exists; an explicit path that is missing is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		if explicit {
			return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	default:
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	// .env is optional; absence is the normal case in CI.
	_ = godotenv.Load()

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overlays SHOPCHECK_* environment variables onto cfg.
// HEADLESS=false is honored as a shorthand used by other suites.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SHOPCHECK_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SHOPCHECK_ARTIFACT_DIR"); v != "" {
		cfg.ArtifactDir = v
	}
	if v := os.Getenv("SHOPCHECK_AXE_THRESHOLD"); v != "" {
		cfg.Axe.Threshold = v
	}
	if v := os.Getenv("SHOPCHECK_AXE_SCRIPT_URL"); v != "" {
		cfg.Axe.ScriptURL = v
	}
	if v := os.Getenv("SHOPCHECK_SLOW_MO_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SlowMoMS = n
		}
	}
	if v := os.Getenv("SHOPCHECK_HEADLESS"); v != "" {
		cfg.Headless = v != "false" && v != "0"
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		cfg.Headless = v != "false"
	}
	if v := os.Getenv("SHOPCHECK_VIDEO"); v != "" {
		cfg.Video = v == "true" || v == "1"
	}
	if v := os.Getenv("SHOPCHECK_TRACE"); v != "" {
		cfg.Trace = v != "false" && v != "0"
	}
	if v := os.Getenv("SHOPCHECK_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("SHOPCHECK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("SHOPCHECK_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Retries = n
		}
	}
	if v := os.Getenv("SHOPCHECK_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = n
		}
	}
}

// RunDir returns the artifact directory for a single run, creating it
// along with the artifact root.
func (c Config) RunDir(runID string) (string, error) {
	dir := filepath.Join(c.ArtifactDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create artifact dir: %w", err)
	}
	return dir, nil
}

package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/webstore-qa/shopcheck/internal/config"
	"github.com/webstore-qa/shopcheck/internal/report"
)

// specPackage is where the build-tagged specs live.
const specPackage = "./e2e/..."

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the browser specs",
	Long:  "Discover the e2e specs, run them in parallel against the configured shop, retry failures and write report artifacts.",
	RunE:  runSuite,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List discovered specs without running them",
	RunE:  listSpecsCmd,
}

// ErrSpecsFailed is returned when specs still fail after retries, so main
// exits non-zero without a stack of wrapping noise.
var ErrSpecsFailed = fmt.Errorf("one or more specs failed")

func runSuite(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	specs, err := discoverSpecs(cfg, flags.Grep)
	if err != nil {
		return err
	}
	if len(specs) == 0 {
		color.Yellow("No specs matched")
		return nil
	}

	runID := time.Now().Format("20060102-150405") + "-" + uuid.NewString()[:8]
	runDir, err := cfg.RunDir(runID)
	if err != nil {
		return err
	}

	color.Cyan("shopcheck: %d spec(s) against %s", len(specs), cfg.BaseURL)
	color.White("Run %s | workers %d | retries %d | artifacts %s\n", runID, cfg.Workers, cfg.Retries, runDir)

	summary := &report.Summary{
		RunID:   runID,
		BaseURL: cfg.BaseURL,
		Started: time.Now(),
	}
	col := &collector{
		summary: summary,
		bar:     newProgressBar(len(specs)),
		out:     cmd.OutOrStdout(),
		verbose: flags.Verbose,
	}

	if err := execSpecs(cfg, runDir, specs, col); err != nil {
		return err
	}

	for attempt := 1; attempt <= cfg.Retries; attempt++ {
		failed := summary.FailedSpecs()
		if len(failed) == 0 {
			break
		}
		fmt.Println()
		color.Yellow("Retry %d/%d for %d failed spec(s)", attempt, cfg.Retries, len(failed))
		col.bar = newProgressBar(len(failed))
		if err := execSpecs(cfg, runDir, failed, col); err != nil {
			return err
		}
	}
	summary.Duration = time.Since(summary.Started)

	if err := writeArtifacts(cfg, runDir, runID, summary); err != nil {
		return err
	}

	printSummary(summary, runDir)
	if !summary.Passed() {
		return ErrSpecsFailed
	}
	return nil
}

func listSpecsCmd(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	specs, err := discoverSpecs(cfg, flags.Grep)
	if err != nil {
		return err
	}
	writeSpecList(cmd.OutOrStdout(), specs)
	return nil
}

// writeSpecList prints the spec names and the trailing count to one
// writer, so `list` output is capturable as a unit.
func writeSpecList(w io.Writer, specs []string) {
	for _, s := range specs {
		fmt.Fprintln(w, s)
	}
	color.New(color.FgWhite).Fprintf(w, "\n%d spec(s)\n", len(specs))
}

// effectiveConfig loads the file/env configuration and overlays the
// command line flags, which win over everything.
func effectiveConfig() (config.Config, error) {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.Headed || flags.Debug {
		cfg.Headless = false
	}
	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}
	if flags.Retries >= 0 {
		cfg.Retries = flags.Retries
	}
	if flags.Video {
		cfg.Video = true
	}
	if flags.Debug {
		// The inspector pauses every action; a parallel run would open
		// one inspector per worker.
		cfg.Workers = 1
	}
	return cfg, nil
}

// discoverSpecs asks the Go test runner for the spec names, optionally
// narrowed by a grep pattern.
func discoverSpecs(cfg config.Config, grep string) ([]string, error) {
	cmd := exec.Command("go", "test", "-tags", "e2e", "-list", ".", specPackage)
	cmd.Env = append(os.Environ(), suiteEnv(cfg, "")...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("list specs: %w\n%s", err, out)
	}

	return parseSpecNames(string(out), grep)
}

// parseSpecNames extracts spec names from `go test -list` output, which
// mixes test names with "ok <pkg>" trailer lines.
func parseSpecNames(out, grep string) ([]string, error) {
	var matcher *regexp.Regexp
	if grep != "" {
		var err error
		matcher, err = regexp.Compile(grep)
		if err != nil {
			return nil, fmt.Errorf("bad --grep pattern: %w", err)
		}
	}

	var specs []string
	for _, line := range strings.Split(out, "\n") {
		name := strings.TrimSpace(line)
		if !strings.HasPrefix(name, "Test") {
			continue
		}
		if matcher != nil && !matcher.MatchString(name) {
			continue
		}
		specs = append(specs, name)
	}
	return specs, nil
}

// execSpecs runs one `go test` invocation for the named specs, streaming
// its -json output into the collector. A non-zero exit with recorded
// results is a normal failed run; a non-zero exit with none means the
// invocation itself broke.
func execSpecs(cfg config.Config, runDir string, specs []string, col *collector) error {
	pattern := "^(?:" + strings.Join(specs, "|") + ")$"
	cmd := exec.Command("go", "test",
		"-tags", "e2e",
		"-count=1",
		"-json",
		"-parallel", strconv.Itoa(cfg.Workers),
		"-run", pattern,
		specPackage,
	)
	cmd.Env = append(os.Environ(), suiteEnv(cfg, runDir)...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("pipe test output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start test runner: %w", err)
	}

	passedBefore, failedBefore := col.passed, col.failed
	if err := col.consume(stdout); err != nil {
		_ = cmd.Wait()
		return err
	}
	if err := cmd.Wait(); err != nil {
		if col.passed == passedBefore && col.failed == failedBefore {
			return fmt.Errorf("test runner failed before any spec ran: %w", err)
		}
		// Spec failures surface through the summary.
	}
	return nil
}

// suiteEnv carries the effective configuration into the spec process.
// The test binary runs in the package's source directory, not the
// invoker's, so nothing position-dependent may cross as a relative path
// and every file-derived value the specs need has to travel explicitly.
func suiteEnv(cfg config.Config, runDir string) []string {
	env := []string{
		"SHOPCHECK_BASE_URL=" + cfg.BaseURL,
		"SHOPCHECK_HEADLESS=" + strconv.FormatBool(cfg.Headless),
		"SHOPCHECK_TIMEOUT_SECONDS=" + strconv.Itoa(cfg.TimeoutSeconds),
		"SHOPCHECK_SLOW_MO_MS=" + strconv.Itoa(cfg.SlowMoMS),
		"SHOPCHECK_AXE_THRESHOLD=" + cfg.Axe.Threshold,
		"SHOPCHECK_AXE_SCRIPT_URL=" + cfg.Axe.ScriptURL,
		"SHOPCHECK_VIDEO=" + strconv.FormatBool(cfg.Video),
		"SHOPCHECK_TRACE=" + strconv.FormatBool(cfg.Trace),
	}
	if runDir != "" {
		if abs, err := filepath.Abs(runDir); err == nil {
			runDir = abs
		}
		env = append(env, "SHOPCHECK_RUN_DIR="+runDir)
	}
	if flags.ConfigPath != "" {
		path := flags.ConfigPath
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		env = append(env, "SHOPCHECK_CONFIG="+path)
	}
	if cfg.Seed != 0 {
		env = append(env, "SHOPCHECK_SEED="+strconv.FormatUint(cfg.Seed, 10))
	}
	if flags.Debug {
		env = append(env, "PWDEBUG=1")
	}
	return env
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("running"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func writeArtifacts(cfg config.Config, runDir, runID string, summary *report.Summary) error {
	if err := summary.WriteJSON(filepath.Join(runDir, "run.json")); err != nil {
		return err
	}

	md, err := os.Create(filepath.Join(runDir, "summary.md"))
	if err != nil {
		return fmt.Errorf("create markdown summary: %w", err)
	}
	defer md.Close()
	if err := summary.WriteMarkdown(md); err != nil {
		return err
	}

	if err := summary.WriteHTML(filepath.Join(runDir, "report.html")); err != nil {
		return err
	}

	// Pointer for `shopcheck report` to find the most recent run.
	latest := filepath.Join(cfg.ArtifactDir, "latest")
	if err := os.WriteFile(latest, []byte(runID), 0o644); err != nil {
		return fmt.Errorf("write latest pointer: %w", err)
	}
	return nil
}

func printSummary(summary *report.Summary, runDir string) {
	passed, failed, skipped := summary.Counts()

	fmt.Println()
	if summary.Passed() {
		color.Green("✓ %d passed", passed)
	} else {
		color.Red("✗ %d failed, %d passed", failed, passed)
		for _, name := range summary.FailedSpecs() {
			color.Red("  - %s", name)
		}
	}
	if skipped > 0 {
		color.Yellow("- %d skipped", skipped)
	}
	color.White("Took %s | report: %s", summary.Duration.Round(time.Millisecond*10), filepath.Join(runDir, "report.html"))
}

package cli

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/webstore-qa/shopcheck/internal/config"
	"github.com/webstore-qa/shopcheck/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the most recent run report",
	Long:  "Print the outcome of the most recent run, and optionally open its HTML report in a browser.",
	RunE:  showReport,
}

func showReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}

	runDir, err := latestRunDir(cfg)
	if err != nil {
		return err
	}

	summary, err := report.LoadJSON(filepath.Join(runDir, "run.json"))
	if err != nil {
		return err
	}
	summary.Sort()

	color.Cyan("Run %s against %s", summary.RunID, summary.BaseURL)
	color.White("Started %s, took %s\n", summary.Started.Format(time.RFC1123), summary.Duration.Round(10*time.Millisecond))

	for _, spec := range summary.Specs {
		switch spec.Outcome {
		case report.OutcomePassed:
			color.Green("  ✓ %-45s %s", spec.Name, spec.Elapsed.Round(10*time.Millisecond))
		case report.OutcomeFailed:
			color.Red("  ✗ %-45s %s", spec.Name, spec.Elapsed.Round(10*time.Millisecond))
		case report.OutcomeSkipped:
			color.Yellow("  - %-45s skipped", spec.Name)
		}
	}

	passed, failed, skipped := summary.Counts()
	fmt.Println()
	color.White("%d passed, %d failed, %d skipped", passed, failed, skipped)

	if flags.Open {
		htmlPath := filepath.Join(runDir, "report.html")
		if err := openInBrowser(htmlPath); err != nil {
			return err
		}
		color.White("Opened %s", htmlPath)
	}
	return nil
}

// latestRunDir resolves the run directory recorded by the last `run`.
func latestRunDir(cfg config.Config) (string, error) {
	data, err := os.ReadFile(filepath.Join(cfg.ArtifactDir, "latest"))
	if err != nil {
		return "", fmt.Errorf("no previous run found under %s (run `shopcheck run` first): %w", cfg.ArtifactDir, err)
	}
	runID := strings.TrimSpace(string(data))
	dir := filepath.Join(cfg.ArtifactDir, runID)
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("run directory %s is missing: %w", dir, err)
	}
	return dir, nil
}

// openInBrowser hands the file to the platform opener.
func openInBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	return nil
}

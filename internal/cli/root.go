// Package cli implements the shopcheck command line: a thin runner around
// `go test -tags e2e` that adds spec filtering, live progress, retries for
// failed specs and report artifacts.
package cli

import (
	"github.com/spf13/cobra"
)

var (
	version = "dev"

	rootCmd = &cobra.Command{
		Use:   "shopcheck",
		Short: "End-to-end browser test suite for the demo web shop",
		Long: `shopcheck drives the demo web shop through a real browser and checks the
customer journeys that matter: registration, login, catalog search, profile
editing and an accessibility pass on the storefront.

Specs live under e2e/ and run through the standard Go test runner; this
command adds filtering, parallelism, retries and report artifacts on top.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Flags holds every runner flag. Values that stay at their sentinel
// defaults defer to the configuration file.
type Flags struct {
	ConfigPath string
	Headed     bool
	Debug      bool
	Grep       string
	Workers    int
	Retries    int
	Video      bool
	Verbose    bool
	Open       bool
}

var flags Flags

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reportCmd)

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to shopcheck.yaml (default: ./shopcheck.yaml if present)")

	runCmd.Flags().BoolVar(&flags.Headed, "headed", false, "Run with a visible browser window")
	runCmd.Flags().BoolVar(&flags.Debug, "debug", false, "Headed run with the Playwright inspector (PWDEBUG=1)")
	runCmd.Flags().StringVarP(&flags.Grep, "grep", "g", "", "Only run specs whose name matches this regular expression")
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Number of specs to run in parallel (0: use config)")
	runCmd.Flags().IntVarP(&flags.Retries, "retries", "r", -1, "Re-executions for failed specs (-1: use config)")
	runCmd.Flags().BoolVar(&flags.Video, "video", false, "Record a video per spec")
	runCmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Stream spec output while running")

	listCmd.Flags().StringVarP(&flags.Grep, "grep", "g", "", "Only list specs whose name matches this regular expression")

	reportCmd.Flags().BoolVar(&flags.Open, "open", false, "Open the HTML report in the default browser")
}

// Execute runs the CLI. A non-nil return means the process should exit
// non-zero, which is how the pipeline learns the run failed.
func Execute() error {
	return rootCmd.Execute()
}

package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/webstore-qa/shopcheck/internal/report"
)

// testEvent is one line of `go test -json` output (the test2json format).
type testEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

// collector folds a test2json stream into the run summary, driving the
// progress bar and per-spec lines as terminal events arrive.
type collector struct {
	summary *report.Summary
	bar     *progressbar.ProgressBar
	out     io.Writer
	verbose bool

	passed int
	failed int
}

// consume reads the stream to EOF. Only top-level specs are recorded;
// subtest results roll up into their parent the way the runner reruns
// them, so counting both would double-book.
func (c *collector) consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		var ev testEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			// Non-JSON lines show up when the build itself fails.
			fmt.Fprintln(c.out, string(line))
			continue
		}
		c.apply(ev)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read test output: %w", err)
	}
	return nil
}

func (c *collector) apply(ev testEvent) {
	if c.verbose && ev.Action == "output" && ev.Test != "" {
		fmt.Fprint(c.out, ev.Output)
	}

	if ev.Test == "" || strings.Contains(ev.Test, "/") {
		return
	}

	elapsed := time.Duration(ev.Elapsed * float64(time.Second))
	switch ev.Action {
	case "pass":
		c.passed++
		c.summary.Record(ev.Test, report.OutcomePassed, elapsed)
		c.finishSpec()
	case "fail":
		c.failed++
		c.summary.Record(ev.Test, report.OutcomeFailed, elapsed)
		c.finishSpec()
	case "skip":
		c.summary.Record(ev.Test, report.OutcomeSkipped, elapsed)
		c.finishSpec()
	}
}

func (c *collector) finishSpec() {
	if c.bar == nil {
		return
	}
	_ = c.bar.Add(1)
	c.bar.Describe(fmt.Sprintf("%s %s",
		color.GreenString("✓ %d", c.passed),
		color.RedString("✗ %d", c.failed),
	))
}

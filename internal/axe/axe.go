// Package axe runs the axe-core accessibility ruleset against a loaded
// page and turns its violation list into a pass/fail judgment. It is an
// assertion wrapper only: no remediation, no rule configuration beyond a
// severity threshold.
package axe

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/playwright-community/playwright-go"
)

// Impact levels as axe-core reports them, weakest first.
const (
	ImpactMinor    = "minor"
	ImpactModerate = "moderate"
	ImpactSerious  = "serious"
	ImpactCritical = "critical"
)

// impactRank orders impacts for threshold comparison. Unknown impacts
// rank above critical so a new axe level can never be silently dropped.
var impactRank = map[string]int{
	ImpactMinor:    1,
	ImpactModerate: 2,
	ImpactSerious:  3,
	ImpactCritical: 4,
}

func rank(impact string) int {
	if r, ok := impactRank[impact]; ok {
		return r
	}
	return impactRank[ImpactCritical] + 1
}

// Node is one element an axe rule flagged.
type Node struct {
	Target []string `json:"target"`
	HTML   string   `json:"html"`
}

// Violation is one failed axe rule on a page load.
type Violation struct {
	ID      string `json:"id"`
	Impact  string `json:"impact"`
	Help    string `json:"help"`
	HelpURL string `json:"helpUrl"`
	Nodes   []Node `json:"nodes"`
}

// Report is the outcome of one scan of one page load.
type Report struct {
	URL        string      `json:"url"`
	Violations []Violation `json:"violations"`
}

// Scan injects axe-core from scriptURL into the page and runs it.
// The page must be fully loaded; axe inspects the DOM as it stands.
func Scan(page playwright.Page, scriptURL string) (*Report, error) {
	_, err := page.AddScriptTag(playwright.PageAddScriptTagOptions{
		URL: playwright.String(scriptURL),
	})
	if err != nil {
		return nil, fmt.Errorf("inject axe-core: %w", err)
	}

	// Serialize inside the page: axe results hold DOM references that do
	// not survive the protocol boundary otherwise.
	raw, err := page.Evaluate(`async () => JSON.stringify(await axe.run())`)
	if err != nil {
		return nil, fmt.Errorf("run axe: %w", err)
	}
	text, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("axe returned %T, want string", raw)
	}

	report, err := Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	report.URL = page.URL()
	return report, nil
}

// Parse decodes a raw axe-core result document.
func Parse(data []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode axe result: %w", err)
	}
	return &report, nil
}

// AtOrAbove returns the violations whose impact is at least threshold.
func (r *Report) AtOrAbove(threshold string) []Violation {
	min := rank(threshold)
	var out []Violation
	for _, v := range r.Violations {
		if rank(v.Impact) >= min {
			out = append(out, v)
		}
	}
	return out
}

// Summary renders one line per violation for failure messages.
func Summary(violations []Violation) []string {
	lines := make([]string, 0, len(violations))
	for _, v := range violations {
		lines = append(lines, fmt.Sprintf("%s (%s): %s, %d element(s)", v.ID, v.Impact, v.Help, len(v.Nodes)))
	}
	return lines
}

// WriteJSON persists the report as a run artifact.
func (r *Report) WriteJSON(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode axe report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write axe report: %w", err)
	}
	return nil
}

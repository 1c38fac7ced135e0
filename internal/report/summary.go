// Package report models the outcome of one suite run and renders it as
// the artifacts the pipeline uploads: a JSON run log, a Markdown summary
// and a standalone HTML report.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// durationPrecision keeps human-facing elapsed values readable.
const durationPrecision = 10 * time.Millisecond

// Outcome is the terminal state of one spec.
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// SpecResult is the outcome of one spec, after any retries.
type SpecResult struct {
	Name    string        `json:"name"`
	Outcome Outcome       `json:"outcome"`
	Elapsed time.Duration `json:"elapsed"`
	// Retries is how many re-executions it took to reach the final
	// outcome; zero means the first attempt stood.
	Retries int `json:"retries"`
}

// Summary is the aggregate outcome of one run.
type Summary struct {
	RunID    string        `json:"run_id"`
	BaseURL  string        `json:"base_url"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Specs    []SpecResult  `json:"specs"`
}

// Record sets or replaces the result for one spec. A retried spec's
// later result overwrites its earlier one with the retry count bumped.
func (s *Summary) Record(name string, outcome Outcome, elapsed time.Duration) {
	for i := range s.Specs {
		if s.Specs[i].Name == name {
			s.Specs[i].Outcome = outcome
			s.Specs[i].Elapsed = elapsed
			s.Specs[i].Retries++
			return
		}
	}
	s.Specs = append(s.Specs, SpecResult{Name: name, Outcome: outcome, Elapsed: elapsed})
}

// Counts returns the number of passed, failed and skipped specs.
func (s *Summary) Counts() (passed, failed, skipped int) {
	for _, r := range s.Specs {
		switch r.Outcome {
		case OutcomePassed:
			passed++
		case OutcomeFailed:
			failed++
		case OutcomeSkipped:
			skipped++
		}
	}
	return passed, failed, skipped
}

// FailedSpecs returns the names of specs whose final outcome is failed,
// sorted for stable retry invocations.
func (s *Summary) FailedSpecs() []string {
	var names []string
	for _, r := range s.Specs {
		if r.Outcome == OutcomeFailed {
			names = append(names, r.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Passed reports whether the whole run passed.
func (s *Summary) Passed() bool {
	_, failed, _ := s.Counts()
	return failed == 0
}

// Sort orders specs by name for stable report output.
func (s *Summary) Sort() {
	sort.Slice(s.Specs, func(i, j int) bool { return s.Specs[i].Name < s.Specs[j].Name })
}

// WriteJSON persists the machine-readable run log.
func (s *Summary) WriteJSON(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// LoadJSON reads a run log written by WriteJSON.
func LoadJSON(path string) (*Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read run log: %w", err)
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode run log: %w", err)
	}
	return &s, nil
}

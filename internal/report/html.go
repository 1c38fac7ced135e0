package report

import (
	"fmt"
	"html/template"
	"os"
	"time"
)

// reportTemplate is the self-contained HTML report. It deliberately
// embeds its styles so the artifact opens anywhere without a server.
var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>shopcheck run {{.RunID}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #1f2328; }
  h1 { border-bottom: 1px solid #d0d7de; padding-bottom: .3rem; }
  table { border-collapse: collapse; width: 100%; margin: 1rem 0; }
  th, td { border: 1px solid #d0d7de; padding: .4rem .6rem; text-align: left; }
  th { background: #f6f8fa; }
  .passed { color: #1a7f37; }
  .failed { color: #cf222e; font-weight: 600; }
  .skipped { color: #9a6700; }
  .meta { color: #57606a; font-size: .9rem; }
</style>
</head>
<body>
<h1>shopcheck run report</h1>
<p class="meta">
  Run <code>{{.RunID}}</code> against {{.BaseURL}}<br>
  Started {{.Started.Format "2006-01-02 15:04:05 MST"}}, took {{.DurationText}}
</p>
<p>
  <span class="passed">{{.Passed}} passed</span> ·
  <span class="failed">{{.Failed}} failed</span> ·
  <span class="skipped">{{.Skipped}} skipped</span>
</p>
<table>
  <tr><th>Spec</th><th>Outcome</th><th>Elapsed</th><th>Retries</th></tr>
  {{range .Specs}}
  <tr>
    <td>{{.Name}}</td>
    <td class="{{.Outcome}}">{{.Outcome}}</td>
    <td>{{.ElapsedText}}</td>
    <td>{{.Retries}}</td>
  </tr>
  {{end}}
</table>
</body>
</html>
`))

type htmlSpec struct {
	Name        string
	Outcome     Outcome
	ElapsedText string
	Retries     int
}

type htmlData struct {
	RunID        string
	BaseURL      string
	Started      time.Time
	DurationText string
	Passed       int
	Failed       int
	Skipped      int
	Specs        []htmlSpec
}

// WriteHTML renders the run summary as a standalone HTML artifact.
func (s *Summary) WriteHTML(path string) error {
	s.Sort()
	passed, failed, skipped := s.Counts()

	data := htmlData{
		RunID:        s.RunID,
		BaseURL:      s.BaseURL,
		Started:      s.Started,
		DurationText: s.Duration.Round(durationPrecision).String(),
		Passed:       passed,
		Failed:       failed,
		Skipped:      skipped,
	}
	for _, r := range s.Specs {
		data.Specs = append(data.Specs, htmlSpec{
			Name:        r.Name,
			Outcome:     r.Outcome,
			ElapsedText: r.Elapsed.Round(durationPrecision).String(),
			Retries:     r.Retries,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html report: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, data); err != nil {
		return fmt.Errorf("render html report: %w", err)
	}
	return nil
}

package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// WriteMarkdown renders the run summary as GitHub-flavored Markdown.
func (s *Summary) WriteMarkdown(w io.Writer) error {
	s.Sort()
	passed, failed, skipped := s.Counts()

	md := markdown.NewMarkdown(w)

	md.H1("shopcheck run report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Run", "`" + s.RunID + "`"},
			{"Target", s.BaseURL},
			{"Started", s.Started.Format("2006-01-02 15:04:05 MST")},
			{"Duration", s.Duration.Round(durationPrecision).String()},
		},
	})
	md.PlainText("")

	md.H2("Outcome")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"✅ Passed", strconv.Itoa(passed)},
			{"❌ Failed", strconv.Itoa(failed)},
			{"⏭️ Skipped", strconv.Itoa(skipped)},
			{"**Total**", "**" + strconv.Itoa(len(s.Specs)) + "**"},
		},
	})
	md.PlainText("")

	switch {
	case failed > 0:
		md.Cautionf("%d spec(s) failed. Evidence (screenshot, trace, video) is under the run's artifact directory.", failed)
	case len(s.Specs) == 0:
		md.Warningf("No specs were executed.")
	default:
		md.Tip("All specs passed.")
	}
	md.PlainText("")

	md.H2("Specs")
	md.PlainText("")
	rows := make([][]string, 0, len(s.Specs))
	for _, r := range s.Specs {
		rows = append(rows, []string{
			r.Name,
			outcomeCell(r.Outcome),
			r.Elapsed.Round(durationPrecision).String(),
			strconv.Itoa(r.Retries),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Spec", "Outcome", "Elapsed", "Retries"},
		Rows:   rows,
	})

	return md.Build()
}

func outcomeCell(o Outcome) string {
	switch o {
	case OutcomePassed:
		return "✅ passed"
	case OutcomeFailed:
		return "❌ failed"
	case OutcomeSkipped:
		return "⏭️ skipped"
	default:
		return string(o)
	}
}

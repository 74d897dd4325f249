package terminal

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/projections/render"
	"github.com/advisordesk/report-engine/pkg/services/session"
)

// Reporter prints a report session to the console. It shares the render
// formatter with the other projections, so the numbers match the web view
// and the export byte for byte.
type Reporter struct {
	writer io.Writer
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

type consoleSection struct {
	Title       string
	Unavailable string
	Rows        []render.Row
}

type consoleReport struct {
	ClientID     string
	GeneratedAt  string
	Completeness string
	Metrics      []render.Row
	Sections     []consoleSection
}

func (c *Reporter) Handle(sess *session.Session) error {
	model := sess.Model
	report := consoleReport{
		ClientID:     model.ClientID,
		GeneratedAt:  model.GeneratedAt.Format("2006-01-02 15:04"),
		Completeness: sess.Metrics.Completeness.ScorePct.StringFixed(2) + "%",
		Metrics:      render.MetricRows(sess.Metrics, render.Currency(model)),
	}

	for _, id := range domain.AllSections() {
		section := consoleSection{Title: render.SectionTitle(id)}
		if !model.SectionPresent(id) {
			section.Unavailable = model.Unavailable[id]
			if section.Unavailable == "" {
				section.Unavailable = "unavailable"
			}
		} else {
			section.Rows = render.SectionRows(model, sess.Metrics, id)
		}
		report.Sections = append(report.Sections, section)
	}

	tmpl := `
Client Report: {{.ClientID}}
Generated: {{.GeneratedAt}}
Completeness: {{.Completeness}}

=== Key Metrics ===
{{range .Metrics}}
- {{.Label}}: {{.Value}}
{{end}}
{{range .Sections}}
=== {{.Title}} ===
{{if .Unavailable}}Data unavailable: {{.Unavailable}}
{{else if not .Rows}}No records
{{else}}{{range .Rows}}
- {{.Label}}: {{.Value}}
{{end}}{{end}}
{{end}}
`
	t, err := template.New("report").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}

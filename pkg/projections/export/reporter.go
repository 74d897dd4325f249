// Package export renders a Ready report session into a linear, paginated
// document. It reads the same normalized model and cached metrics as the tab
// view and formats every scalar through pkg/projections/render, which is
// what keeps the export and the interactive view in agreement.
package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/projections/render"
	"github.com/advisordesk/report-engine/pkg/services/session"
)

// ErrMandatorySectionMissing aborts the whole export; a document without the
// identity block would be unattributable. Every other section degrades to a
// "no data" block instead.
var ErrMandatorySectionMissing = fmt.Errorf("export aborted: mandatory identity section missing")

type TableConfig struct {
	LabelWidth int
	ValueWidth int
	// SectionsPerPage bounds how many blocks share one page of the linear
	// artifact.
	SectionsPerPage int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		LabelWidth:      44,
		ValueWidth:      52,
		SectionsPerPage: 4,
	}
}

type Reporter struct {
	config TableConfig
}

func NewReporter() *Reporter {
	return &Reporter{config: DefaultTableConfig()}
}

// Build assembles the renderer-agnostic document. Absent sections appear as
// explicit unavailable blocks so a reviewer sees what was not collected.
func (r *Reporter) Build(sess *session.Session) (*domain.Document, error) {
	model := sess.Model
	if model == nil || !model.SectionPresent(domain.SectionIdentity) {
		return nil, ErrMandatorySectionMissing
	}

	sections := make([]domain.DocumentSection, 0, len(domain.AllSections())+1)

	sections = append(sections, domain.DocumentSection{
		Title: "Key Metrics",
		Rows:  toDocRows(render.MetricRows(sess.Metrics, render.Currency(model))),
	})

	for _, id := range domain.AllSections() {
		section := domain.DocumentSection{Title: render.SectionTitle(id)}
		if !model.SectionPresent(id) {
			reason := model.Unavailable[id]
			if reason == "" {
				reason = render.NotAvailable
			}
			section.Unavailable = reason
		} else {
			section.Rows = toDocRows(render.SectionRows(model, sess.Metrics, id))
		}
		sections = append(sections, section)
	}

	doc := &domain.Document{
		Title:       "Comprehensive Client Report",
		ClientName:  clientName(model),
		GeneratedAt: model.GeneratedAt,
		Pages:       paginate(sections, r.config.SectionsPerPage),
	}
	return doc, nil
}

// Render writes the document as a formatted text artifact.
func (r *Reporter) Render(w io.Writer, sess *session.Session) error {
	doc, err := r.Build(sess)
	if err != nil {
		return err
	}

	funcMap := template.FuncMap{
		"formatRow": func(label, value string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				r.config.LabelWidth, truncate(label, r.config.LabelWidth),
				r.config.ValueWidth, truncate(value, r.config.ValueWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", r.config.LabelWidth+2),
				strings.Repeat("-", r.config.ValueWidth+2))
		},
	}

	tmpl := `{{.Title}}
Client: {{.ClientName}}
Generated: {{.GeneratedAt.Format "2006-01-02"}}
{{range .Pages}}
--- Page {{.Number}} ---
{{range .Sections}}
=== {{.Title}} ===
{{if .Unavailable}}Data unavailable: {{.Unavailable}}
{{else if not .Rows}}No records
{{else}}{{separator}}
{{range .Rows}}{{formatRow .Label .Value}}
{{end}}{{separator}}
{{end}}{{end}}{{end}}`

	t, err := template.New("export").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(w, doc)
}

var filenameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Filename follows the <ClientName>_Financial_Report_<date>.txt convention.
func (r *Reporter) Filename(sess *session.Session) string {
	name := "Client"
	if sess.Model != nil {
		if n := clientName(sess.Model); n != render.NotAvailable {
			name = filenameSanitizer.ReplaceAllString(strings.ReplaceAll(n, " ", "_"), "")
		}
	}
	date := sess.Model.GeneratedAt
	if date.IsZero() {
		date = time.Now().UTC()
	}
	return fmt.Sprintf("%s_Financial_Report_%s.txt", name, date.Format("2006-01-02"))
}

func clientName(model *domain.ClientReportModel) string {
	if model.Identity != nil {
		return render.String(model.Identity.FullName)
	}
	return render.NotAvailable
}

func paginate(sections []domain.DocumentSection, perPage int) []domain.DocumentPage {
	if perPage <= 0 {
		perPage = 1
	}
	var pages []domain.DocumentPage
	for start := 0; start < len(sections); start += perPage {
		end := min(start+perPage, len(sections))
		pages = append(pages, domain.DocumentPage{
			Number:   len(pages) + 1,
			Sections: sections[start:end],
		})
	}
	return pages
}

func toDocRows(rows []render.Row) []domain.DocumentRow {
	out := make([]domain.DocumentRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.DocumentRow{Label: r.Label, Value: r.Value})
	}
	return out
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

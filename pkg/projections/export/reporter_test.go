package export

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/projections/view"
	"github.com/advisordesk/report-engine/pkg/services/metrics"
	"github.com/advisordesk/report-engine/pkg/services/session"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) domain.Field[decimal.Decimal] {
	return domain.Present(decimal.NewFromInt(v))
}

func richModel() *domain.ClientReportModel {
	return &domain.ClientReportModel{
		ClientID:    "client-1",
		GeneratedAt: time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		Identity: &domain.IdentitySection{
			FullName: domain.Present("Asha Verma"),
			Email:    domain.Present("asha@example.com"),
		},
		Financial: &domain.FinancialSection{
			TotalMonthlyIncome:   dec(50000),
			TotalMonthlyExpenses: dec(35000),
			LiquidSavings:        dec(210000),
			Currency:             domain.Present("INR"),
		},
		Assets: &domain.AssetsSection{
			Items: []domain.AssetItem{
				{Name: domain.Present("Apartment"), Category: domain.Present("Real Estate"), Value: dec(4500000)},
			},
		},
		Debts: &domain.DebtsSection{
			Items: []domain.DebtItem{
				{Lender: domain.Present("HDFC"), Type: domain.Present("Home Loan"), Outstanding: dec(2000000), MonthlyEMI: dec(18000)},
			},
		},
		Goals: &domain.GoalsSection{
			Goals: []domain.Goal{
				{Name: domain.Present("House"), TargetAmount: dec(1000000), CurrentAmount: dec(250000)},
			},
		},
		Unavailable: map[domain.SectionID]string{
			domain.SectionMeetings: "source failed",
		},
	}
}

func readySession(model *domain.ClientReportModel) *session.Session {
	calc := metrics.NewCalculator(metrics.DefaultThresholds())
	return &session.Session{
		ID:       uuid.New(),
		ClientID: model.ClientID,
		Status:   session.StatusReady,
		Model:    model,
		Metrics:  calc.Compute(model),
		ReadyAt:  time.Now(),
	}
}

// Every label/value pair shown on a tab must appear verbatim in the export
// document. One shared row builder feeds both surfaces; this test is the
// regression guard for that contract.
func TestBuild_AgreesWithTabProjection(t *testing.T) {
	sess := readySession(richModel())

	exported := map[string]string{}
	doc, err := NewReporter().Build(sess)
	require.NoError(t, err)
	for _, page := range doc.Pages {
		for _, section := range page.Sections {
			for _, row := range section.Rows {
				exported[section.Title+"|"+row.Label] = row.Value
			}
		}
	}

	checked := 0
	for _, tabID := range view.Tabs() {
		tab, err := view.Project(sess, tabID)
		require.NoError(t, err)
		for _, group := range tab.Groups {
			for _, row := range group.Rows {
				if row.Label == "Status" {
					continue // placeholder rows have no document counterpart
				}
				key := group.Title + "|" + row.Label
				require.Contains(t, exported, key)
				assert.Equal(t, exported[key], row.Value, "view and export disagree on %s", key)
				checked++
			}
		}
	}
	assert.Greater(t, checked, 20, "parity check must cover real rows")
}

func TestBuild_MissingIdentityAborts(t *testing.T) {
	model := richModel()
	model.Identity = nil
	model.Unavailable[domain.SectionIdentity] = "source failed"

	_, err := NewReporter().Build(readySession(model))
	require.ErrorIs(t, err, ErrMandatorySectionMissing)
}

func TestBuild_AbsentSectionsBecomeUnavailableBlocks(t *testing.T) {
	doc, err := NewReporter().Build(readySession(richModel()))
	require.NoError(t, err)

	byTitle := map[string]domain.DocumentSection{}
	for _, page := range doc.Pages {
		for _, section := range page.Sections {
			byTitle[section.Title] = section
		}
	}

	// 16 report sections plus the metrics block, none skipped.
	require.Len(t, byTitle, len(domain.AllSections())+1)
	assert.Equal(t, "source failed", byTitle["Meetings"].Unavailable)
	assert.NotEmpty(t, byTitle["Client Identity"].Rows)
	assert.NotEmpty(t, byTitle["Key Metrics"].Rows)
}

func TestRender_WritesBoundedTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReporter().Render(&buf, readySession(richModel())))
	out := buf.String()

	assert.Contains(t, out, "Comprehensive Client Report")
	assert.Contains(t, out, "Client: Asha Verma")
	assert.Contains(t, out, "--- Page 1 ---")
	assert.Contains(t, out, "=== Key Metrics ===")
	assert.Contains(t, out, "Data unavailable: source failed")

	cfg := DefaultTableConfig()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "|") {
			assert.Len(t, line, cfg.LabelWidth+cfg.ValueWidth+7, "row width must be fixed: %q", line)
		}
	}
}

func TestRender_Deterministic(t *testing.T) {
	sess := readySession(richModel())

	var first, second bytes.Buffer
	require.NoError(t, NewReporter().Render(&first, sess))
	require.NoError(t, NewReporter().Render(&second, sess))
	assert.Equal(t, first.String(), second.String())
}

func TestFilename_Convention(t *testing.T) {
	sess := readySession(richModel())
	assert.Equal(t, "Asha_Verma_Financial_Report_2025-06-01.txt", NewReporter().Filename(sess))

	sess.Model.Identity.FullName = domain.Present("A/sha <Verma>!")
	name := NewReporter().Filename(sess)
	assert.Regexp(t, regexp.MustCompile(`^[A-Za-z0-9_-]+_Financial_Report_\d{4}-\d{2}-\d{2}\.txt$`), name)
}

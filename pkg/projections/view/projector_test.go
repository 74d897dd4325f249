package view

import (
	"testing"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/projections/render"
	"github.com/advisordesk/report-engine/pkg/services/metrics"
	"github.com/advisordesk/report-engine/pkg/services/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func partialSession() *session.Session {
	model := &domain.ClientReportModel{
		ClientID:    "client-1",
		GeneratedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Identity: &domain.IdentitySection{
			FullName: domain.Present("Asha Verma"),
		},
		Financial: &domain.FinancialSection{
			TotalMonthlyIncome:   domain.Present(decimal.NewFromInt(50000)),
			TotalMonthlyExpenses: domain.Present(decimal.NewFromInt(35000)),
		},
		Meetings: &domain.MeetingsSection{}, // collected, zero records
		Unavailable: map[domain.SectionID]string{
			domain.SectionGoals:      "source failed",
			domain.SectionRetirement: "source timed out",
		},
	}
	calc := metrics.NewCalculator(metrics.DefaultThresholds())
	return &session.Session{
		ClientID: "client-1",
		Status:   session.StatusReady,
		Model:    model,
		Metrics:  calc.Compute(model),
	}
}

func TestProject_Overview(t *testing.T) {
	tab, err := Project(partialSession(), TabOverview)
	require.NoError(t, err)

	assert.Equal(t, "overview", tab.TabID)
	assert.False(t, tab.Pending, "overview always renders")

	require.NotEmpty(t, tab.Groups)
	assert.Equal(t, "Key Metrics", tab.Groups[0].Title)

	byLabel := map[string]string{}
	for _, row := range tab.Groups[0].Rows {
		byLabel[row.Label] = row.Value
	}
	assert.Equal(t, "15000.00", byLabel["Monthly Savings"])
	assert.Equal(t, "30.00%", byLabel["Savings Rate"])
	assert.Equal(t, render.NotAvailable, byLabel["Net Worth"])
}

func TestProject_PendingTab(t *testing.T) {
	tab, err := Project(partialSession(), TabGoals)
	require.NoError(t, err)

	assert.True(t, tab.Pending, "every section on the tab is unavailable")
	assert.Equal(t, "source failed", tab.Reason)
	for _, group := range tab.Groups {
		require.Len(t, group.Rows, 1)
		assert.Equal(t, render.NotAvailable, group.Rows[0].Value)
	}
}

func TestProject_CollectedButEmptySectionIsNotPending(t *testing.T) {
	tab, err := Project(partialSession(), TabMeetings)
	require.NoError(t, err)

	assert.False(t, tab.Pending)
	require.Len(t, tab.Groups, 1)
	require.Len(t, tab.Groups[0].Rows, 1)
	assert.Equal(t, "No records", tab.Groups[0].Rows[0].Value)
}

func TestProject_UnknownTab(t *testing.T) {
	_, err := Project(partialSession(), TabID("nonsense"))
	require.Error(t, err)
}

func TestProject_SwitchingTabsIsStable(t *testing.T) {
	sess := partialSession()

	first, err := Project(sess, TabFinancial)
	require.NoError(t, err)
	for _, other := range Tabs() {
		_, err := Project(sess, other)
		require.NoError(t, err)
	}
	again, err := Project(sess, TabFinancial)
	require.NoError(t, err)

	assert.Equal(t, first, again, "projection reads frozen state only")
}

func TestTabs_CoverEverySection(t *testing.T) {
	covered := map[domain.SectionID]bool{}
	for _, tabID := range Tabs() {
		for _, id := range tabSections[tabID] {
			covered[id] = true
		}
	}
	for _, id := range domain.AllSections() {
		assert.True(t, covered[id], "section %s is on no tab", id)
	}
}

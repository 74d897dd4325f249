// Package view projects a Ready report session into per-tab view models.
// Projection is pure: switching tabs re-slices already-computed state and
// never refetches or recomputes metrics.
package view

import (
	"fmt"

	"github.com/advisordesk/report-engine/pkg/models/api"
	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/projections/render"
	"github.com/advisordesk/report-engine/pkg/services/session"
)

type TabID string

const (
	TabOverview        TabID = "overview"
	TabFinancial       TabID = "financial"
	TabGoals           TabID = "goals"
	TabRisk            TabID = "risk"
	TabMeetings        TabID = "meetings"
	TabDocuments       TabID = "documents"
	TabEstate          TabID = "estate"
	TabRecommendations TabID = "recommendations"
	TabTax             TabID = "tax"
	TabActivity        TabID = "activity"
)

// tabSections maps each tab to the report sections it displays.
var tabSections = map[TabID][]domain.SectionID{
	TabOverview:        {domain.SectionIdentity, domain.SectionFinancial},
	TabFinancial:       {domain.SectionFinancial, domain.SectionAssets, domain.SectionDebts, domain.SectionInsurance},
	TabGoals:           {domain.SectionGoals, domain.SectionRetirement},
	TabRisk:            {domain.SectionRiskProfile, domain.SectionRiskSessions},
	TabMeetings:        {domain.SectionMeetings},
	TabDocuments:       {domain.SectionLegalDocuments},
	TabEstate:          {domain.SectionEstate},
	TabRecommendations: {domain.SectionMutualFunds},
	TabTax:             {domain.SectionTaxPlanning},
	TabActivity:        {domain.SectionChatHistory, domain.SectionInvitations},
}

var tabTitles = map[TabID]string{
	TabOverview:        "Overview",
	TabFinancial:       "Financials",
	TabGoals:           "Goals & Retirement",
	TabRisk:            "Risk",
	TabMeetings:        "Meetings",
	TabDocuments:       "Documents",
	TabEstate:          "Estate",
	TabRecommendations: "Recommendations",
	TabTax:             "Tax",
	TabActivity:        "Activity",
}

// Tabs lists every tab in display order.
func Tabs() []TabID {
	return []TabID{
		TabOverview, TabFinancial, TabGoals, TabRisk, TabMeetings,
		TabDocuments, TabEstate, TabRecommendations, TabTax, TabActivity,
	}
}

// Project returns the slice of the session the given tab needs. It reads
// only from the normalized model and the cached metrics.
func Project(sess *session.Session, tabID TabID) (api.TabView, error) {
	sections, ok := tabSections[tabID]
	if !ok {
		return api.TabView{}, fmt.Errorf("unknown tab %q", tabID)
	}

	tab := api.TabView{
		TabID: string(tabID),
		Title: tabTitles[tabID],
	}

	if tabID == TabOverview {
		tab.Groups = append(tab.Groups, api.TabGroup{
			Title: "Key Metrics",
			Rows:  toAPIRows(render.MetricRows(sess.Metrics, render.Currency(sess.Model))),
		})
	}

	pending := true
	for _, id := range sections {
		group := api.TabGroup{Title: render.SectionTitle(id)}
		if !sess.Model.SectionPresent(id) {
			group.Rows = []api.TabRow{{Label: "Status", Value: render.NotAvailable}}
			tab.Groups = append(tab.Groups, group)
			if tab.Reason == "" {
				tab.Reason = sess.Model.Unavailable[id]
			}
			continue
		}
		pending = false
		group.Rows = toAPIRows(render.SectionRows(sess.Model, sess.Metrics, id))
		if len(group.Rows) == 0 {
			group.Rows = []api.TabRow{{Label: "Status", Value: "No records"}}
		}
		tab.Groups = append(tab.Groups, group)
	}
	tab.Pending = pending && tabID != TabOverview

	return tab, nil
}

func toAPIRows(rows []render.Row) []api.TabRow {
	out := make([]api.TabRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.TabRow{Label: r.Label, Value: r.Value})
	}
	return out
}

package adapters

import (
	"github.com/advisordesk/report-engine/pkg/models/api"
	"github.com/advisordesk/report-engine/pkg/models/domain"
)

func mapField[T any](f domain.Field[T]) api.FieldValue {
	switch f.State {
	case domain.FieldPresent:
		return api.FieldValue{Value: f.Value, Present: true}
	case domain.FieldMalformed:
		return api.FieldValue{Malformed: true, Raw: f.Raw}
	default:
		return api.FieldValue{}
	}
}

func MapReportDomainToApi(m *domain.ClientReportModel, metrics domain.DerivedMetrics) *api.ClientReport {
	report := &api.ClientReport{
		ClientID:    m.ClientID,
		GeneratedAt: m.GeneratedAt,
		Metrics:     MapMetricsDomainToApi(metrics),
	}

	if s := m.Identity; s != nil {
		report.Identity = &api.Identity{
			ClientID:      mapField(s.ClientID),
			FullName:      mapField(s.FullName),
			Email:         mapField(s.Email),
			Phone:         mapField(s.Phone),
			DateOfBirth:   mapField(s.DateOfBirth),
			MaritalStatus: mapField(s.MaritalStatus),
			Dependents:    mapField(s.Dependents),
			Occupation:    mapField(s.Occupation),
			KYCVerified:   mapField(s.KYCVerified),
		}
	}
	if s := m.Financial; s != nil {
		report.Financial = &api.Financial{
			TotalMonthlyIncome:   mapField(s.TotalMonthlyIncome),
			TotalMonthlyExpenses: mapField(s.TotalMonthlyExpenses),
			LiquidSavings:        mapField(s.LiquidSavings),
			AnnualBonus:          mapField(s.AnnualBonus),
			Currency:             mapField(s.Currency),
		}
	}
	if s := m.Assets; s != nil {
		items := make([]api.AssetItem, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, api.AssetItem{
				Name:     mapField(it.Name),
				Category: mapField(it.Category),
				Value:    mapField(it.Value),
			})
		}
		report.Assets = &api.Assets{Items: items}
	}
	if s := m.Debts; s != nil {
		items := make([]api.DebtItem, 0, len(s.Items))
		for _, it := range s.Items {
			items = append(items, api.DebtItem{
				Lender:          mapField(it.Lender),
				Type:            mapField(it.Type),
				Outstanding:     mapField(it.Outstanding),
				MonthlyEMI:      mapField(it.MonthlyEMI),
				InterestRatePct: mapField(it.InterestRatePct),
			})
		}
		report.Debts = &api.Debts{Items: items}
	}
	if s := m.Insurance; s != nil {
		policies := make([]api.InsurancePolicy, 0, len(s.Policies))
		for _, p := range s.Policies {
			policies = append(policies, api.InsurancePolicy{
				Provider:      mapField(p.Provider),
				PolicyType:    mapField(p.PolicyType),
				CoverAmount:   mapField(p.CoverAmount),
				AnnualPremium: mapField(p.AnnualPremium),
			})
		}
		report.Insurance = &api.Insurance{Policies: policies}
	}
	if s := m.Goals; s != nil {
		goals := make([]api.Goal, 0, len(s.Goals))
		for _, g := range s.Goals {
			goals = append(goals, api.Goal{
				Name:          mapField(g.Name),
				TargetAmount:  mapField(g.TargetAmount),
				CurrentAmount: mapField(g.CurrentAmount),
				TargetDate:    mapField(g.TargetDate),
				Priority:      mapField(g.Priority),
			})
		}
		report.Goals = &api.Goals{Goals: goals}
	}
	if s := m.Retirement; s != nil {
		report.Retirement = &api.Retirement{
			TargetAge:           mapField(s.TargetAge),
			MonthlyContribution: mapField(s.MonthlyContribution),
			CorpusTarget:        mapField(s.CorpusTarget),
			CorpusCurrent:       mapField(s.CorpusCurrent),
		}
	}
	if s := m.RiskProfile; s != nil {
		report.RiskProfile = &api.RiskProfile{
			Tolerance: mapField(s.Tolerance),
			Horizon:   mapField(s.Horizon),
			Score:     mapField(s.Score),
		}
	}
	if s := m.Meetings; s != nil {
		meetings := make([]api.Meeting, 0, len(s.Meetings))
		for _, mt := range s.Meetings {
			meetings = append(meetings, api.Meeting{
				Title:               mapField(mt.Title),
				HeldAt:              mapField(mt.HeldAt),
				DurationMinutes:     mapField(mt.DurationMinutes),
				Summary:             mapField(mt.Summary),
				TranscriptAvailable: mapField(mt.TranscriptAvailable),
			})
		}
		report.Meetings = &api.Meetings{Meetings: meetings}
	}
	if s := m.LegalDocuments; s != nil {
		docs := make([]api.LegalDocument, 0, len(s.Documents))
		for _, d := range s.Documents {
			docs = append(docs, api.LegalDocument{
				Name:       mapField(d.Name),
				Category:   mapField(d.Category),
				Status:     mapField(d.Status),
				UploadedAt: mapField(d.UploadedAt),
			})
		}
		report.LegalDocuments = &api.LegalDocuments{Documents: docs}
	}
	if s := m.ChatHistory; s != nil {
		msgs := make([]api.ChatMessage, 0, len(s.Messages))
		for _, msg := range s.Messages {
			msgs = append(msgs, api.ChatMessage{
				Role:    mapField(msg.Role),
				Content: mapField(msg.Content),
				SentAt:  mapField(msg.SentAt),
			})
		}
		report.ChatHistory = &api.ChatHistory{Messages: msgs}
	}
	if s := m.RiskSessions; s != nil {
		sessions := make([]api.RiskSession, 0, len(s.Sessions))
		for _, rs := range s.Sessions {
			sessions = append(sessions, api.RiskSession{
				CompletedAt: mapField(rs.CompletedAt),
				Variant:     mapField(rs.Variant),
				Score:       mapField(rs.Score),
				Outcome:     mapField(rs.Outcome),
			})
		}
		report.RiskSessions = &api.RiskSessions{Sessions: sessions}
	}
	if s := m.Estate; s != nil {
		beneficiaries := make([]api.Beneficiary, 0, len(s.Beneficiaries))
		for _, b := range s.Beneficiaries {
			beneficiaries = append(beneficiaries, api.Beneficiary{
				Name:          mapField(b.Name),
				Relationship:  mapField(b.Relationship),
				AllocationPct: mapField(b.AllocationPct),
			})
		}
		report.Estate = &api.Estate{
			HasWill:        mapField(s.HasWill),
			Executor:       mapField(s.Executor),
			LastReviewedAt: mapField(s.LastReviewedAt),
			Beneficiaries:  beneficiaries,
		}
	}
	if s := m.MutualFundRecommendations; s != nil {
		recs := make([]api.FundRecommendation, 0, len(s.Recommendations))
		for _, r := range s.Recommendations {
			recs = append(recs, api.FundRecommendation{
				FundName:          mapField(r.FundName),
				Category:          mapField(r.Category),
				RiskLevel:         mapField(r.RiskLevel),
				ExpectedReturnPct: mapField(r.ExpectedReturnPct),
				MonthlySIP:        mapField(r.MonthlySIP),
			})
		}
		report.MutualFundRecommendations = &api.MutualFundRecommendations{Recommendations: recs}
	}
	if s := m.TaxPlanning; s != nil {
		deductions := make([]api.TaxDeduction, 0, len(s.Deductions))
		for _, d := range s.Deductions {
			deductions = append(deductions, api.TaxDeduction{
				Name:   mapField(d.Name),
				Amount: mapField(d.Amount),
			})
		}
		report.TaxPlanning = &api.TaxPlanning{
			FilingStatus:       mapField(s.FilingStatus),
			EstimatedAnnualTax: mapField(s.EstimatedAnnualTax),
			Deductions:         deductions,
		}
	}
	if s := m.Invitations; s != nil {
		invitations := make([]api.Invitation, 0, len(s.Invitations))
		for _, inv := range s.Invitations {
			invitations = append(invitations, api.Invitation{
				Email:  mapField(inv.Email),
				Status: mapField(inv.Status),
				SentAt: mapField(inv.SentAt),
			})
		}
		report.Invitations = &api.Invitations{Invitations: invitations}
	}

	return report
}

func MapMetricsDomainToApi(m domain.DerivedMetrics) api.Metrics {
	goals := make([]api.GoalProgress, 0, len(m.Goals))
	for _, g := range m.Goals {
		goals = append(goals, api.GoalProgress{
			Name:          g.Name,
			Progress:      mapField(g.Progress),
			InvalidTarget: g.InvalidTarget,
		})
	}

	return api.Metrics{
		TotalAssets:           mapField(m.TotalAssets),
		TotalLiabilities:      mapField(m.TotalLiabilities),
		NetWorth:              mapField(m.NetWorth),
		MonthlySavings:        mapField(m.MonthlySavings),
		SavingsRatePct:        mapField(m.SavingsRatePct),
		SavingsRateRawPct:     mapField(m.SavingsRateRawPct),
		ExpenseRatioPct:       mapField(m.ExpenseRatioPct),
		DebtServiceRatioPct:   mapField(m.DebtServiceRatioPct),
		DebtServiceBand:       string(m.DebtServiceBand),
		EmergencyFundMonths:   mapField(m.EmergencyFundMonths),
		EmergencyFundBand:     string(m.EmergencyFundBand),
		Goals:                 goals,
		AggregateGoalProgress: mapField(m.AggregateGoalProgress),
	}
}

func MapCompletenessDomainToApi(c domain.ReportCompleteness) *api.ReportIntegrity {
	sections := make(map[string]api.SectionIntegrity, len(c.Sections))
	for id, complete := range c.Sections {
		sections[string(id)] = api.SectionIntegrity{
			Complete: complete,
			Reason:   c.Reasons[id],
		}
	}
	return &api.ReportIntegrity{
		Sections: sections,
		ScorePct: c.ScorePct.StringFixed(2),
	}
}

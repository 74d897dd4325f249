// Package normalize turns a settled RawBundle into the canonical
// ClientReportModel. It never fails: every combination of missing, empty and
// malformed upstream data produces a well-formed model, with presence
// recorded explicitly on every section and leaf.
package normalize

import (
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
)

const (
	ReasonSourceFailed  = "source failed"
	ReasonSourceTimeout = "source timeout"
	ReasonNotCollected  = "not collected"
)

// Normalize copies and transforms every source payload into the report
// model. The model holds no references into the bundle, so the bundle can be
// discarded immediately afterwards.
func Normalize(bundle domain.RawBundle) *domain.ClientReportModel {
	model := &domain.ClientReportModel{
		ClientID:    bundle.ClientID,
		GeneratedAt: time.Now().UTC(),
		Unavailable: make(map[domain.SectionID]string),
	}

	normalizeProfile(bundle, model)
	normalizePlans(bundle, model)
	normalizeMeetings(bundle, model)
	normalizeLegalDocuments(bundle, model)
	normalizeChatHistory(bundle, model)
	normalizeRiskSessions(bundle, model)
	normalizeEstate(bundle, model)
	normalizeMutualFunds(bundle, model)
	normalizeTaxPlanning(bundle, model)
	normalizeInvitations(bundle, model)

	return model
}

// sourceRecords resolves one source result. When the source did not settle
// ok the returned reason marks every section it feeds.
func sourceRecords(bundle domain.RawBundle, id domain.SourceID) ([]domain.RawRecord, string) {
	res, ok := bundle.Result(id)
	if !ok {
		return nil, ReasonNotCollected
	}
	switch res.Status {
	case domain.SourceStatusOK:
		return res.Payload, ""
	case domain.SourceStatusTimeout:
		return nil, ReasonSourceTimeout
	default:
		return nil, ReasonSourceFailed
	}
}

// firstRecord is for single-record sources: an ok source with no records
// means the client never collected that domain.
func firstRecord(records []domain.RawRecord, reason string) (map[string]any, string) {
	if reason != "" {
		return nil, reason
	}
	if len(records) == 0 {
		return nil, ReasonNotCollected
	}
	return records[0], ""
}

func markUnavailable(model *domain.ClientReportModel, reason string, ids ...domain.SectionID) {
	for _, id := range ids {
		model.Unavailable[id] = reason
	}
}

// normalizeProfile feeds the six sections owned by the profile store.
func normalizeProfile(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceProfile)
	rec, reason := firstRecord(records, reason)
	if reason != "" {
		markUnavailable(model, reason,
			domain.SectionIdentity, domain.SectionFinancial, domain.SectionAssets,
			domain.SectionDebts, domain.SectionInsurance, domain.SectionRiskProfile)
		return
	}

	model.Identity = &domain.IdentitySection{
		ClientID:      stringField(rec, "clientId"),
		FullName:      stringField(rec, "personalInfo", "fullName"),
		Email:         stringField(rec, "personalInfo", "email"),
		Phone:         stringField(rec, "personalInfo", "phone"),
		DateOfBirth:   stringField(rec, "personalInfo", "dateOfBirth"),
		MaritalStatus: stringField(rec, "personalInfo", "maritalStatus"),
		Dependents:    intField(rec, "personalInfo", "dependents"),
		Occupation:    stringField(rec, "personalInfo", "occupation"),
		KYCVerified:   boolField(rec, "personalInfo", "kycVerified"),
	}

	model.Financial = &domain.FinancialSection{
		TotalMonthlyIncome:   decimalField(rec, "financialInfo", "totalMonthlyIncome"),
		TotalMonthlyExpenses: decimalField(rec, "financialInfo", "totalMonthlyExpenses"),
		LiquidSavings:        decimalField(rec, "financialInfo", "liquidSavings"),
		AnnualBonus:          decimalField(rec, "financialInfo", "annualBonus"),
		Currency:             stringField(rec, "financialInfo", "currency"),
	}

	assets := &domain.AssetsSection{Items: []domain.AssetItem{}}
	for _, item := range objects(rec, "assets") {
		assets.Items = append(assets.Items, domain.AssetItem{
			Name:     stringField(item, "name"),
			Category: stringField(item, "category"),
			Value:    decimalField(item, "value"),
		})
	}
	model.Assets = assets

	debts := &domain.DebtsSection{Items: []domain.DebtItem{}}
	for _, item := range objects(rec, "debts") {
		debts.Items = append(debts.Items, domain.DebtItem{
			Lender:          stringField(item, "lender"),
			Type:            stringField(item, "type"),
			Outstanding:     decimalField(item, "outstanding"),
			MonthlyEMI:      decimalField(item, "monthlyEmi"),
			InterestRatePct: decimalField(item, "interestRatePct"),
		})
	}
	model.Debts = debts

	insurance := &domain.InsuranceSection{Policies: []domain.InsurancePolicy{}}
	for _, item := range objects(rec, "insurance") {
		insurance.Policies = append(insurance.Policies, domain.InsurancePolicy{
			Provider:      stringField(item, "provider"),
			PolicyType:    stringField(item, "policyType"),
			CoverAmount:   decimalField(item, "coverAmount"),
			AnnualPremium: decimalField(item, "annualPremium"),
		})
	}
	model.Insurance = insurance

	model.RiskProfile = &domain.RiskProfileSection{
		Tolerance: stringField(rec, "riskProfile", "tolerance"),
		Horizon:   stringField(rec, "riskProfile", "horizon"),
		Score:     intField(rec, "riskProfile", "score"),
	}
}

func normalizePlans(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourcePlans)
	rec, reason := firstRecord(records, reason)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionGoals, domain.SectionRetirement)
		return
	}

	goals := &domain.GoalsSection{Goals: []domain.Goal{}}
	for _, item := range objects(rec, "goals") {
		goals.Goals = append(goals.Goals, domain.Goal{
			Name:          stringField(item, "name"),
			TargetAmount:  decimalField(item, "targetAmount"),
			CurrentAmount: decimalField(item, "currentAmount"),
			TargetDate:    stringField(item, "targetDate"),
			Priority:      stringField(item, "priority"),
		})
	}
	model.Goals = goals

	model.Retirement = &domain.RetirementSection{
		TargetAge:           intField(rec, "retirement", "targetAge"),
		MonthlyContribution: decimalField(rec, "retirement", "monthlyContribution"),
		CorpusTarget:        decimalField(rec, "retirement", "corpusTarget"),
		CorpusCurrent:       decimalField(rec, "retirement", "corpusCurrent"),
	}
}

func normalizeMeetings(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceMeetings)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionMeetings)
		return
	}

	section := &domain.MeetingsSection{Meetings: []domain.Meeting{}}
	for _, rec := range records {
		section.Meetings = append(section.Meetings, domain.Meeting{
			Title:               stringField(rec, "title"),
			HeldAt:              timeField(rec, "heldAt"),
			DurationMinutes:     intField(rec, "durationMinutes"),
			Summary:             stringField(rec, "summary"),
			TranscriptAvailable: boolField(rec, "transcriptAvailable"),
		})
	}
	model.Meetings = section
}

func normalizeLegalDocuments(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceLegalDocuments)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionLegalDocuments)
		return
	}

	section := &domain.LegalDocumentsSection{Documents: []domain.LegalDocument{}}
	for _, rec := range records {
		section.Documents = append(section.Documents, domain.LegalDocument{
			Name:       stringField(rec, "name"),
			Category:   stringField(rec, "category"),
			Status:     stringField(rec, "status"),
			UploadedAt: timeField(rec, "uploadedAt"),
		})
	}
	model.LegalDocuments = section
}

func normalizeChatHistory(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceChatHistory)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionChatHistory)
		return
	}

	section := &domain.ChatHistorySection{Messages: []domain.ChatMessage{}}
	for _, rec := range records {
		section.Messages = append(section.Messages, domain.ChatMessage{
			Role:    stringField(rec, "role"),
			Content: stringField(rec, "content"),
			SentAt:  timeField(rec, "sentAt"),
		})
	}
	model.ChatHistory = section
}

func normalizeRiskSessions(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceRiskSessions)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionRiskSessions)
		return
	}

	section := &domain.RiskSessionsSection{Sessions: []domain.RiskSession{}}
	for _, rec := range records {
		section.Sessions = append(section.Sessions, domain.RiskSession{
			CompletedAt: timeField(rec, "completedAt"),
			Variant:     stringField(rec, "variant"),
			Score:       intField(rec, "score"),
			Outcome:     stringField(rec, "outcome"),
		})
	}
	model.RiskSessions = section
}

func normalizeEstate(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceEstate)
	rec, reason := firstRecord(records, reason)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionEstate)
		return
	}

	section := &domain.EstateSection{
		HasWill:        boolField(rec, "hasWill"),
		Executor:       stringField(rec, "executor"),
		LastReviewedAt: timeField(rec, "lastReviewedAt"),
		Beneficiaries:  []domain.Beneficiary{},
	}
	for _, item := range objects(rec, "beneficiaries") {
		section.Beneficiaries = append(section.Beneficiaries, domain.Beneficiary{
			Name:          stringField(item, "name"),
			Relationship:  stringField(item, "relationship"),
			AllocationPct: decimalField(item, "allocationPct"),
		})
	}
	model.Estate = section
}

func normalizeMutualFunds(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceMutualFunds)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionMutualFunds)
		return
	}

	section := &domain.MutualFundsSection{Recommendations: []domain.FundRecommendation{}}
	for _, rec := range records {
		section.Recommendations = append(section.Recommendations, domain.FundRecommendation{
			FundName:          stringField(rec, "fundName"),
			Category:          stringField(rec, "category"),
			RiskLevel:         stringField(rec, "riskLevel"),
			ExpectedReturnPct: decimalField(rec, "expectedReturnPct"),
			MonthlySIP:        decimalField(rec, "monthlySip"),
		})
	}
	model.MutualFundRecommendations = section
}

func normalizeTaxPlanning(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceTaxPlanning)
	rec, reason := firstRecord(records, reason)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionTaxPlanning)
		return
	}

	section := &domain.TaxPlanningSection{
		FilingStatus:       stringField(rec, "filingStatus"),
		EstimatedAnnualTax: decimalField(rec, "estimatedAnnualTax"),
		Deductions:         []domain.TaxDeduction{},
	}
	for _, item := range objects(rec, "deductions") {
		section.Deductions = append(section.Deductions, domain.TaxDeduction{
			Name:   stringField(item, "name"),
			Amount: decimalField(item, "amount"),
		})
	}
	model.TaxPlanning = section
}

func normalizeInvitations(bundle domain.RawBundle, model *domain.ClientReportModel) {
	records, reason := sourceRecords(bundle, domain.SourceInvitations)
	if reason != "" {
		markUnavailable(model, reason, domain.SectionInvitations)
		return
	}

	section := &domain.InvitationsSection{Invitations: []domain.Invitation{}}
	for _, rec := range records {
		section.Invitations = append(section.Invitations, domain.Invitation{
			Email:  stringField(rec, "email"),
			Status: stringField(rec, "status"),
			SentAt: timeField(rec, "sentAt"),
		})
	}
	model.Invitations = section
}

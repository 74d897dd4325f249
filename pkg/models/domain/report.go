package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SectionID names one subtree of the ClientReportModel.
type SectionID string

const (
	SectionIdentity       SectionID = "identity"
	SectionFinancial      SectionID = "financial"
	SectionAssets         SectionID = "assets"
	SectionDebts          SectionID = "debts"
	SectionInsurance      SectionID = "insurance"
	SectionGoals          SectionID = "goals"
	SectionRetirement     SectionID = "retirement"
	SectionRiskProfile    SectionID = "riskProfile"
	SectionMeetings       SectionID = "meetings"
	SectionLegalDocuments SectionID = "legalDocuments"
	SectionChatHistory    SectionID = "chatHistory"
	SectionRiskSessions   SectionID = "riskSessions"
	SectionEstate         SectionID = "estate"
	SectionMutualFunds    SectionID = "mutualFundRecommendations"
	SectionTaxPlanning    SectionID = "taxPlanning"
	SectionInvitations    SectionID = "invitations"
)

// AllSections lists every defined section in display order. The completeness
// score is defined over this set.
func AllSections() []SectionID {
	return []SectionID{
		SectionIdentity,
		SectionFinancial,
		SectionAssets,
		SectionDebts,
		SectionInsurance,
		SectionGoals,
		SectionRetirement,
		SectionRiskProfile,
		SectionMeetings,
		SectionLegalDocuments,
		SectionChatHistory,
		SectionRiskSessions,
		SectionEstate,
		SectionMutualFunds,
		SectionTaxPlanning,
		SectionInvitations,
	}
}

type IdentitySection struct {
	ClientID      Field[string]
	FullName      Field[string]
	Email         Field[string]
	Phone         Field[string]
	DateOfBirth   Field[string]
	MaritalStatus Field[string]
	Dependents    Field[int64]
	Occupation    Field[string]
	KYCVerified   Field[bool]
}

type FinancialSection struct {
	TotalMonthlyIncome   Field[decimal.Decimal]
	TotalMonthlyExpenses Field[decimal.Decimal]
	LiquidSavings        Field[decimal.Decimal]
	AnnualBonus          Field[decimal.Decimal]
	Currency             Field[string]
}

type AssetItem struct {
	Name     Field[string]
	Category Field[string]
	Value    Field[decimal.Decimal]
}

type AssetsSection struct {
	Items []AssetItem
}

type DebtItem struct {
	Lender          Field[string]
	Type            Field[string]
	Outstanding     Field[decimal.Decimal]
	MonthlyEMI      Field[decimal.Decimal]
	InterestRatePct Field[decimal.Decimal]
}

type DebtsSection struct {
	Items []DebtItem
}

type InsurancePolicy struct {
	Provider      Field[string]
	PolicyType    Field[string]
	CoverAmount   Field[decimal.Decimal]
	AnnualPremium Field[decimal.Decimal]
}

type InsuranceSection struct {
	Policies []InsurancePolicy
}

type Goal struct {
	Name          Field[string]
	TargetAmount  Field[decimal.Decimal]
	CurrentAmount Field[decimal.Decimal]
	TargetDate    Field[string]
	Priority      Field[string]
}

type GoalsSection struct {
	Goals []Goal
}

type RetirementSection struct {
	TargetAge           Field[int64]
	MonthlyContribution Field[decimal.Decimal]
	CorpusTarget        Field[decimal.Decimal]
	CorpusCurrent       Field[decimal.Decimal]
}

type RiskProfileSection struct {
	Tolerance Field[string]
	Horizon   Field[string]
	Score     Field[int64]
}

type Meeting struct {
	Title               Field[string]
	HeldAt              Field[time.Time]
	DurationMinutes     Field[int64]
	Summary             Field[string]
	TranscriptAvailable Field[bool]
}

type MeetingsSection struct {
	Meetings []Meeting
}

type LegalDocument struct {
	Name       Field[string]
	Category   Field[string]
	Status     Field[string]
	UploadedAt Field[time.Time]
}

type LegalDocumentsSection struct {
	Documents []LegalDocument
}

type ChatMessage struct {
	Role    Field[string]
	Content Field[string]
	SentAt  Field[time.Time]
}

type ChatHistorySection struct {
	Messages []ChatMessage
}

type RiskSession struct {
	CompletedAt Field[time.Time]
	Variant     Field[string]
	Score       Field[int64]
	Outcome     Field[string]
}

type RiskSessionsSection struct {
	Sessions []RiskSession
}

type Beneficiary struct {
	Name          Field[string]
	Relationship  Field[string]
	AllocationPct Field[decimal.Decimal]
}

type EstateSection struct {
	HasWill        Field[bool]
	Executor       Field[string]
	LastReviewedAt Field[time.Time]
	Beneficiaries  []Beneficiary
}

type FundRecommendation struct {
	FundName          Field[string]
	Category          Field[string]
	RiskLevel         Field[string]
	ExpectedReturnPct Field[decimal.Decimal]
	MonthlySIP        Field[decimal.Decimal]
}

type MutualFundsSection struct {
	Recommendations []FundRecommendation
}

type TaxDeduction struct {
	Name   Field[string]
	Amount Field[decimal.Decimal]
}

type TaxPlanningSection struct {
	FilingStatus       Field[string]
	EstimatedAnnualTax Field[decimal.Decimal]
	Deductions         []TaxDeduction
}

type Invitation struct {
	Email  Field[string]
	Status Field[string]
	SentAt Field[time.Time]
}

type InvitationsSection struct {
	Invitations []Invitation
}

// ClientReportModel is the canonical normalized report. A nil section is
// absent; Unavailable records why. Sections never alias RawBundle data,
// normalization always copies.
type ClientReportModel struct {
	ClientID    string
	GeneratedAt time.Time

	Identity                  *IdentitySection
	Financial                 *FinancialSection
	Assets                    *AssetsSection
	Debts                     *DebtsSection
	Insurance                 *InsuranceSection
	Goals                     *GoalsSection
	Retirement                *RetirementSection
	RiskProfile               *RiskProfileSection
	Meetings                  *MeetingsSection
	LegalDocuments            *LegalDocumentsSection
	ChatHistory               *ChatHistorySection
	RiskSessions              *RiskSessionsSection
	Estate                    *EstateSection
	MutualFundRecommendations *MutualFundsSection
	TaxPlanning               *TaxPlanningSection
	Invitations               *InvitationsSection

	// Unavailable maps an absent section to the reason its source could not
	// provide data ("source failed", "source timeout", "not collected").
	Unavailable map[SectionID]string
}

// SectionPresent reports whether the section's source settled ok, regardless
// of whether any leaves carry data.
func (m *ClientReportModel) SectionPresent(id SectionID) bool {
	switch id {
	case SectionIdentity:
		return m.Identity != nil
	case SectionFinancial:
		return m.Financial != nil
	case SectionAssets:
		return m.Assets != nil
	case SectionDebts:
		return m.Debts != nil
	case SectionInsurance:
		return m.Insurance != nil
	case SectionGoals:
		return m.Goals != nil
	case SectionRetirement:
		return m.Retirement != nil
	case SectionRiskProfile:
		return m.RiskProfile != nil
	case SectionMeetings:
		return m.Meetings != nil
	case SectionLegalDocuments:
		return m.LegalDocuments != nil
	case SectionChatHistory:
		return m.ChatHistory != nil
	case SectionRiskSessions:
		return m.RiskSessions != nil
	case SectionEstate:
		return m.Estate != nil
	case SectionMutualFunds:
		return m.MutualFundRecommendations != nil
	case SectionTaxPlanning:
		return m.TaxPlanning != nil
	case SectionInvitations:
		return m.Invitations != nil
	}
	return false
}

// SectionHasData reports whether the section is present with at least one
// non-empty leaf. This is the predicate the completeness score counts, so an
// ok-but-empty source is present yet still "Pending".
func (m *ClientReportModel) SectionHasData(id SectionID) bool {
	if !m.SectionPresent(id) {
		return false
	}
	switch id {
	case SectionIdentity:
		s := m.Identity
		return anyPresent(s.ClientID, s.FullName, s.Email, s.Phone, s.DateOfBirth,
			s.MaritalStatus, s.Occupation) || s.Dependents.IsPresent() || s.KYCVerified.IsPresent()
	case SectionFinancial:
		s := m.Financial
		return s.TotalMonthlyIncome.IsPresent() || s.TotalMonthlyExpenses.IsPresent() ||
			s.LiquidSavings.IsPresent() || s.AnnualBonus.IsPresent()
	case SectionAssets:
		return len(m.Assets.Items) > 0
	case SectionDebts:
		return len(m.Debts.Items) > 0
	case SectionInsurance:
		return len(m.Insurance.Policies) > 0
	case SectionGoals:
		return len(m.Goals.Goals) > 0
	case SectionRetirement:
		s := m.Retirement
		return s.TargetAge.IsPresent() || s.MonthlyContribution.IsPresent() ||
			s.CorpusTarget.IsPresent() || s.CorpusCurrent.IsPresent()
	case SectionRiskProfile:
		s := m.RiskProfile
		return anyPresent(s.Tolerance, s.Horizon) || s.Score.IsPresent()
	case SectionMeetings:
		return len(m.Meetings.Meetings) > 0
	case SectionLegalDocuments:
		return len(m.LegalDocuments.Documents) > 0
	case SectionChatHistory:
		return len(m.ChatHistory.Messages) > 0
	case SectionRiskSessions:
		return len(m.RiskSessions.Sessions) > 0
	case SectionEstate:
		s := m.Estate
		return s.HasWill.IsPresent() || s.Executor.IsPresent() ||
			s.LastReviewedAt.IsPresent() || len(s.Beneficiaries) > 0
	case SectionMutualFunds:
		return len(m.MutualFundRecommendations.Recommendations) > 0
	case SectionTaxPlanning:
		s := m.TaxPlanning
		return s.FilingStatus.IsPresent() || s.EstimatedAnnualTax.IsPresent() ||
			len(s.Deductions) > 0
	case SectionInvitations:
		return len(m.Invitations.Invitations) > 0
	}
	return false
}

func anyPresent(fields ...Field[string]) bool {
	for _, f := range fields {
		if f.IsPresent() {
			return true
		}
	}
	return false
}

package render

import (
	"fmt"

	"github.com/advisordesk/report-engine/pkg/models/domain"
)

// Row is one displayed label/value pair. Both the tab projector and the
// document exporter consume these rows, which is what makes the two surfaces
// agree on every value.
type Row struct {
	Label string
	Value string
}

// SectionTitle is the display heading for a section, shared by every
// renderer.
func SectionTitle(id domain.SectionID) string {
	switch id {
	case domain.SectionIdentity:
		return "Client Identity"
	case domain.SectionFinancial:
		return "Financial Summary"
	case domain.SectionAssets:
		return "Assets"
	case domain.SectionDebts:
		return "Debts & Liabilities"
	case domain.SectionInsurance:
		return "Insurance"
	case domain.SectionGoals:
		return "Financial Goals"
	case domain.SectionRetirement:
		return "Retirement Planning"
	case domain.SectionRiskProfile:
		return "Risk Profile"
	case domain.SectionMeetings:
		return "Meetings"
	case domain.SectionLegalDocuments:
		return "Legal Documents"
	case domain.SectionChatHistory:
		return "Advisory Chat History"
	case domain.SectionRiskSessions:
		return "Risk Assessment Sessions"
	case domain.SectionEstate:
		return "Estate Planning"
	case domain.SectionMutualFunds:
		return "Mutual Fund Recommendations"
	case domain.SectionTaxPlanning:
		return "Tax Planning"
	case domain.SectionInvitations:
		return "Invitations"
	}
	return string(id)
}

func IdentityRows(s *domain.IdentitySection) []Row {
	if s == nil {
		return nil
	}
	return []Row{
		{"Full Name", String(s.FullName)},
		{"Email", String(s.Email)},
		{"Phone", String(s.Phone)},
		{"Date of Birth", String(s.DateOfBirth)},
		{"Marital Status", String(s.MaritalStatus)},
		{"Dependents", Int(s.Dependents)},
		{"Occupation", String(s.Occupation)},
		{"KYC Verified", Bool(s.KYCVerified)},
	}
}

func FinancialRows(s *domain.FinancialSection, currency string) []Row {
	if s == nil {
		return nil
	}
	return []Row{
		{"Monthly Income", Money(s.TotalMonthlyIncome, currency)},
		{"Monthly Expenses", Money(s.TotalMonthlyExpenses, currency)},
		{"Liquid Savings", Money(s.LiquidSavings, currency)},
		{"Annual Bonus", Money(s.AnnualBonus, currency)},
	}
}

// MetricRows is the overview block. Every derived number a user sees twice
// flows through here exactly once.
func MetricRows(m domain.DerivedMetrics, currency string) []Row {
	return []Row{
		{"Total Assets", Money(m.TotalAssets, currency)},
		{"Total Liabilities", Money(m.TotalLiabilities, currency)},
		{"Net Worth", Money(m.NetWorth, currency)},
		{"Monthly Savings", Money(m.MonthlySavings, currency)},
		{"Savings Rate", Percent(m.SavingsRatePct)},
		{"Expense Ratio", Percent(m.ExpenseRatioPct)},
		{"Debt Service Ratio", Percent(m.DebtServiceRatioPct)},
		{"Debt Service Band", Band(m.DebtServiceBand)},
		{"Emergency Fund Coverage", Months(m.EmergencyFundMonths)},
		{"Emergency Fund Band", Band(m.EmergencyFundBand)},
		{"Goal Progress", Fraction(m.AggregateGoalProgress)},
		{"Report Completeness", m.Completeness.ScorePct.StringFixed(2) + "%"},
	}
}

func AssetRows(s *domain.AssetsSection, currency string) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Items))
	for _, item := range s.Items {
		label := String(item.Name)
		if item.Category.IsPresent() {
			label = fmt.Sprintf("%s (%s)", label, item.Category.Value)
		}
		rows = append(rows, Row{label, Money(item.Value, currency)})
	}
	return rows
}

func DebtRows(s *domain.DebtsSection, currency string) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Items)*2)
	for _, item := range s.Items {
		label := String(item.Lender)
		if item.Type.IsPresent() {
			label = fmt.Sprintf("%s (%s)", label, item.Type.Value)
		}
		rows = append(rows,
			Row{label + " Outstanding", Money(item.Outstanding, currency)},
			Row{label + " Monthly EMI", Money(item.MonthlyEMI, currency)},
		)
	}
	return rows
}

func InsuranceRows(s *domain.InsuranceSection, currency string) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Policies))
	for _, p := range s.Policies {
		label := String(p.Provider)
		if p.PolicyType.IsPresent() {
			label = fmt.Sprintf("%s (%s)", label, p.PolicyType.Value)
		}
		rows = append(rows, Row{label + " Cover", Money(p.CoverAmount, currency)})
	}
	return rows
}

func GoalRows(s *domain.GoalsSection, progress []domain.GoalProgress, currency string) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Goals)*2)
	for i, g := range s.Goals {
		label := String(g.Name)
		rows = append(rows, Row{label + " Target", Money(g.TargetAmount, currency)})
		if i < len(progress) {
			if progress[i].InvalidTarget {
				rows = append(rows, Row{label + " Progress", "Invalid Target"})
			} else {
				rows = append(rows, Row{label + " Progress", Fraction(progress[i].Progress)})
			}
		}
	}
	return rows
}

func RetirementRows(s *domain.RetirementSection, currency string) []Row {
	if s == nil {
		return nil
	}
	return []Row{
		{"Target Retirement Age", Int(s.TargetAge)},
		{"Monthly Contribution", Money(s.MonthlyContribution, currency)},
		{"Corpus Target", Money(s.CorpusTarget, currency)},
		{"Corpus Accumulated", Money(s.CorpusCurrent, currency)},
	}
}

func RiskProfileRows(s *domain.RiskProfileSection) []Row {
	if s == nil {
		return nil
	}
	return []Row{
		{"Risk Tolerance", String(s.Tolerance)},
		{"Investment Horizon", String(s.Horizon)},
		{"Risk Score", Int(s.Score)},
	}
}

func MeetingRows(s *domain.MeetingsSection) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Meetings))
	for _, m := range s.Meetings {
		label := fmt.Sprintf("%s %s", Time(m.HeldAt), String(m.Title))
		rows = append(rows, Row{label, String(m.Summary)})
	}
	return rows
}

func LegalDocumentRows(s *domain.LegalDocumentsSection) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Documents))
	for _, d := range s.Documents {
		rows = append(rows, Row{String(d.Name), String(d.Status)})
	}
	return rows
}

func ChatRows(s *domain.ChatHistorySection) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Messages))
	for _, m := range s.Messages {
		rows = append(rows, Row{fmt.Sprintf("%s (%s)", String(m.Role), Time(m.SentAt)), String(m.Content)})
	}
	return rows
}

func RiskSessionRows(s *domain.RiskSessionsSection) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Sessions))
	for _, rs := range s.Sessions {
		label := fmt.Sprintf("%s %s", Time(rs.CompletedAt), String(rs.Variant))
		value := fmt.Sprintf("Score %s, %s", Int(rs.Score), String(rs.Outcome))
		rows = append(rows, Row{label, value})
	}
	return rows
}

func EstateRows(s *domain.EstateSection) []Row {
	if s == nil {
		return nil
	}
	rows := []Row{
		{"Will in Place", Bool(s.HasWill)},
		{"Executor", String(s.Executor)},
		{"Last Reviewed", Time(s.LastReviewedAt)},
	}
	for _, b := range s.Beneficiaries {
		label := String(b.Name)
		if b.Relationship.IsPresent() {
			label = fmt.Sprintf("%s (%s)", label, b.Relationship.Value)
		}
		rows = append(rows, Row{"Beneficiary: " + label, Percent(b.AllocationPct)})
	}
	return rows
}

func FundRecommendationRows(s *domain.MutualFundsSection, currency string) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Recommendations)*2)
	for _, r := range s.Recommendations {
		label := String(r.FundName)
		rows = append(rows,
			Row{label + " Expected Return", Percent(r.ExpectedReturnPct)},
			Row{label + " Monthly SIP", Money(r.MonthlySIP, currency)},
		)
	}
	return rows
}

func TaxPlanningRows(s *domain.TaxPlanningSection, currency string) []Row {
	if s == nil {
		return nil
	}
	rows := []Row{
		{"Filing Status", String(s.FilingStatus)},
		{"Estimated Annual Tax", Money(s.EstimatedAnnualTax, currency)},
	}
	for _, d := range s.Deductions {
		rows = append(rows, Row{"Deduction: " + String(d.Name), Money(d.Amount, currency)})
	}
	return rows
}

func InvitationRows(s *domain.InvitationsSection) []Row {
	if s == nil {
		return nil
	}
	rows := make([]Row, 0, len(s.Invitations))
	for _, inv := range s.Invitations {
		rows = append(rows, Row{String(inv.Email), fmt.Sprintf("%s (%s)", String(inv.Status), Time(inv.SentAt))})
	}
	return rows
}

// SectionRows dispatches to the right builder for a section. Nil result
// means the section is absent.
func SectionRows(model *domain.ClientReportModel, metrics domain.DerivedMetrics, id domain.SectionID) []Row {
	currency := Currency(model)
	switch id {
	case domain.SectionIdentity:
		return IdentityRows(model.Identity)
	case domain.SectionFinancial:
		return FinancialRows(model.Financial, currency)
	case domain.SectionAssets:
		return AssetRows(model.Assets, currency)
	case domain.SectionDebts:
		return DebtRows(model.Debts, currency)
	case domain.SectionInsurance:
		return InsuranceRows(model.Insurance, currency)
	case domain.SectionGoals:
		return GoalRows(model.Goals, metrics.Goals, currency)
	case domain.SectionRetirement:
		return RetirementRows(model.Retirement, currency)
	case domain.SectionRiskProfile:
		return RiskProfileRows(model.RiskProfile)
	case domain.SectionMeetings:
		return MeetingRows(model.Meetings)
	case domain.SectionLegalDocuments:
		return LegalDocumentRows(model.LegalDocuments)
	case domain.SectionChatHistory:
		return ChatRows(model.ChatHistory)
	case domain.SectionRiskSessions:
		return RiskSessionRows(model.RiskSessions)
	case domain.SectionEstate:
		return EstateRows(model.Estate)
	case domain.SectionMutualFunds:
		return FundRecommendationRows(model.MutualFundRecommendations, currency)
	case domain.SectionTaxPlanning:
		return TaxPlanningRows(model.TaxPlanning, currency)
	case domain.SectionInvitations:
		return InvitationRows(model.Invitations)
	}
	return nil
}

package api

import "time"

// FieldValue is the wire form of a tri-state leaf. Value is omitted when the
// leaf is absent; Raw carries the original upstream value for malformed
// leaves so nothing is silently dropped.
type FieldValue struct {
	Value     any  `json:"value,omitempty"`
	Present   bool `json:"present"`
	Malformed bool `json:"malformed,omitempty"`
	Raw       any  `json:"raw,omitempty"`
}

type Identity struct {
	ClientID      FieldValue `json:"clientId"`
	FullName      FieldValue `json:"fullName"`
	Email         FieldValue `json:"email"`
	Phone         FieldValue `json:"phone"`
	DateOfBirth   FieldValue `json:"dateOfBirth"`
	MaritalStatus FieldValue `json:"maritalStatus"`
	Dependents    FieldValue `json:"dependents"`
	Occupation    FieldValue `json:"occupation"`
	KYCVerified   FieldValue `json:"kycVerified"`
}

type Financial struct {
	TotalMonthlyIncome   FieldValue `json:"totalMonthlyIncome"`
	TotalMonthlyExpenses FieldValue `json:"totalMonthlyExpenses"`
	LiquidSavings        FieldValue `json:"liquidSavings"`
	AnnualBonus          FieldValue `json:"annualBonus"`
	Currency             FieldValue `json:"currency"`
}

type AssetItem struct {
	Name     FieldValue `json:"name"`
	Category FieldValue `json:"category"`
	Value    FieldValue `json:"value"`
}

type Assets struct {
	Items []AssetItem `json:"items"`
}

type DebtItem struct {
	Lender          FieldValue `json:"lender"`
	Type            FieldValue `json:"type"`
	Outstanding     FieldValue `json:"outstanding"`
	MonthlyEMI      FieldValue `json:"monthlyEmi"`
	InterestRatePct FieldValue `json:"interestRatePct"`
}

type Debts struct {
	Items []DebtItem `json:"items"`
}

type InsurancePolicy struct {
	Provider      FieldValue `json:"provider"`
	PolicyType    FieldValue `json:"policyType"`
	CoverAmount   FieldValue `json:"coverAmount"`
	AnnualPremium FieldValue `json:"annualPremium"`
}

type Insurance struct {
	Policies []InsurancePolicy `json:"policies"`
}

type Goal struct {
	Name          FieldValue `json:"name"`
	TargetAmount  FieldValue `json:"targetAmount"`
	CurrentAmount FieldValue `json:"currentAmount"`
	TargetDate    FieldValue `json:"targetDate"`
	Priority      FieldValue `json:"priority"`
}

type Goals struct {
	Goals []Goal `json:"goals"`
}

type Retirement struct {
	TargetAge           FieldValue `json:"targetAge"`
	MonthlyContribution FieldValue `json:"monthlyContribution"`
	CorpusTarget        FieldValue `json:"corpusTarget"`
	CorpusCurrent       FieldValue `json:"corpusCurrent"`
}

type RiskProfile struct {
	Tolerance FieldValue `json:"tolerance"`
	Horizon   FieldValue `json:"horizon"`
	Score     FieldValue `json:"score"`
}

type Meeting struct {
	Title               FieldValue `json:"title"`
	HeldAt              FieldValue `json:"heldAt"`
	DurationMinutes     FieldValue `json:"durationMinutes"`
	Summary             FieldValue `json:"summary"`
	TranscriptAvailable FieldValue `json:"transcriptAvailable"`
}

type Meetings struct {
	Meetings []Meeting `json:"meetings"`
}

type LegalDocument struct {
	Name       FieldValue `json:"name"`
	Category   FieldValue `json:"category"`
	Status     FieldValue `json:"status"`
	UploadedAt FieldValue `json:"uploadedAt"`
}

type LegalDocuments struct {
	Documents []LegalDocument `json:"documents"`
}

type ChatMessage struct {
	Role    FieldValue `json:"role"`
	Content FieldValue `json:"content"`
	SentAt  FieldValue `json:"sentAt"`
}

type ChatHistory struct {
	Messages []ChatMessage `json:"messages"`
}

type RiskSession struct {
	CompletedAt FieldValue `json:"completedAt"`
	Variant     FieldValue `json:"variant"`
	Score       FieldValue `json:"score"`
	Outcome     FieldValue `json:"outcome"`
}

type RiskSessions struct {
	Sessions []RiskSession `json:"sessions"`
}

type Beneficiary struct {
	Name          FieldValue `json:"name"`
	Relationship  FieldValue `json:"relationship"`
	AllocationPct FieldValue `json:"allocationPct"`
}

type Estate struct {
	HasWill        FieldValue    `json:"hasWill"`
	Executor       FieldValue    `json:"executor"`
	LastReviewedAt FieldValue    `json:"lastReviewedAt"`
	Beneficiaries  []Beneficiary `json:"beneficiaries"`
}

type FundRecommendation struct {
	FundName          FieldValue `json:"fundName"`
	Category          FieldValue `json:"category"`
	RiskLevel         FieldValue `json:"riskLevel"`
	ExpectedReturnPct FieldValue `json:"expectedReturnPct"`
	MonthlySIP        FieldValue `json:"monthlySip"`
}

type MutualFundRecommendations struct {
	Recommendations []FundRecommendation `json:"recommendations"`
}

type TaxDeduction struct {
	Name   FieldValue `json:"name"`
	Amount FieldValue `json:"amount"`
}

type TaxPlanning struct {
	FilingStatus       FieldValue     `json:"filingStatus"`
	EstimatedAnnualTax FieldValue     `json:"estimatedAnnualTax"`
	Deductions         []TaxDeduction `json:"deductions"`
}

type Invitation struct {
	Email  FieldValue `json:"email"`
	Status FieldValue `json:"status"`
	SentAt FieldValue `json:"sentAt"`
}

type Invitations struct {
	Invitations []Invitation `json:"invitations"`
}

// ClientReport mirrors the normalized model. A nil section was unavailable;
// the integrity payload carries the reason.
type ClientReport struct {
	ClientID    string    `json:"clientId"`
	GeneratedAt time.Time `json:"generatedAt"`

	Identity                  *Identity                  `json:"identity,omitempty"`
	Financial                 *Financial                 `json:"financial,omitempty"`
	Assets                    *Assets                    `json:"assets,omitempty"`
	Debts                     *Debts                     `json:"debts,omitempty"`
	Insurance                 *Insurance                 `json:"insurance,omitempty"`
	Goals                     *Goals                     `json:"goals,omitempty"`
	Retirement                *Retirement                `json:"retirement,omitempty"`
	RiskProfile               *RiskProfile               `json:"riskProfile,omitempty"`
	Meetings                  *Meetings                  `json:"meetings,omitempty"`
	LegalDocuments            *LegalDocuments            `json:"legalDocuments,omitempty"`
	ChatHistory               *ChatHistory               `json:"chatHistory,omitempty"`
	RiskSessions              *RiskSessions              `json:"riskSessions,omitempty"`
	Estate                    *Estate                    `json:"estate,omitempty"`
	MutualFundRecommendations *MutualFundRecommendations `json:"mutualFundRecommendations,omitempty"`
	TaxPlanning               *TaxPlanning               `json:"taxPlanning,omitempty"`
	Invitations               *Invitations               `json:"invitations,omitempty"`

	Metrics Metrics `json:"metrics"`
}

type GoalProgress struct {
	Name          string     `json:"name"`
	Progress      FieldValue `json:"progress"`
	InvalidTarget bool       `json:"invalidTarget,omitempty"`
}

type Metrics struct {
	TotalAssets           FieldValue     `json:"totalAssets"`
	TotalLiabilities      FieldValue     `json:"totalLiabilities"`
	NetWorth              FieldValue     `json:"netWorth"`
	MonthlySavings        FieldValue     `json:"monthlySavings"`
	SavingsRatePct        FieldValue     `json:"savingsRatePct"`
	SavingsRateRawPct     FieldValue     `json:"savingsRateRawPct"`
	ExpenseRatioPct       FieldValue     `json:"expenseRatioPct"`
	DebtServiceRatioPct   FieldValue     `json:"debtServiceRatioPct"`
	DebtServiceBand       string         `json:"debtServiceBand,omitempty"`
	EmergencyFundMonths   FieldValue     `json:"emergencyFundMonths"`
	EmergencyFundBand     string         `json:"emergencyFundBand,omitempty"`
	Goals                 []GoalProgress `json:"goals"`
	AggregateGoalProgress FieldValue     `json:"aggregateGoalProgress"`
}

// SectionIntegrity is the per-section completeness entry surfaced as a
// Pending/Complete badge.
type SectionIntegrity struct {
	Complete bool   `json:"complete"`
	Reason   string `json:"reason,omitempty"`
}

type ReportIntegrity struct {
	Sections map[string]SectionIntegrity `json:"sections"`
	ScorePct string                      `json:"scorePct"`
}

type ReportResponse struct {
	Success          bool             `json:"success"`
	Data             *ClientReport    `json:"data,omitempty"`
	ProcessingTimeMs int64            `json:"processingTimeMs"`
	DataIntegrity    *ReportIntegrity `json:"dataIntegrity,omitempty"`
	Error            *Error           `json:"error,omitempty"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// TabRow is one label/value line of a tab. Value is always a displayable
// string, "Not Available" when the underlying leaf is absent.
type TabRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type TabGroup struct {
	Title string   `json:"title"`
	Rows  []TabRow `json:"rows"`
}

type TabView struct {
	TabID   string     `json:"tabId"`
	Title   string     `json:"title"`
	Pending bool       `json:"pending"`
	Reason  string     `json:"reason,omitempty"`
	Groups  []TabGroup `json:"groups"`
}

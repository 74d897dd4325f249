package domain

import "github.com/shopspring/decimal"

// Band is a qualitative label a metric falls into.
type Band string

const (
	BandManageable   Band = "Manageable"
	BandHigh         Band = "High"
	BandAdequate     Band = "Adequate"
	BandInsufficient Band = "Insufficient"
)

// GoalProgress is the computed progress for one goal. A goal whose target
// amount is zero or negative is flagged invalid and excluded from the
// aggregate, never rendered as an Infinity/NaN artifact.
type GoalProgress struct {
	Name          string
	Progress      Field[decimal.Decimal] // fraction clamped to [0,1]
	InvalidTarget bool
}

// ReportCompleteness maps each defined section to whether it is present with
// at least one non-empty leaf. Always computable, never absent.
type ReportCompleteness struct {
	Sections map[SectionID]bool
	Reasons  map[SectionID]string
	ScorePct decimal.Decimal
}

// DerivedMetrics holds every computed indicator a user sees. It is derived
// strictly from a ClientReportModel; recomputing from the same model yields
// byte-identical values.
type DerivedMetrics struct {
	TotalAssets      Field[decimal.Decimal]
	TotalLiabilities Field[decimal.Decimal]
	NetWorth         Field[decimal.Decimal]

	MonthlySavings    Field[decimal.Decimal]
	SavingsRatePct    Field[decimal.Decimal] // clamped to [0,100] for display
	SavingsRateRawPct Field[decimal.Decimal] // unclamped, signed
	ExpenseRatioPct   Field[decimal.Decimal]

	DebtServiceRatioPct Field[decimal.Decimal]
	DebtServiceBand     Band

	EmergencyFundMonths Field[int64]
	EmergencyFundBand   Band

	Goals                 []GoalProgress
	AggregateGoalProgress Field[decimal.Decimal] // fraction in [0,1] over valid goals

	Completeness ReportCompleteness
}

// Package metrics derives every computed indicator from the normalized
// model. It is the single source of truth for each number a user sees: both
// the interactive view and the exporter read the same DerivedMetrics, so
// rounding and clamping happen exactly once, here.
package metrics

import (
	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

type Calculator struct {
	thresholds Thresholds
}

func NewCalculator(thresholds Thresholds) *Calculator {
	return &Calculator{thresholds: thresholds}
}

// Compute is pure and deterministic: the same model always yields
// byte-identical metrics. A metric whose inputs are absent, or whose
// denominator is zero, is absent itself, never 0, NaN or Infinity.
func (c *Calculator) Compute(model *domain.ClientReportModel) domain.DerivedMetrics {
	m := domain.DerivedMetrics{}

	m.TotalAssets = totalAssets(model)
	m.TotalLiabilities = totalLiabilities(model)
	m.NetWorth = netWorth(m.TotalAssets, m.TotalLiabilities)

	income := absentDecimal()
	expenses := absentDecimal()
	liquid := absentDecimal()
	if model.Financial != nil {
		income = model.Financial.TotalMonthlyIncome
		expenses = model.Financial.TotalMonthlyExpenses
		liquid = model.Financial.LiquidSavings
	}

	m.MonthlySavings = monthlySavings(income, expenses)
	m.SavingsRateRawPct = ratioPct(m.MonthlySavings, income)
	m.SavingsRatePct = clampPct(m.SavingsRateRawPct)
	m.ExpenseRatioPct = ratioPct(expenses, income)

	emi := totalEMI(model)
	m.DebtServiceRatioPct = ratioPct(emi, income)
	if m.DebtServiceRatioPct.IsPresent() {
		if m.DebtServiceRatioPct.Value.GreaterThan(decimal.NewFromFloat(c.thresholds.DebtServiceHighPct)) {
			m.DebtServiceBand = domain.BandHigh
		} else {
			m.DebtServiceBand = domain.BandManageable
		}
	}

	m.EmergencyFundMonths = emergencyFundMonths(liquid, expenses)
	if m.EmergencyFundMonths.IsPresent() {
		if m.EmergencyFundMonths.Value >= c.thresholds.EmergencyFundAdequateMonths {
			m.EmergencyFundBand = domain.BandAdequate
		} else {
			m.EmergencyFundBand = domain.BandInsufficient
		}
	}

	m.Goals, m.AggregateGoalProgress = goalProgress(model)
	m.Completeness = Completeness(model)

	return m
}

// Completeness is defined over presence flags, never values, so it is always
// computable.
func Completeness(model *domain.ClientReportModel) domain.ReportCompleteness {
	all := domain.AllSections()
	c := domain.ReportCompleteness{
		Sections: make(map[domain.SectionID]bool, len(all)),
		Reasons:  make(map[domain.SectionID]string, len(all)),
	}

	complete := 0
	for _, id := range all {
		hasData := model.SectionHasData(id)
		c.Sections[id] = hasData
		if hasData {
			complete++
			continue
		}
		if reason, ok := model.Unavailable[id]; ok {
			c.Reasons[id] = reason
		} else {
			// Present but empty: the client simply has nothing here yet.
			c.Reasons[id] = "no data collected"
		}
	}

	c.ScorePct = decimal.NewFromInt(int64(complete)).
		Div(decimal.NewFromInt(int64(len(all)))).
		Mul(hundred).
		Round(2)
	return c
}

func absentDecimal() domain.Field[decimal.Decimal] {
	return domain.Absent[decimal.Decimal]()
}

// totalAssets sums present item values; an absent section or one with no
// valued items yields an absent total, not zero.
func totalAssets(model *domain.ClientReportModel) domain.Field[decimal.Decimal] {
	if model.Assets == nil {
		return absentDecimal()
	}
	sum := decimal.Zero
	counted := false
	for _, item := range model.Assets.Items {
		if item.Value.IsPresent() {
			sum = sum.Add(item.Value.Value)
			counted = true
		}
	}
	if !counted {
		return absentDecimal()
	}
	return domain.Present(sum.Round(2))
}

func totalLiabilities(model *domain.ClientReportModel) domain.Field[decimal.Decimal] {
	if model.Debts == nil {
		return absentDecimal()
	}
	sum := decimal.Zero
	counted := false
	for _, item := range model.Debts.Items {
		if item.Outstanding.IsPresent() {
			sum = sum.Add(item.Outstanding.Value)
			counted = true
		}
	}
	if !counted {
		return absentDecimal()
	}
	return domain.Present(sum.Round(2))
}

func netWorth(assets, liabilities domain.Field[decimal.Decimal]) domain.Field[decimal.Decimal] {
	if !assets.IsPresent() || !liabilities.IsPresent() {
		return absentDecimal()
	}
	return domain.Present(assets.Value.Sub(liabilities.Value).Round(2))
}

func monthlySavings(income, expenses domain.Field[decimal.Decimal]) domain.Field[decimal.Decimal] {
	if !income.IsPresent() || !expenses.IsPresent() {
		return absentDecimal()
	}
	return domain.Present(income.Value.Sub(expenses.Value).Round(2))
}

// ratioPct returns numerator/denominator as a percentage, absent when either
// side is absent or the denominator is zero.
func ratioPct(numerator, denominator domain.Field[decimal.Decimal]) domain.Field[decimal.Decimal] {
	if !numerator.IsPresent() || !denominator.IsPresent() || denominator.Value.IsZero() {
		return absentDecimal()
	}
	return domain.Present(numerator.Value.Div(denominator.Value).Mul(hundred).Round(2))
}

func clampPct(f domain.Field[decimal.Decimal]) domain.Field[decimal.Decimal] {
	if !f.IsPresent() {
		return f
	}
	v := f.Value
	if v.IsNegative() {
		v = decimal.Zero
	} else if v.GreaterThan(hundred) {
		v = hundred
	}
	return domain.Present(v.Round(2))
}

func totalEMI(model *domain.ClientReportModel) domain.Field[decimal.Decimal] {
	if model.Debts == nil {
		return absentDecimal()
	}
	sum := decimal.Zero
	counted := false
	for _, item := range model.Debts.Items {
		if item.MonthlyEMI.IsPresent() {
			sum = sum.Add(item.MonthlyEMI.Value)
			counted = true
		}
	}
	if !counted {
		return absentDecimal()
	}
	return domain.Present(sum.Round(2))
}

func emergencyFundMonths(liquid, expenses domain.Field[decimal.Decimal]) domain.Field[int64] {
	if !liquid.IsPresent() || !expenses.IsPresent() || expenses.Value.IsZero() {
		return domain.Absent[int64]()
	}
	months := liquid.Value.Div(expenses.Value).Round(0)
	return domain.Present(months.IntPart())
}

// goalProgress computes each goal's clamped progress fraction. A goal with a
// zero or negative target is an input error: it stays listed with an invalid
// flag but is excluded from the aggregate.
func goalProgress(model *domain.ClientReportModel) ([]domain.GoalProgress, domain.Field[decimal.Decimal]) {
	if model.Goals == nil {
		return nil, absentDecimal()
	}

	progress := make([]domain.GoalProgress, 0, len(model.Goals.Goals))
	sum := decimal.Zero
	valid := 0
	for _, g := range model.Goals.Goals {
		name := g.Name.Value
		entry := domain.GoalProgress{Name: name, Progress: absentDecimal()}

		switch {
		case g.TargetAmount.IsPresent() && !g.TargetAmount.Value.IsPositive():
			entry.InvalidTarget = true
		case g.TargetAmount.IsPresent() && g.CurrentAmount.IsPresent():
			p := g.CurrentAmount.Value.Div(g.TargetAmount.Value)
			if p.IsNegative() {
				p = decimal.Zero
			} else if p.GreaterThan(one) {
				p = one
			}
			entry.Progress = domain.Present(p.Round(4))
			sum = sum.Add(entry.Progress.Value)
			valid++
		}
		progress = append(progress, entry)
	}

	if valid == 0 {
		return progress, absentDecimal()
	}
	aggregate := sum.Div(decimal.NewFromInt(int64(valid))).Round(4)
	return progress, domain.Present(aggregate)
}

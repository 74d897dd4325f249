package metrics

// Thresholds are the policy constants behind the qualitative bands. The
// defaults mirror long-standing advisory practice but are configuration, not
// business rules baked into formulas.
type Thresholds struct {
	EmergencyFundAdequateMonths int64   `mapstructure:"emergency_fund_adequate_months"`
	DebtServiceHighPct          float64 `mapstructure:"debt_service_high_pct"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		EmergencyFundAdequateMonths: 6,
		DebtServiceHighPct:          40,
	}
}

package render

import (
	"testing"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		field    domain.Field[decimal.Decimal]
		currency string
		want     string
	}{
		{"present with currency", domain.Present(decimal.NewFromInt(15000)), "INR", "INR 15000.00"},
		{"present without currency", domain.Present(decimal.NewFromInt(15000)), "", "15000.00"},
		{"two decimal places always", domain.Present(decimal.RequireFromString("99.5")), "INR", "INR 99.50"},
		{"absent", domain.Absent[decimal.Decimal](), "INR", NotAvailable},
		{"malformed", domain.Malformed[decimal.Decimal]("12k"), "INR", MalformedValue},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Money(tc.field, tc.currency))
		})
	}
}

func TestPercentAndFraction(t *testing.T) {
	assert.Equal(t, "30.00%", Percent(domain.Present(decimal.NewFromInt(30))))
	assert.Equal(t, NotAvailable, Percent(domain.Absent[decimal.Decimal]()))

	// Fractions are stored in [0,1] and displayed as percentages.
	assert.Equal(t, "25.00%", Fraction(domain.Present(decimal.RequireFromString("0.25"))))
	assert.Equal(t, "100.00%", Fraction(domain.Present(decimal.NewFromInt(1))))
	assert.Equal(t, NotAvailable, Fraction(domain.Absent[decimal.Decimal]()))
}

func TestMonths(t *testing.T) {
	assert.Equal(t, "1 month", Months(domain.Present(int64(1))))
	assert.Equal(t, "6 months", Months(domain.Present(int64(6))))
	assert.Equal(t, NotAvailable, Months(domain.Absent[int64]()))
}

func TestScalars(t *testing.T) {
	assert.Equal(t, "Asha Verma", String(domain.Present("Asha Verma")))
	assert.Equal(t, MalformedValue, String(domain.Malformed[string](42)))

	assert.Equal(t, "Yes", Bool(domain.Present(true)))
	assert.Equal(t, "No", Bool(domain.Present(false)))

	assert.Equal(t, "2025-03-10", Time(domain.Present(time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC))))

	assert.Equal(t, "High", Band(domain.BandHigh))
	assert.Equal(t, NotAvailable, Band(domain.Band("")))
}

func TestCurrency(t *testing.T) {
	model := &domain.ClientReportModel{}
	assert.Equal(t, "", Currency(model))

	model.Financial = &domain.FinancialSection{Currency: domain.Present("INR")}
	assert.Equal(t, "INR", Currency(model))
}

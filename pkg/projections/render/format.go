// Package render holds the one set of formatting rules for displayed values.
// Every consumer of the report model (tab view, document export, terminal)
// formats scalars through these functions, so two renderers can never
// disagree on a value.
package render

import (
	"strconv"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// NotAvailable is the only placeholder ever shown for missing data. Renderers
// must not emit empty strings, "NaN" or "Infinity".
const NotAvailable = "Not Available"

// MalformedValue marks a leaf that arrived in an unexpected shape. The raw
// value stays in the model for diagnostics but is never displayed.
const MalformedValue = "Invalid Data"

func Money(f domain.Field[decimal.Decimal], currency string) string {
	switch f.State {
	case domain.FieldPresent:
		if currency == "" {
			return f.Value.StringFixed(2)
		}
		return currency + " " + f.Value.StringFixed(2)
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

func Percent(f domain.Field[decimal.Decimal]) string {
	switch f.State {
	case domain.FieldPresent:
		return f.Value.StringFixed(2) + "%"
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

// Fraction renders a [0,1] progress fraction as a percentage.
func Fraction(f domain.Field[decimal.Decimal]) string {
	if f.State != domain.FieldPresent {
		return Percent(f)
	}
	return f.Value.Mul(decimal.NewFromInt(100)).Round(2).StringFixed(2) + "%"
}

func Months(f domain.Field[int64]) string {
	switch f.State {
	case domain.FieldPresent:
		if f.Value == 1 {
			return "1 month"
		}
		return strconv.FormatInt(f.Value, 10) + " months"
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

func Int(f domain.Field[int64]) string {
	switch f.State {
	case domain.FieldPresent:
		return strconv.FormatInt(f.Value, 10)
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

func String(f domain.Field[string]) string {
	switch f.State {
	case domain.FieldPresent:
		return f.Value
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

func Bool(f domain.Field[bool]) string {
	switch f.State {
	case domain.FieldPresent:
		if f.Value {
			return "Yes"
		}
		return "No"
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

func Time(f domain.Field[time.Time]) string {
	switch f.State {
	case domain.FieldPresent:
		return f.Value.Format("2006-01-02")
	case domain.FieldMalformed:
		return MalformedValue
	default:
		return NotAvailable
	}
}

func Band(b domain.Band) string {
	if b == "" {
		return NotAvailable
	}
	return string(b)
}

// Currency picks the display currency for money rows; it degrades to plain
// numbers when the financial section never declared one.
func Currency(model *domain.ClientReportModel) string {
	if model.Financial != nil && model.Financial.Currency.IsPresent() {
		return model.Financial.Currency.Value
	}
	return ""
}

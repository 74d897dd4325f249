package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// dig walks nested maps along path and never panics on absent or non-map
// intermediate nodes.
func dig(rec map[string]any, path ...string) (any, bool) {
	var cur any = rec
	for _, key := range path {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = node[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// stringField reads a string leaf. Missing, nil and empty-string all mean
// absent; any non-string value is malformed and kept for diagnostics.
func stringField(rec map[string]any, path ...string) domain.Field[string] {
	v, ok := dig(rec, path...)
	if !ok || v == nil {
		return domain.Absent[string]()
	}
	s, ok := v.(string)
	if !ok {
		return domain.Malformed[string](v)
	}
	if strings.TrimSpace(s) == "" {
		return domain.Absent[string]()
	}
	return domain.Present(s)
}

// decimalField reads a numeric leaf. Numeric strings are coerced, which is
// the common upstream inconsistency; anything else non-numeric is malformed.
func decimalField(rec map[string]any, path ...string) domain.Field[decimal.Decimal] {
	v, ok := dig(rec, path...)
	if !ok || v == nil {
		return domain.Absent[decimal.Decimal]()
	}
	switch n := v.(type) {
	case float64:
		return domain.Present(decimal.NewFromFloat(n))
	case int:
		return domain.Present(decimal.NewFromInt(int64(n)))
	case int64:
		return domain.Present(decimal.NewFromInt(n))
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return domain.Malformed[decimal.Decimal](v)
		}
		return domain.Present(d)
	case string:
		if strings.TrimSpace(n) == "" {
			return domain.Absent[decimal.Decimal]()
		}
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return domain.Malformed[decimal.Decimal](v)
		}
		return domain.Present(d)
	default:
		return domain.Malformed[decimal.Decimal](v)
	}
}

// intField reads an integer leaf. Fractional numbers are malformed, not
// truncated.
func intField(rec map[string]any, path ...string) domain.Field[int64] {
	v, ok := dig(rec, path...)
	if !ok || v == nil {
		return domain.Absent[int64]()
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return domain.Malformed[int64](v)
		}
		return domain.Present(int64(n))
	case int:
		return domain.Present(int64(n))
	case int64:
		return domain.Present(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return domain.Malformed[int64](v)
		}
		return domain.Present(i)
	case string:
		if strings.TrimSpace(n) == "" {
			return domain.Absent[int64]()
		}
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return domain.Malformed[int64](v)
		}
		return domain.Present(i)
	default:
		return domain.Malformed[int64](v)
	}
}

func boolField(rec map[string]any, path ...string) domain.Field[bool] {
	v, ok := dig(rec, path...)
	if !ok || v == nil {
		return domain.Absent[bool]()
	}
	switch b := v.(type) {
	case bool:
		return domain.Present(b)
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "":
			return domain.Absent[bool]()
		case "true", "yes":
			return domain.Present(true)
		case "false", "no":
			return domain.Present(false)
		default:
			return domain.Malformed[bool](v)
		}
	default:
		return domain.Malformed[bool](v)
	}
}

var timeLayouts = []string{time.RFC3339, "2006-01-02"}

func timeField(rec map[string]any, path ...string) domain.Field[time.Time] {
	v, ok := dig(rec, path...)
	if !ok || v == nil {
		return domain.Absent[time.Time]()
	}
	s, ok := v.(string)
	if !ok {
		return domain.Malformed[time.Time](v)
	}
	if strings.TrimSpace(s) == "" {
		return domain.Absent[time.Time]()
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.Present(t.UTC())
		}
	}
	return domain.Malformed[time.Time](v)
}

// objects extracts an array of nested objects under key. Entries that are not
// objects are skipped; a missing or non-array value yields an empty slice.
func objects(rec map[string]any, path ...string) []map[string]any {
	v, ok := dig(rec, path...)
	if !ok || v == nil {
		return nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, entry := range arr {
		if m, ok := entry.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

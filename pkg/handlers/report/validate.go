package report

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrInvalidClientID = errors.New("invalid client identifier")

const maxClientIDLength = 64

// stringifiedMarkers are identifiers that are really serialization accidents
// from upstream callers, most famously an object coerced to a string. They
// are malformed requests, not unusual-but-valid IDs.
var stringifiedMarkers = map[string]struct{}{
	"[object Object]": {},
	"undefined":       {},
	"null":            {},
}

// ValidateClientID rejects malformed identifiers before any aggregation
// starts. Normalization never repairs a broken request.
func ValidateClientID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidClientID)
	}
	if len(id) > maxClientIDLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidClientID, maxClientIDLength)
	}
	if _, marker := stringifiedMarkers[id]; marker {
		return fmt.Errorf("%w: stringified-object marker %q", ErrInvalidClientID, id)
	}
	if strings.ContainsFunc(id, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsControl(r)
	}) {
		return fmt.Errorf("%w: contains whitespace or control characters", ErrInvalidClientID)
	}
	return nil
}

// Package sources defines the seam between the report engine and the
// upstream per-domain stores. Each Source talks to exactly one store and
// translates its native failures into a typed SourceError; nothing beyond
// that boundary ever sees a store-specific error.
package sources

import (
	"context"
	"errors"

	"github.com/advisordesk/report-engine/pkg/models/domain"
)

// Source is one upstream data source. Fetch is a read with no side effects
// and is safe to retry; an empty slice means the client has no data in this
// domain, which is different from an error.
type Source interface {
	ID() domain.SourceID
	Fetch(ctx context.Context, clientID string) ([]domain.RawRecord, error)
}

// Error is a source failure carried as data. Implementations return it from
// Fetch; the aggregator records it on the SourceResult.
type Error struct {
	Kind   domain.ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

// Classify converts any Fetch error into a SourceError, mapping context
// deadline expiry to the timeout kind.
func Classify(err error) domain.SourceError {
	var srcErr *Error
	if errors.As(err, &srcErr) {
		return domain.SourceError{Kind: srcErr.Kind, Detail: srcErr.Detail}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.SourceError{Kind: domain.ErrorKindTimeout, Detail: err.Error()}
	}
	return domain.SourceError{Kind: domain.ErrorKindUnknown, Detail: err.Error()}
}

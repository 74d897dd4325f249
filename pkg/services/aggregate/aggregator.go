// Package aggregate fans out to every configured source and settles them all
// before anything downstream runs. One source failing or timing out never
// aborts collection of the others.
package aggregate

import (
	"context"
	"fmt"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/sources"
	"github.com/rs/zerolog"
)

const DefaultSourceTimeout = 10 * time.Second

type Aggregator struct {
	registry sources.Registry
	timeout  time.Duration
}

func NewAggregator(registry sources.Registry, timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultSourceTimeout
	}
	return &Aggregator{
		registry: registry,
		timeout:  timeout,
	}
}

// Aggregate dispatches all sources concurrently, each under its own timeout,
// and returns only after every one has reached a terminal state. The bundle
// manifest is always complete: every registered source has an entry, and an
// ok entry with an empty payload means "client has no data here", which must
// not be conflated with a failure.
func (a *Aggregator) Aggregate(ctx context.Context, clientID string) domain.RawBundle {
	logger := zerolog.Ctx(ctx)
	all := a.registry.All()

	results := make(chan domain.SourceResult, len(all))
	for _, src := range all {
		go func(src sources.Source) {
			results <- a.fetchOne(ctx, src, clientID)
		}(src)
	}

	bundle := domain.RawBundle{
		ClientID: clientID,
		Results:  make(map[domain.SourceID]domain.SourceResult, len(all)),
	}
	for range all {
		res := <-results
		bundle.Results[res.SourceID] = res
		if !res.OK() {
			logger.Warn().
				Str("source", string(res.SourceID)).
				Str("status", string(res.Status)).
				Str("error", res.Err.Error()).
				Msg("source did not settle cleanly")
		}
	}

	return bundle
}

func (a *Aggregator) fetchOne(ctx context.Context, src sources.Source, clientID string) (result domain.SourceResult) {
	fetchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	result = domain.SourceResult{
		SourceID:  src.ID(),
		FetchedAt: time.Now().UTC(),
	}

	// A source must not throw past its boundary, but a buggy adapter still
	// settles as failed instead of taking the whole request down.
	defer func() {
		if r := recover(); r != nil {
			result.Status = domain.SourceStatusFailed
			result.Payload = nil
			result.Err = &domain.SourceError{
				Kind:   domain.ErrorKindUnknown,
				Detail: fmt.Sprintf("source panicked: %v", r),
			}
		}
	}()

	payload, err := src.Fetch(fetchCtx, clientID)
	if err != nil {
		srcErr := sources.Classify(err)
		result.Err = &srcErr
		if srcErr.Kind == domain.ErrorKindTimeout {
			result.Status = domain.SourceStatusTimeout
		} else {
			result.Status = domain.SourceStatusFailed
		}
		return result
	}

	result.Status = domain.SourceStatusOK
	result.Payload = payload
	return result
}

// Package session owns the report lifecycle: one session per report request,
// moving Requested -> Aggregating -> Normalizing -> Ready. A Ready session is
// frozen for its lifetime; a fresh report needs a new aggregation pass.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/advisordesk/report-engine/pkg/services/aggregate"
	"github.com/advisordesk/report-engine/pkg/services/metrics"
	"github.com/advisordesk/report-engine/pkg/services/normalize"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// ErrIdentityUnavailable means the mandatory identity section could not be
// produced, so no report exists at all. Every other gap degrades to a
// Pending section instead.
var ErrIdentityUnavailable = errors.New("identity section unavailable: report cannot be produced")

type Status string

const (
	StatusRequested   Status = "requested"
	StatusAggregating Status = "aggregating"
	StatusNormalizing Status = "normalizing"
	StatusReady       Status = "ready"
)

// Session is one fully-built report. Model and Metrics are write-once; after
// Ready nothing mutates them, so both projections can read concurrently.
type Session struct {
	ID             uuid.UUID
	ClientID       string
	Status         Status
	Model          *domain.ClientReportModel
	Metrics        domain.DerivedMetrics
	RequestedAt    time.Time
	ReadyAt        time.Time
	ProcessingTime time.Duration
}

const DefaultCacheTTL = 5 * time.Minute

type Manager struct {
	aggregator *aggregate.Aggregator
	calculator *metrics.Calculator
	ttl        time.Duration

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]*Session
}

func NewManager(aggregator *aggregate.Aggregator, calculator *metrics.Calculator, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Manager{
		aggregator: aggregator,
		calculator: calculator,
		ttl:        ttl,
		cache:      make(map[string]*Session),
	}
}

// GetReport returns the cached Ready session for the client or builds a new
// one. Concurrent requests for the same client share a single aggregation
// pass; refresh bypasses the cache and produces a fresh session.
func (m *Manager) GetReport(ctx context.Context, clientID string, refresh bool) (*Session, error) {
	if !refresh {
		if sess := m.cached(clientID); sess != nil {
			return sess, nil
		}
	} else {
		m.evict(clientID)
	}

	v, err, _ := m.group.Do(clientID, func() (any, error) {
		// The build must not die with the first caller; later callers in the
		// same flight still need the result.
		return m.build(context.WithoutCancel(ctx), clientID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (m *Manager) build(ctx context.Context, clientID string) (*Session, error) {
	logger := zerolog.Ctx(ctx)

	sess := &Session{
		ID:          uuid.New(),
		ClientID:    clientID,
		Status:      StatusRequested,
		RequestedAt: time.Now(),
	}

	sess.Status = StatusAggregating
	bundle := m.aggregator.Aggregate(ctx, clientID)

	sess.Status = StatusNormalizing
	model := normalize.Normalize(bundle)
	// The bundle is owned by this build and dropped here; the model holds
	// copies only.

	if !model.SectionPresent(domain.SectionIdentity) {
		logger.Error().
			Str("client_id", clientID).
			Str("reason", model.Unavailable[domain.SectionIdentity]).
			Msg("mandatory identity section unavailable")
		return nil, ErrIdentityUnavailable
	}

	sess.Model = model
	sess.Metrics = m.calculator.Compute(model)
	sess.Status = StatusReady
	sess.ReadyAt = time.Now()
	sess.ProcessingTime = sess.ReadyAt.Sub(sess.RequestedAt)

	m.mu.Lock()
	m.cache[clientID] = sess
	m.mu.Unlock()

	logger.Info().
		Str("client_id", clientID).
		Str("session_id", sess.ID.String()).
		Dur("processing_time", sess.ProcessingTime).
		Str("completeness", sess.Metrics.Completeness.ScorePct.StringFixed(2)).
		Msg("report session ready")

	return sess, nil
}

func (m *Manager) cached(clientID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.cache[clientID]
	if !ok {
		return nil
	}
	if time.Since(sess.ReadyAt) > m.ttl {
		delete(m.cache, clientID)
		return nil
	}
	return sess
}

func (m *Manager) evict(clientID string) {
	m.mu.Lock()
	delete(m.cache, clientID)
	m.mu.Unlock()
}

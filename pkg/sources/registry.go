package sources

import (
	"fmt"
	"sync"

	"github.com/advisordesk/report-engine/pkg/models/domain"
)

// Registry holds the configured sources the aggregator fans out to.
type Registry interface {
	// Register adds a source; registering the same source ID twice is an error.
	Register(src Source) error
	// Get returns the source for the given ID.
	Get(id domain.SourceID) (Source, bool)
	// All returns every registered source.
	All() []Source
}

type registry struct {
	mu      sync.RWMutex
	sources map[domain.SourceID]Source
}

func NewRegistry() Registry {
	return &registry{
		sources: make(map[domain.SourceID]Source),
	}
}

func (r *registry) Register(src Source) error {
	if src == nil {
		return fmt.Errorf("source cannot be nil")
	}
	if src.ID() == "" {
		return fmt.Errorf("source ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sources[src.ID()]; exists {
		return fmt.Errorf("source %q is already registered", src.ID())
	}

	r.sources[src.ID()] = src
	return nil
}

func (r *registry) Get(id domain.SourceID) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	src, ok := r.sources[id]
	return src, ok
}

func (r *registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]Source, 0, len(r.sources))
	for _, id := range domain.ConfiguredSources() {
		if src, ok := r.sources[id]; ok {
			all = append(all, src)
		}
	}
	return all
}

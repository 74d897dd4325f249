package sources

import (
	"context"
	"testing"

	"github.com/advisordesk/report-engine/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	id domain.SourceID
}

func (f *fakeSource) ID() domain.SourceID { return f.id }

func (f *fakeSource) Fetch(context.Context, string) ([]domain.RawRecord, error) {
	return nil, nil
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(&fakeSource{id: domain.SourceProfile}))

	src, ok := registry.Get(domain.SourceProfile)
	require.True(t, ok)
	assert.Equal(t, domain.SourceProfile, src.ID())

	_, ok = registry.Get(domain.SourcePlans)
	assert.False(t, ok)
}

func TestRegistry_RejectsDuplicates(t *testing.T) {
	registry := NewRegistry()

	require.NoError(t, registry.Register(&fakeSource{id: domain.SourceProfile}))
	err := registry.Register(&fakeSource{id: domain.SourceProfile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RejectsNilAndEmpty(t *testing.T) {
	registry := NewRegistry()

	assert.Error(t, registry.Register(nil))
	assert.Error(t, registry.Register(&fakeSource{id: ""}))
}

func TestRegistry_AllFollowsConfiguredOrder(t *testing.T) {
	registry := NewRegistry()

	// Register in scrambled order; All must come back in fan-out order.
	for i := len(domain.ConfiguredSources()) - 1; i >= 0; i-- {
		require.NoError(t, registry.Register(&fakeSource{id: domain.ConfiguredSources()[i]}))
	}

	all := registry.All()
	require.Len(t, all, len(domain.ConfiguredSources()))
	for i, src := range all {
		assert.Equal(t, domain.ConfiguredSources()[i], src.ID())
	}
}

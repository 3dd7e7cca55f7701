package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
)

// stubManifold returns a fixed run ID so tests can tell services apart.
type stubManifold struct {
	runID string
}

func (s *stubManifold) Estimate(_ context.Context, _ []domain.CentroidID, k int) (*domain.ManifoldResult, error) {
	return &domain.ManifoldResult{RunID: s.runID, K: k}, nil
}

func (s *stubManifold) EstimateAll(_ context.Context, k int) (*domain.ManifoldResult, error) {
	return &domain.ManifoldResult{RunID: s.runID, K: k}, nil
}

func (s *stubManifold) Summarize(_ *domain.ManifoldResult) domain.Summary {
	return domain.Summary{}
}

func TestReloadableManifold_ForwardsToCurrent(t *testing.T) {
	m := newReloadableManifold(&stubManifold{runID: "first"})

	result, err := m.Estimate(context.Background(), []domain.CentroidID{"a", "b"}, 2)
	require.NoError(t, err)
	assert.Equal(t, "first", result.RunID)
	assert.Equal(t, 2, result.K)

	m.swap(&stubManifold{runID: "second"})

	result, err = m.EstimateAll(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "second", result.RunID)
}

func TestOnConfigReload_RebuildsFromFactory(t *testing.T) {
	m := newReloadableManifold(&stubManifold{runID: "startup"})

	var requested []int
	factory := func(concurrency int) driving.ManifoldService {
		requested = append(requested, concurrency)
		return &stubManifold{runID: "reloaded"}
	}

	onConfigReload(m, factory)()

	assert.Equal(t, []int{0}, requested)
	result, err := m.Estimate(context.Background(), []domain.CentroidID{"a", "b"}, 1)
	require.NoError(t, err)
	assert.Equal(t, "reloaded", result.RunID)
}

func TestOnConfigReload_NoFactoryKeepsService(t *testing.T) {
	m := newReloadableManifold(&stubManifold{runID: "startup"})

	onConfigReload(m, nil)()

	result, err := m.EstimateAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "startup", result.RunID)
}

func TestOnConfigReload_RealServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	m := newReloadableManifold(manifoldService)
	onConfigReload(m, manifoldFactory)()

	result, err := m.Estimate(context.Background(), []domain.CentroidID{"a", "b", "c"}, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Summarize(result).Pairs)
}

package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geodist/internal/adapters/driven/oracle/vector"
	"github.com/custodia-labs/geodist/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/services"
)

// newTestPorts wires real services over an in-memory store holding a chain
// a - b - c, where a and c are orthogonal.
func newTestPorts(t *testing.T) *Ports {
	t.Helper()
	ctx := context.Background()

	store := memory.NewCentroidStore()
	centroids := services.NewCentroidService(store)
	_, err := centroids.Import(ctx, []domain.Centroid{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{1, 1}},
		{ID: "c", Vector: []float32{0, 1}},
	})
	require.NoError(t, err)

	config := memory.NewConfigStore()
	require.NoError(t, config.Set(services.KeyEstimatorK, 1))

	oracle := vector.NewOracle(store)
	return &Ports{
		Manifold: services.NewManifoldService(oracle, oracle, nil, 2),
		Centroid: centroids,
		Settings: services.NewSettingsService(config),
	}
}

package driving

import (
	"context"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// ManifoldService estimates manifold-regularized distances between centroids.
type ManifoldService interface {
	// Estimate returns the geodesic distance between every pair of ids
	// over the k-nearest-neighbour graph. k must be positive.
	Estimate(ctx context.Context, ids []domain.CentroidID, k int) (*domain.ManifoldResult, error)

	// EstimateAll runs Estimate over every centroid the oracle knows.
	EstimateAll(ctx context.Context, k int) (*domain.ManifoldResult, error)

	// Summarize describes the distance distribution of a result.
	Summarize(result *domain.ManifoldResult) domain.Summary
}

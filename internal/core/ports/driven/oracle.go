package driven

import (
	"context"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// SimilarityOracle scores two centroids against each other.
type SimilarityOracle interface {
	// Similarity returns the similarity of a and b in [0, 1].
	// Returns *domain.UnknownCentroidError if either centroid does not exist.
	Similarity(ctx context.Context, a, b domain.CentroidID) (float64, error)
}

// CentroidLister enumerates the centroids an oracle knows about.
type CentroidLister interface {
	// ListCentroids returns every centroid ID.
	ListCentroids(ctx context.Context) ([]domain.CentroidID, error)
}

package driving

import (
	"context"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// CentroidService imports and lists locally stored centroid vectors.
type CentroidService interface {
	// Import stores the given centroids, replacing any with the same ID.
	Import(ctx context.Context, centroids []domain.Centroid) (int, error)

	// List returns the IDs of every stored centroid.
	List(ctx context.Context) ([]domain.CentroidID, error)

	// Get retrieves one centroid.
	Get(ctx context.Context, id domain.CentroidID) (*domain.Centroid, error)

	// Delete removes one centroid.
	Delete(ctx context.Context, id domain.CentroidID) error
}

package driven

import (
	"context"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// CentroidStore persists centroid vectors for the local similarity oracle.
type CentroidStore interface {
	CentroidLister

	// SaveCentroid stores or replaces a centroid.
	SaveCentroid(ctx context.Context, centroid domain.Centroid) error

	// GetCentroid retrieves a centroid by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetCentroid(ctx context.Context, id domain.CentroidID) (*domain.Centroid, error)

	// DeleteCentroid removes a centroid.
	// Returns domain.ErrNotFound if it does not exist.
	DeleteCentroid(ctx context.Context, id domain.CentroidID) error
}

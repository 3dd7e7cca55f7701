package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/logger"
)

// Ensure CentroidService implements the interface.
var _ driving.CentroidService = (*CentroidService)(nil)

// CentroidService manages locally stored centroid vectors.
type CentroidService struct {
	store driven.CentroidStore
}

// NewCentroidService creates a new centroid service.
func NewCentroidService(store driven.CentroidStore) *CentroidService {
	return &CentroidService{store: store}
}

// Import validates and stores centroids. Nothing is written if any centroid is invalid.
func (s *CentroidService) Import(ctx context.Context, centroids []domain.Centroid) (int, error) {
	for i := range centroids {
		if err := validateCentroid(&centroids[i]); err != nil {
			return 0, err
		}
	}

	now := time.Now().UTC()
	for i := range centroids {
		c := centroids[i]
		c.UpdatedAt = now
		if err := s.store.SaveCentroid(ctx, c); err != nil {
			return i, fmt.Errorf("saving centroid %s: %w", c.ID, err)
		}
	}

	logger.Debug("Imported %d centroids", len(centroids))
	return len(centroids), nil
}

// List returns the IDs of every stored centroid.
func (s *CentroidService) List(ctx context.Context) ([]domain.CentroidID, error) {
	return s.store.ListCentroids(ctx)
}

// Get retrieves one centroid.
func (s *CentroidService) Get(ctx context.Context, id domain.CentroidID) (*domain.Centroid, error) {
	return s.store.GetCentroid(ctx, id)
}

// Delete removes one centroid.
func (s *CentroidService) Delete(ctx context.Context, id domain.CentroidID) error {
	return s.store.DeleteCentroid(ctx, id)
}

// validateCentroid requires an ID and a non-empty vector of finite, non-negative weights.
func validateCentroid(c *domain.Centroid) error {
	if c.ID == "" {
		return fmt.Errorf("%w: centroid id is required", domain.ErrInvalidInput)
	}
	if len(c.Vector) == 0 {
		return fmt.Errorf("%w: centroid %s has no vector", domain.ErrInvalidInput, c.ID)
	}
	for _, v := range c.Vector {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return fmt.Errorf("%w: centroid %s has weight %v", domain.ErrInvalidInput, c.ID, v)
		}
	}
	return nil
}

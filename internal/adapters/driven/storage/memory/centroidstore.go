package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
)

// Ensure CentroidStore implements the interface.
var _ driven.CentroidStore = (*CentroidStore)(nil)

// CentroidStore is an in-memory implementation of driven.CentroidStore.
type CentroidStore struct {
	mu        sync.RWMutex
	centroids map[domain.CentroidID]domain.Centroid
}

// NewCentroidStore creates a new in-memory centroid store.
func NewCentroidStore() *CentroidStore {
	return &CentroidStore{
		centroids: make(map[domain.CentroidID]domain.Centroid),
	}
}

// SaveCentroid stores or replaces a centroid. The vector is copied.
func (s *CentroidStore) SaveCentroid(_ context.Context, c domain.Centroid) error {
	c.Vector = append([]float32(nil), c.Vector...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.centroids[c.ID] = c
	return nil
}

// GetCentroid retrieves a centroid by ID.
func (s *CentroidStore) GetCentroid(_ context.Context, id domain.CentroidID) (*domain.Centroid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.centroids[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c.Vector = append([]float32(nil), c.Vector...)
	return &c, nil
}

// DeleteCentroid removes a centroid.
func (s *CentroidStore) DeleteCentroid(_ context.Context, id domain.CentroidID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.centroids[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.centroids, id)
	return nil
}

// ListCentroids returns every centroid ID in ascending order.
func (s *CentroidStore) ListCentroids(_ context.Context) ([]domain.CentroidID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]domain.CentroidID, 0, len(s.centroids))
	for id := range s.centroids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

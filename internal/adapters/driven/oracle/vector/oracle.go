// Package vector provides a similarity oracle that scores stored centroid
// vectors locally with cosine similarity.
package vector

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
)

// Ensure Oracle implements the interfaces.
var (
	_ driven.SimilarityOracle = (*Oracle)(nil)
	_ driven.CentroidLister   = (*Oracle)(nil)
)

// Oracle computes cosine similarity between centroids held in a CentroidStore.
type Oracle struct {
	store driven.CentroidStore
}

// NewOracle creates a local oracle over the given store.
func NewOracle(store driven.CentroidStore) *Oracle {
	return &Oracle{store: store}
}

// Similarity returns the cosine similarity of a and b, clamped to [0, 1].
// A zero vector has similarity 0 with everything.
func (o *Oracle) Similarity(ctx context.Context, a, b domain.CentroidID) (float64, error) {
	va, err := o.load(ctx, a)
	if err != nil {
		return 0, err
	}
	vb, err := o.load(ctx, b)
	if err != nil {
		return 0, err
	}
	return Cosine(va, vb)
}

// ListCentroids returns every stored centroid ID.
func (o *Oracle) ListCentroids(ctx context.Context) ([]domain.CentroidID, error) {
	return o.store.ListCentroids(ctx)
}

func (o *Oracle) load(ctx context.Context, id domain.CentroidID) ([]float64, error) {
	c, err := o.store.GetCentroid(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewUnknownCentroidError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("load centroid %s: %w", id, err)
	}

	v := make([]float64, len(c.Vector))
	for i, x := range c.Vector {
		v[i] = float64(x)
	}
	return v, nil
}

// Cosine returns the cosine similarity of two vectors, clamped to [0, 1].
// Vectors of different lengths are compared over the shorter length with the
// remainder treated as zeros.
func Cosine(a, b []float64) (float64, error) {
	n := min(len(a), len(b))

	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := floats.Dot(a[:n], b[:n]) / (normA * normB)
	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("%w: cosine is %v", domain.ErrInvalidSimilarity, sim)
	}
	return max(0, min(1, sim)), nil
}

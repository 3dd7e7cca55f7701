package domain

import (
	"fmt"
	"math"
)

// DistanceMatrix holds the distance between every pair of a centroid set.
// Distances are stored once per unordered pair, so the matrix is symmetric
// and its diagonal is zero by construction. A DistanceMatrix is immutable.
type DistanceMatrix struct {
	ids   []CentroidID
	index map[CentroidID]int
	dist  []float64
}

// NewDistanceMatrix builds a matrix over ids from per-pair distances.
// ids must be distinct and ascending (see NormalizeCentroidIDs). Every
// unordered pair must be present in distances with a finite, non-negative value.
func NewDistanceMatrix(ids []CentroidID, distances map[Pair]float64) (*DistanceMatrix, error) {
	index, err := indexIDs(ids)
	if err != nil {
		return nil, err
	}

	n := len(ids)
	m := &DistanceMatrix{
		ids:   append([]CentroidID(nil), ids...),
		index: index,
		dist:  make([]float64, pairCount(n)),
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := Pair{A: ids[i], B: ids[j]}
			d, ok := distances[p]
			if !ok {
				return nil, fmt.Errorf("%w: missing distance for %s", ErrInvalidInput, p)
			}
			if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
				return nil, fmt.Errorf("%w: distance %v for %s", ErrInvalidInput, d, p)
			}
			m.dist[pairOffset(i, j, n)] = d
		}
	}

	return m, nil
}

// IDs returns a copy of the centroid IDs in ascending order.
func (m *DistanceMatrix) IDs() []CentroidID {
	return append([]CentroidID(nil), m.ids...)
}

// Len returns the number of centroids.
func (m *DistanceMatrix) Len() int {
	return len(m.ids)
}

// Index returns the position of id, if present.
func (m *DistanceMatrix) Index(id CentroidID) (int, bool) {
	i, ok := m.index[id]
	return i, ok
}

// ID returns the centroid at position i.
func (m *DistanceMatrix) ID(i int) CentroidID {
	return m.ids[i]
}

// At returns the distance between positions i and j.
func (m *DistanceMatrix) At(i, j int) float64 {
	if i == j {
		return 0
	}
	if j < i {
		i, j = j, i
	}
	return m.dist[pairOffset(i, j, len(m.ids))]
}

// Distance returns the distance between a and b.
// The boolean is false if either centroid is not in the matrix.
func (m *DistanceMatrix) Distance(a, b CentroidID) (float64, bool) {
	i, ok := m.index[a]
	if !ok {
		return 0, false
	}
	j, ok := m.index[b]
	if !ok {
		return 0, false
	}
	return m.At(i, j), true
}

// indexIDs maps each ID to its position, checking order and uniqueness.
func indexIDs(ids []CentroidID) (map[CentroidID]int, error) {
	index := make(map[CentroidID]int, len(ids))
	for i, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty centroid id", ErrInvalidInput)
		}
		if i > 0 && ids[i-1] >= id {
			return nil, fmt.Errorf("%w: centroid ids must be distinct and sorted", ErrInvalidInput)
		}
		index[id] = i
	}
	return index, nil
}

package domain

import (
	"fmt"
	"sort"
	"time"
)

// CentroidID identifies a centroid. It is opaque to the estimator.
type CentroidID string

// String returns the string representation.
func (id CentroidID) String() string {
	return string(id)
}

// Pair is an unordered pair of distinct centroids.
// A always sorts before B, so {a,b} and {b,a} produce the same key.
type Pair struct {
	A CentroidID
	B CentroidID
}

// NewPair creates the normalized pair for a and b.
func NewPair(a, b CentroidID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

// String returns the pair formatted as {a,b}.
func (p Pair) String() string {
	return fmt.Sprintf("{%s,%s}", p.A, p.B)
}

// NormalizeCentroidIDs returns the distinct IDs in ascending order.
// An empty ID is rejected with ErrInvalidInput.
func NormalizeCentroidIDs(ids []CentroidID) ([]CentroidID, error) {
	seen := make(map[CentroidID]struct{}, len(ids))
	out := make([]CentroidID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			return nil, fmt.Errorf("%w: empty centroid id", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Centroid is a stored centroid vector, used by the local similarity oracle.
type Centroid struct {
	// ID is the centroid identifier.
	ID CentroidID `json:"id"`

	// Vector is the non-negative term weight vector.
	Vector []float32 `json:"vector"`

	// UpdatedAt is when the vector was last written.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// pairOffset returns the packed upper-triangle index of (i, j) with i < j.
func pairOffset(i, j, n int) int {
	return i*n - i*(i+1)/2 + (j - i - 1)
}

// pairCount returns the number of unordered pairs among n items.
func pairCount(n int) int {
	if n < 2 {
		return 0
	}
	return n * (n - 1) / 2
}

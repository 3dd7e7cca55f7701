package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Geodesic is the manifold distance between two centroids.
// Pairs with no path through the neighbour graph are Unreachable.
type Geodesic struct {
	Distance  float64
	Reachable bool
}

// Unreachable marks a pair that no sequence of graph edges connects.
var Unreachable = Geodesic{Distance: math.Inf(1)}

// Reached returns a reachable geodesic of length d.
func Reached(d float64) Geodesic {
	return Geodesic{Distance: d, Reachable: true}
}

// String returns the distance, or "unreachable".
func (g Geodesic) String() string {
	if !g.Reachable {
		return "unreachable"
	}
	return strconv.FormatFloat(g.Distance, 'f', 6, 64)
}

// MarshalJSON encodes an unreachable geodesic as null.
func (g Geodesic) MarshalJSON() ([]byte, error) {
	if !g.Reachable {
		return []byte("null"), nil
	}
	return json.Marshal(g.Distance)
}

// UnmarshalJSON decodes a distance or null.
func (g *Geodesic) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = Unreachable
		return nil
	}
	var d float64
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*g = Reached(d)
	return nil
}

// PairGeodesic is one row of a GeodesicTable.
type PairGeodesic struct {
	A        CentroidID `json:"a"`
	B        CentroidID `json:"b"`
	Geodesic Geodesic   `json:"distance"`
	// Direct is true when A and B share a neighbour graph edge.
	Direct bool `json:"direct"`
}

// GeodesicTable holds the geodesic distance of every pair of a centroid set.
// Each unordered pair is stored once, so lookups in either order agree.
type GeodesicTable struct {
	ids    []CentroidID
	index  map[CentroidID]int
	values []Geodesic
	direct []bool
}

// Get returns the geodesic between a and b.
// The boolean is false if either centroid is not in the table.
func (t *GeodesicTable) Get(a, b CentroidID) (Geodesic, bool) {
	i, ok := t.index[a]
	if !ok {
		return Geodesic{}, false
	}
	j, ok := t.index[b]
	if !ok {
		return Geodesic{}, false
	}
	if i == j {
		return Reached(0), true
	}
	if j < i {
		i, j = j, i
	}
	return t.values[pairOffset(i, j, len(t.ids))], true
}

// IsDirect reports whether a and b were joined by a graph edge.
func (t *GeodesicTable) IsDirect(a, b CentroidID) bool {
	i, ok := t.index[a]
	if !ok {
		return false
	}
	j, ok := t.index[b]
	if !ok || i == j {
		return false
	}
	if j < i {
		i, j = j, i
	}
	return t.direct[pairOffset(i, j, len(t.ids))]
}

// IDs returns a copy of the centroid IDs in ascending order.
func (t *GeodesicTable) IDs() []CentroidID {
	return append([]CentroidID(nil), t.ids...)
}

// Len returns the number of pairs in the table.
func (t *GeodesicTable) Len() int {
	return len(t.values)
}

// Entries returns every pair, ordered by A then B.
func (t *GeodesicTable) Entries() []PairGeodesic {
	n := len(t.ids)
	out := make([]PairGeodesic, 0, len(t.values))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			off := pairOffset(i, j, n)
			out = append(out, PairGeodesic{
				A:        t.ids[i],
				B:        t.ids[j],
				Geodesic: t.values[off],
				Direct:   t.direct[off],
			})
		}
	}
	return out
}

// UnreachableCount returns the number of unreachable pairs.
func (t *GeodesicTable) UnreachableCount() int {
	count := 0
	for _, g := range t.values {
		if !g.Reachable {
			count++
		}
	}
	return count
}

// GeodesicTableBuilder fills a GeodesicTable one unordered pair at a time.
type GeodesicTableBuilder struct {
	table *GeodesicTable
	set   []bool
}

// NewGeodesicTableBuilder starts a table over ids, which must be distinct and ascending.
func NewGeodesicTableBuilder(ids []CentroidID) (*GeodesicTableBuilder, error) {
	index, err := indexIDs(ids)
	if err != nil {
		return nil, err
	}
	count := pairCount(len(ids))
	return &GeodesicTableBuilder{
		table: &GeodesicTable{
			ids:    append([]CentroidID(nil), ids...),
			index:  index,
			values: make([]Geodesic, count),
			direct: make([]bool, count),
		},
		set: make([]bool, count),
	}, nil
}

// Set records the geodesic for positions i < j.
func (b *GeodesicTableBuilder) Set(i, j int, g Geodesic, direct bool) {
	off := pairOffset(i, j, len(b.table.ids))
	b.table.values[off] = g
	b.table.direct[off] = direct
	b.set[off] = true
}

// Build returns the table. Every pair must have been set.
func (b *GeodesicTableBuilder) Build() (*GeodesicTable, error) {
	for off, ok := range b.set {
		if !ok {
			return nil, fmt.Errorf("%w: geodesic table missing pair %d", ErrInvalidInput, off)
		}
	}
	t := b.table
	b.table = nil
	return t, nil
}

// ManifoldResult is the outcome of one estimation run.
type ManifoldResult struct {
	// RunID identifies the run in logs and tool output.
	RunID string

	// K is the neighbourhood size.
	K int

	// Matrix is the dense distance matrix the graph was built from.
	Matrix *DistanceMatrix

	// Graph is the symmetrized k-nearest-neighbour graph.
	Graph *KNNGraph

	// Table holds the geodesic distance of every pair.
	Table *GeodesicTable

	// OracleCalls is the number of similarity lookups issued.
	OracleCalls int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Summary describes the distribution of a run's geodesic distances.
type Summary struct {
	Centroids    int     `json:"centroids"`
	Pairs        int     `json:"pairs"`
	Edges        int     `json:"edges"`
	Direct       int     `json:"direct"`
	Routed       int     `json:"routed"`
	Unreachable  int     `json:"unreachable"`
	MeanDistance float64 `json:"mean_distance"`
	MaxDistance  float64 `json:"max_distance"`
	// MeanStretch is the mean ratio of geodesic to direct distance over routed pairs.
	MeanStretch float64 `json:"mean_stretch"`
}

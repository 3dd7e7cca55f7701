package domain

import "fmt"

// Edge is a weighted edge to the node at position To.
type Edge struct {
	To     int
	Weight float64
}

// Neighbor is a centroid adjacent to another in a KNNGraph.
type Neighbor struct {
	ID       CentroidID `json:"id"`
	Distance float64    `json:"distance"`
}

// KNNGraph is the k-nearest-neighbour graph over a centroid set.
//
// Each node keeps two views: its own directed list of the min(k, n-1)
// nearest centroids, and the symmetrized adjacency that also contains
// every node which selected it. Shortest-path search walks the latter.
type KNNGraph struct {
	k         int
	ids       []CentroidID
	index     map[CentroidID]int
	nearest   [][]Edge
	adjacency [][]Edge
	linked    []map[int]struct{}
	edges     int
}

// NewKNNGraph assembles a graph from per-node directed and symmetrized edges.
// ids must be distinct and ascending. The adjacency must be symmetric with
// one consistent weight per edge.
func NewKNNGraph(k int, ids []CentroidID, nearest, adjacency [][]Edge) (*KNNGraph, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidNeighborhoodSize, k)
	}
	index, err := indexIDs(ids)
	if err != nil {
		return nil, err
	}
	n := len(ids)
	if len(nearest) != n || len(adjacency) != n {
		return nil, fmt.Errorf("%w: edge lists do not match %d centroids", ErrInvalidInput, n)
	}

	want := min(k, n-1)
	linked := make([]map[int]struct{}, n)
	weights := make([]map[int]float64, n)
	edges := 0
	for i := 0; i < n; i++ {
		if len(nearest[i]) != want {
			return nil, fmt.Errorf("%w: %s has %d nearest neighbours, want %d",
				ErrInvalidInput, ids[i], len(nearest[i]), want)
		}
		linked[i] = make(map[int]struct{}, len(adjacency[i]))
		weights[i] = make(map[int]float64, len(adjacency[i]))
		for _, e := range adjacency[i] {
			if e.To < 0 || e.To >= n || e.To == i {
				return nil, fmt.Errorf("%w: invalid edge %d->%d", ErrInvalidInput, i, e.To)
			}
			linked[i][e.To] = struct{}{}
			weights[i][e.To] = e.Weight
		}
		edges += len(adjacency[i])
	}

	for i := 0; i < n; i++ {
		for j, w := range weights[i] {
			back, ok := weights[j][i]
			if !ok || back != w {
				return nil, fmt.Errorf("%w: edge %s-%s is not symmetric", ErrInvalidInput, ids[i], ids[j])
			}
		}
	}

	return &KNNGraph{
		k:         k,
		ids:       append([]CentroidID(nil), ids...),
		index:     index,
		nearest:   nearest,
		adjacency: adjacency,
		linked:    linked,
		edges:     edges / 2,
	}, nil
}

// K returns the neighbourhood size the graph was built with.
func (g *KNNGraph) K() int {
	return g.k
}

// Len returns the number of nodes.
func (g *KNNGraph) Len() int {
	return len(g.ids)
}

// IDs returns a copy of the node IDs in ascending order.
func (g *KNNGraph) IDs() []CentroidID {
	return append([]CentroidID(nil), g.ids...)
}

// EdgeCount returns the number of undirected edges.
func (g *KNNGraph) EdgeCount() int {
	return g.edges
}

// Nearest returns the directed neighbour list of id, before symmetrization.
func (g *KNNGraph) Nearest(id CentroidID) []Neighbor {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.neighbors(g.nearest[i])
}

// Neighbors returns every node adjacent to id in the symmetrized graph.
func (g *KNNGraph) Neighbors(id CentroidID) []Neighbor {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.neighbors(g.adjacency[i])
}

// HasEdge reports whether a and b are adjacent in the symmetrized graph.
func (g *KNNGraph) HasEdge(a, b CentroidID) bool {
	i, ok := g.index[a]
	if !ok {
		return false
	}
	j, ok := g.index[b]
	if !ok {
		return false
	}
	return g.Linked(i, j)
}

// Linked reports whether positions i and j share an edge.
func (g *KNNGraph) Linked(i, j int) bool {
	_, ok := g.linked[i][j]
	return ok
}

// Adjacent returns the symmetrized edges of the node at position i.
// The returned slice is shared and must not be modified.
func (g *KNNGraph) Adjacent(i int) []Edge {
	return g.adjacency[i]
}

func (g *KNNGraph) neighbors(edges []Edge) []Neighbor {
	out := make([]Neighbor, len(edges))
	for i, e := range edges {
		out[i] = Neighbor{ID: g.ids[e.To], Distance: e.Weight}
	}
	return out
}

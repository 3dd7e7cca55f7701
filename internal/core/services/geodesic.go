package services

import (
	"container/heap"
	"context"
	"fmt"
	"math"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/logger"
)

// EstimateGeodesics computes the geodesic distance of every pair of ids over graph.
//
// Pairs joined by a graph edge take their distance straight from matrix.
// Every other pair is resolved by a single-source shortest-path search from
// its lower-ordered endpoint, run at most once per source. Pairs with no
// connecting path are recorded as domain.Unreachable.
//
// ids must be exactly the centroid set of matrix and graph.
func EstimateGeodesics(
	ctx context.Context,
	graph *domain.KNNGraph,
	matrix *domain.DistanceMatrix,
	ids []domain.CentroidID,
) (*domain.GeodesicTable, error) {
	set, err := domain.NormalizeCentroidIDs(ids)
	if err != nil {
		return nil, err
	}
	if err := sameCentroids(set, matrix.IDs(), graph.IDs()); err != nil {
		return nil, err
	}

	builder, err := domain.NewGeodesicTableBuilder(set)
	if err != nil {
		return nil, err
	}

	n := len(set)
	searches := 0
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var dist []float64
		for j := i + 1; j < n; j++ {
			if graph.Linked(i, j) {
				builder.Set(i, j, domain.Reached(matrix.At(i, j)), true)
				continue
			}

			if dist == nil {
				dist = shortestPaths(graph, i)
				searches++
			}
			if math.IsInf(dist[j], 1) {
				builder.Set(i, j, domain.Unreachable, false)
			} else {
				builder.Set(i, j, domain.Reached(dist[j]), false)
			}
		}
	}

	table, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("assembling geodesic table: %w", err)
	}

	logger.Debug("Geodesics: %d pairs, %d searches, %d unreachable",
		table.Len(), searches, table.UnreachableCount())
	return table, nil
}

// shortestPaths returns the distance from source to every node, +Inf when
// unreachable. Nodes move from unvisited to the frontier when first relaxed
// and are finalized when popped with their smallest tentative distance.
// The search ends once the frontier is exhausted.
func shortestPaths(graph *domain.KNNGraph, source int) []float64 {
	n := graph.Len()
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	finalized := make([]bool, n)

	dist[source] = 0
	f := &frontier{{node: source, dist: 0}}

	for f.Len() > 0 {
		item := heap.Pop(f).(frontierItem)
		if finalized[item.node] {
			continue
		}
		finalized[item.node] = true

		for _, e := range graph.Adjacent(item.node) {
			if finalized[e.To] {
				continue
			}
			if d := item.dist + e.Weight; d < dist[e.To] {
				dist[e.To] = d
				heap.Push(f, frontierItem{node: e.To, dist: d})
			}
		}
	}

	return dist
}

// frontierItem is a node with a tentative distance.
type frontierItem struct {
	node int
	dist float64
}

// frontier is a min-heap of tentative distances, ties broken by node position.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].node < f[j].node
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// sameCentroids checks that every view covers the same centroid set.
func sameCentroids(want []domain.CentroidID, views ...[]domain.CentroidID) error {
	for _, got := range views {
		if len(got) != len(want) {
			return fmt.Errorf("%w: centroid set has %d members, want %d", domain.ErrInvalidInput, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				return fmt.Errorf("%w: centroid %s not in graph", domain.ErrInvalidInput, want[i])
			}
		}
	}
	return nil
}

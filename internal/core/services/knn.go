package services

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/logger"
)

// BuildKNN sparsifies matrix into a k-nearest-neighbour graph.
//
// Each centroid keeps its min(k, n-1) closest others, ranked by ascending
// distance with ties broken by ID. The adjacency is then symmetrized by
// adding the reverse of every selected edge. k must be positive.
func BuildKNN(matrix *domain.DistanceMatrix, k int) (*domain.KNNGraph, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k=%d", domain.ErrInvalidNeighborhoodSize, k)
	}

	n := matrix.Len()
	keep := min(k, n-1)
	nearest := make([][]domain.Edge, n)
	linked := make([]map[int]struct{}, n)
	for i := range linked {
		linked[i] = make(map[int]struct{}, keep)
	}

	for i := 0; i < n; i++ {
		candidates := make([]domain.Edge, 0, n-1)
		for j := 0; j < n; j++ {
			if j != i {
				candidates = append(candidates, domain.Edge{To: j, Weight: matrix.At(i, j)})
			}
		}
		sortEdges(candidates)

		nearest[i] = candidates[:keep:keep]
		for _, e := range nearest[i] {
			linked[i][e.To] = struct{}{}
			linked[e.To][i] = struct{}{}
		}
	}

	adjacency := make([][]domain.Edge, n)
	for i := 0; i < n; i++ {
		edges := make([]domain.Edge, 0, len(linked[i]))
		for j := range linked[i] {
			edges = append(edges, domain.Edge{To: j, Weight: matrix.At(i, j)})
		}
		sortEdges(edges)
		adjacency[i] = edges
	}

	graph, err := domain.NewKNNGraph(k, matrix.IDs(), nearest, adjacency)
	if err != nil {
		return nil, fmt.Errorf("assembling knn graph: %w", err)
	}

	logger.Debug("KNN graph: k=%d, %d nodes, %d undirected edges", k, n, graph.EdgeCount())
	return graph, nil
}

// sortEdges orders edges by weight, then by target position.
// Positions follow ascending ID order, so ties resolve lexically by ID.
func sortEdges(edges []domain.Edge) {
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].Weight != edges[b].Weight {
			return edges[a].Weight < edges[b].Weight
		}
		return edges[a].To < edges[b].To
	})
}

package services

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// Summarize computes distribution statistics over a geodesic table.
// Unreachable pairs are counted but excluded from the distance statistics.
func Summarize(matrix *domain.DistanceMatrix, graph *domain.KNNGraph, table *domain.GeodesicTable) domain.Summary {
	if table == nil {
		return domain.Summary{}
	}

	summary := domain.Summary{
		Centroids: len(table.IDs()),
		Pairs:     table.Len(),
	}
	if graph != nil {
		summary.Edges = graph.EdgeCount()
	}

	var reachable, stretch []float64
	for _, e := range table.Entries() {
		switch {
		case !e.Geodesic.Reachable:
			summary.Unreachable++
			continue
		case e.Direct:
			summary.Direct++
		default:
			summary.Routed++
			if matrix != nil {
				if direct, ok := matrix.Distance(e.A, e.B); ok && direct > 0 {
					stretch = append(stretch, e.Geodesic.Distance/direct)
				}
			}
		}
		reachable = append(reachable, e.Geodesic.Distance)
	}

	if len(reachable) > 0 {
		summary.MeanDistance = stat.Mean(reachable, nil)
		summary.MaxDistance = floats.Max(reachable)
	}
	if len(stretch) > 0 {
		summary.MeanStretch = stat.Mean(stretch, nil)
	}
	return summary
}

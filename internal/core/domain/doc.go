// Package domain defines the core entities of the geodist estimator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CentroidID: An opaque centroid identifier
//   - Pair: An unordered pair of centroids
//   - DistanceMatrix: Dense pairwise distances derived from similarity
//   - KNNGraph: The sparsified, symmetrized neighbour graph
//   - GeodesicTable: Manifold-regularized distances for every pair
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

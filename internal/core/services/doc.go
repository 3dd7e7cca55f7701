// Package services implements the driving port interfaces.
// Services contain the estimator pipeline and orchestrate
// calls to driven ports (adapters).
//
// The pipeline runs in four stages:
//
//   - SimilarityMatrixBuilder: one oracle call per unordered pair
//   - ToDistance: similarity to distance
//   - BuildKNN: sparsify to a symmetrized k-nearest-neighbour graph
//   - EstimateGeodesics: shortest paths over the sparse graph
//
// Services are pure Go with no CGO dependencies.
package services

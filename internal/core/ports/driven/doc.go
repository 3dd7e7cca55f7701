// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SimilarityOracle: Pairwise centroid similarity. The only capability
//     the estimator consumes.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - CentroidLister: Enumerates every centroid. Without it, estimating over
//     all centroids is disabled.
//   - CentroidStore: Local centroid vectors backing the local oracle.
//   - MetricsRecorder: Pipeline counters and timings.
//   - ConfigWatcher: Change notification for the config file.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

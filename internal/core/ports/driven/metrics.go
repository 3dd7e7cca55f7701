package driven

import "time"

// MetricsRecorder receives pipeline measurements.
type MetricsRecorder interface {
	// OracleCall records one similarity lookup and whether it failed.
	OracleCall(failed bool)

	// EstimateCompleted records a finished run.
	EstimateCompleted(centroids, unreachable int, elapsed time.Duration)

	// EstimateFailed records a run that returned an error.
	EstimateFailed(reason string)
}

// Package prometheus records estimator metrics with the Prometheus client.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/custodia-labs/geodist/internal/core/ports/driven"
)

// Ensure Recorder implements the interface.
var _ driven.MetricsRecorder = (*Recorder)(nil)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "geodist"

// Recorder implements driven.MetricsRecorder on a private registry.
type Recorder struct {
	registry *prometheus.Registry

	oracleCalls  *prometheus.CounterVec
	estimates    *prometheus.CounterVec
	unreachable  prometheus.Counter
	centroids    prometheus.Histogram
	estimateTime prometheus.Histogram
}

// NewRecorder creates a recorder with its own registry.
// An empty namespace uses DefaultNamespace.
func NewRecorder(namespace string) *Recorder {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	oracleCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "oracle_calls_total",
			Help:      "Total number of similarity oracle calls",
		},
		[]string{"status"},
	)

	estimates := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimates_total",
			Help:      "Total number of estimate runs",
		},
		[]string{"status", "reason"},
	)

	unreachable := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unreachable_pairs_total",
			Help:      "Total number of centroid pairs with no path in the neighbour graph",
		},
	)

	centroids := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_centroids",
			Help:      "Number of centroids per estimate run",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 10),
		},
	)

	estimateTime := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "estimate_duration_seconds",
			Help:      "Estimate run duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(oracleCalls, estimates, unreachable, centroids, estimateTime)

	return &Recorder{
		registry:     registry,
		oracleCalls:  oracleCalls,
		estimates:    estimates,
		unreachable:  unreachable,
		centroids:    centroids,
		estimateTime: estimateTime,
	}
}

// OracleCall records one similarity lookup.
func (r *Recorder) OracleCall(failed bool) {
	status := "ok"
	if failed {
		status = "error"
	}
	r.oracleCalls.WithLabelValues(status).Inc()
}

// EstimateCompleted records a finished run.
func (r *Recorder) EstimateCompleted(centroids, unreachable int, elapsed time.Duration) {
	r.estimates.WithLabelValues("ok", "").Inc()
	r.unreachable.Add(float64(unreachable))
	r.centroids.Observe(float64(centroids))
	r.estimateTime.Observe(elapsed.Seconds())
}

// EstimateFailed records a failed run.
func (r *Recorder) EstimateFailed(reason string) {
	r.estimates.WithLabelValues("error", reason).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

package prometheus

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_OracleCall(t *testing.T) {
	r := NewRecorder("")

	r.OracleCall(false)
	r.OracleCall(false)
	r.OracleCall(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.oracleCalls.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.oracleCalls.WithLabelValues("error")))
}

func TestRecorder_Estimates(t *testing.T) {
	r := NewRecorder("test")

	r.EstimateCompleted(4, 2, 150*time.Millisecond)
	r.EstimateCompleted(3, 1, 50*time.Millisecond)
	r.EstimateFailed("unknown_centroid")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.estimates.WithLabelValues("ok", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.estimates.WithLabelValues("error", "unknown_centroid")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.unreachable))

	count, sum := histogram(t, r, "test_estimate_duration_seconds")
	assert.Equal(t, uint64(2), count)
	assert.InDelta(t, 0.2, sum, 1e-9)

	count, sum = histogram(t, r, "test_estimate_centroids")
	assert.Equal(t, uint64(2), count)
	assert.InDelta(t, 7, sum, 1e-9)
}

// histogram returns the sample count and sum of an unlabelled histogram.
func histogram(t *testing.T, r *Recorder, name string) (uint64, float64) {
	t.Helper()

	families, err := r.Registry().Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		h := mf.GetMetric()[0].GetHistogram()
		require.NotNil(t, h)
		return h.GetSampleCount(), h.GetSampleSum()
	}
	t.Fatalf("metric %s not gathered", name)
	return 0, 0
}

func TestRecorder_SeparateRegistries(t *testing.T) {
	// Two recorders must not collide on registration
	a := NewRecorder("")
	b := NewRecorder("")

	a.OracleCall(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(a.oracleCalls.WithLabelValues("ok")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.oracleCalls.WithLabelValues("ok")))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder("")
	r.OracleCall(false)
	r.EstimateCompleted(2, 0, time.Second)

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `geodist_oracle_calls_total{status="ok"} 1`)
	assert.Contains(t, string(body), "geodist_estimate_duration_seconds_count 1")
}

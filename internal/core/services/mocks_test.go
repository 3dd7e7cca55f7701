package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// --- Mock implementations ---

// mockOracle implements driven.SimilarityOracle from a fixed score table.
// Pairs missing from the table score zero.
type mockOracle struct {
	scores  map[domain.Pair]float64
	unknown map[domain.CentroidID]bool
	err     error
	jitter  time.Duration
	block   chan struct{}

	mu    sync.Mutex
	calls map[domain.Pair]int
	total int
}

func newMockOracle(scores map[domain.Pair]float64) *mockOracle {
	return &mockOracle{
		scores:  scores,
		unknown: make(map[domain.CentroidID]bool),
		calls:   make(map[domain.Pair]int),
	}
}

func (m *mockOracle) Similarity(ctx context.Context, a, b domain.CentroidID) (float64, error) {
	p := domain.NewPair(a, b)

	m.mu.Lock()
	m.calls[p]++
	m.total++
	m.mu.Unlock()

	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	if m.jitter > 0 {
		time.Sleep(time.Duration(rand.Int63n(int64(m.jitter))))
	}

	if m.unknown[a] {
		return 0, domain.NewUnknownCentroidError(a)
	}
	if m.unknown[b] {
		return 0, domain.NewUnknownCentroidError(b)
	}
	if m.err != nil {
		return 0, m.err
	}
	return m.scores[p], nil
}

func (m *mockOracle) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}

func (m *mockOracle) callsFor(a, b domain.CentroidID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[domain.NewPair(a, b)]
}

// mockLister implements driven.CentroidLister.
type mockLister struct {
	ids []domain.CentroidID
	err error
}

func (m *mockLister) ListCentroids(_ context.Context) ([]domain.CentroidID, error) {
	return m.ids, m.err
}

// mockMetrics implements driven.MetricsRecorder.
type mockMetrics struct {
	mu          sync.Mutex
	oracleCalls int
	oracleFails int
	completed   int
	unreachable int
	failures    []string
}

func (m *mockMetrics) OracleCall(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.oracleCalls++
	if failed {
		m.oracleFails++
	}
}

func (m *mockMetrics) EstimateCompleted(_, unreachable int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed++
	m.unreachable += unreachable
}

func (m *mockMetrics) EstimateFailed(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, reason)
}

// mockCentroidStore implements driven.CentroidStore.
type mockCentroidStore struct {
	saved   []domain.Centroid
	saveErr error
}

func (m *mockCentroidStore) SaveCentroid(_ context.Context, c domain.Centroid) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, c)
	return nil
}

func (m *mockCentroidStore) GetCentroid(_ context.Context, id domain.CentroidID) (*domain.Centroid, error) {
	for i := range m.saved {
		if m.saved[i].ID == id {
			return &m.saved[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCentroidStore) DeleteCentroid(_ context.Context, _ domain.CentroidID) error {
	return nil
}

func (m *mockCentroidStore) ListCentroids(_ context.Context) ([]domain.CentroidID, error) {
	ids := make([]domain.CentroidID, len(m.saved))
	for i := range m.saved {
		ids[i] = m.saved[i].ID
	}
	return ids, nil
}

// --- Fixtures ---

func centroidIDs(names ...string) []domain.CentroidID {
	out := make([]domain.CentroidID, len(names))
	for i, n := range names {
		out[i] = domain.CentroidID(n)
	}
	return out
}

func scores(entries ...any) map[domain.Pair]float64 {
	out := make(map[domain.Pair]float64)
	for i := 0; i+2 < len(entries); i += 3 {
		a := domain.CentroidID(entries[i].(string))
		b := domain.CentroidID(entries[i+1].(string))
		out[domain.NewPair(a, b)] = entries[i+2].(float64)
	}
	return out
}

// triangleScores is the A-B close, C far configuration.
func triangleScores() map[domain.Pair]float64 {
	return scores(
		"A", "B", 0.9,
		"A", "C", 0.1,
		"B", "C", 0.1,
	)
}

// twoCliqueScores splits A,B and C,D into separate neighbourhoods for k=1.
func twoCliqueScores() map[domain.Pair]float64 {
	return scores(
		"A", "B", 0.9,
		"C", "D", 0.8,
		"A", "C", 0.1,
		"A", "D", 0.2,
		"B", "C", 0.15,
		"B", "D", 0.05,
	)
}

// randomScores returns a deterministic pseudo-random score table over n centroids.
func randomScores(seed int64, n int) ([]domain.CentroidID, map[domain.Pair]float64) {
	r := rand.New(rand.NewSource(seed))
	names := make([]domain.CentroidID, n)
	for i := range names {
		names[i] = domain.CentroidID(string(rune('a'+i%26)) + string(rune('a'+i/26)))
	}
	out := make(map[domain.Pair]float64)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out[domain.NewPair(names[i], names[j])] = r.Float64()
		}
	}
	return names, out
}

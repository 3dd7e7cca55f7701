package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/logger"
)

// SimilarityMatrixBuilder fetches the similarity of every unordered pair of
// a centroid set and converts it into a DistanceMatrix.
type SimilarityMatrixBuilder struct {
	oracle      driven.SimilarityOracle
	concurrency int
	metrics     driven.MetricsRecorder
}

// NewSimilarityMatrixBuilder creates a builder issuing at most concurrency
// oracle calls at once. metrics may be nil.
func NewSimilarityMatrixBuilder(
	oracle driven.SimilarityOracle,
	concurrency int,
	metrics driven.MetricsRecorder,
) *SimilarityMatrixBuilder {
	if concurrency <= 0 {
		concurrency = domain.DefaultConcurrency
	}
	return &SimilarityMatrixBuilder{
		oracle:      oracle,
		concurrency: concurrency,
		metrics:     metrics,
	}
}

// Build returns the distance matrix over the distinct members of ids.
// Fewer than two distinct IDs yield an empty matrix without oracle calls.
// If the oracle reports an unknown centroid, that error is returned
// unchanged and no matrix is produced.
func (b *SimilarityMatrixBuilder) Build(ctx context.Context, ids []domain.CentroidID) (*domain.DistanceMatrix, error) {
	m, _, err := b.build(ctx, ids)
	return m, err
}

// build is Build that also reports how many oracle calls were issued.
func (b *SimilarityMatrixBuilder) build(
	ctx context.Context,
	ids []domain.CentroidID,
) (*domain.DistanceMatrix, int, error) {
	set, err := domain.NormalizeCentroidIDs(ids)
	if err != nil {
		return nil, 0, err
	}

	if len(set) < 2 {
		logger.Debug("Fewer than two centroids, skipping oracle")
		m, err := domain.NewDistanceMatrix(set, nil)
		return m, 0, err
	}

	n := len(set)
	logger.Debug("Similarity matrix: %d centroids, %d pairs, concurrency %d",
		n, n*(n-1)/2, b.concurrency)

	cache := newSimilarityCache(b.oracle, b.metrics)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, c := set[i], set[j]
			g.Go(func() error {
				_, err := cache.lookup(gctx, a, c)
				return err
			})
		}
	}

	if err := g.Wait(); err != nil {
		logger.Warn("Similarity matrix aborted after %d oracle calls: %v", cache.calls(), err)
		return nil, cache.calls(), err
	}

	m, err := domain.NewDistanceMatrix(set, cache.distances())
	if err != nil {
		return nil, cache.calls(), fmt.Errorf("assembling distance matrix: %w", err)
	}

	logger.Debug("Similarity matrix complete: %d oracle calls", cache.calls())
	return m, cache.calls(), nil
}

// similarityEntry is one claimed pair. done is closed once value or err is set.
type similarityEntry struct {
	done  chan struct{}
	value float64
	err   error
}

// similarityCache memoizes oracle results for a single build.
// Entries are keyed by unordered pair so {a,b} and {b,a} share one call.
type similarityCache struct {
	oracle  driven.SimilarityOracle
	metrics driven.MetricsRecorder

	mu      sync.Mutex
	entries map[domain.Pair]*similarityEntry
	issued  atomic.Int64
}

func newSimilarityCache(oracle driven.SimilarityOracle, metrics driven.MetricsRecorder) *similarityCache {
	return &similarityCache{
		oracle:  oracle,
		metrics: metrics,
		entries: make(map[domain.Pair]*similarityEntry),
	}
}

// lookup returns the similarity of a and b, calling the oracle only if no
// other caller has claimed the pair. Failed entries are removed.
func (c *similarityCache) lookup(ctx context.Context, a, b domain.CentroidID) (float64, error) {
	p := domain.NewPair(a, b)

	c.mu.Lock()
	if e, ok := c.entries[p]; ok {
		c.mu.Unlock()
		select {
		case <-e.done:
			return e.value, e.err
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	e := &similarityEntry{done: make(chan struct{})}
	c.entries[p] = e
	c.mu.Unlock()

	e.value, e.err = c.fetch(ctx, p)
	if e.err != nil {
		c.mu.Lock()
		delete(c.entries, p)
		c.mu.Unlock()
	}
	close(e.done)

	return e.value, e.err
}

func (c *similarityCache) fetch(ctx context.Context, p domain.Pair) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	c.issued.Add(1)
	sim, err := c.oracle.Similarity(ctx, p.A, p.B)
	if c.metrics != nil {
		c.metrics.OracleCall(err != nil)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCentroid) {
			return 0, err
		}
		return 0, fmt.Errorf("similarity of %s: %w", p, err)
	}

	if math.IsNaN(sim) || math.IsInf(sim, 0) {
		return 0, fmt.Errorf("%w: %v for %s", domain.ErrInvalidSimilarity, sim, p)
	}
	return sim, nil
}

// distances converts every completed entry to a distance.
func (c *similarityCache) distances() map[domain.Pair]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[domain.Pair]float64, len(c.entries))
	for p, e := range c.entries {
		select {
		case <-e.done:
			if e.err == nil {
				out[p] = ToDistance(e.value)
			}
		default:
		}
	}
	return out
}

func (c *similarityCache) calls() int {
	return int(c.issued.Load())
}

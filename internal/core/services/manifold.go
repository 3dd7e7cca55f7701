package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/logger"
)

// Ensure ManifoldService implements the interface.
var _ driving.ManifoldService = (*ManifoldService)(nil)

// ManifoldService composes the estimator pipeline.
type ManifoldService struct {
	builder *SimilarityMatrixBuilder
	lister  driven.CentroidLister
	metrics driven.MetricsRecorder
}

// NewManifoldService creates a manifold service.
// lister and metrics are optional and may be nil.
func NewManifoldService(
	oracle driven.SimilarityOracle,
	lister driven.CentroidLister,
	metrics driven.MetricsRecorder,
	concurrency int,
) *ManifoldService {
	return &ManifoldService{
		builder: NewSimilarityMatrixBuilder(oracle, concurrency, metrics),
		lister:  lister,
		metrics: metrics,
	}
}

// Estimate computes the manifold-regularized distance between every pair of ids.
// k is validated before any oracle call is issued.
func (s *ManifoldService) Estimate(
	ctx context.Context,
	ids []domain.CentroidID,
	k int,
) (*domain.ManifoldResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	logger.Section("Manifold Estimate")
	logger.Debug("Run %s: %d ids, k=%d", runID, len(ids), k)

	if k <= 0 {
		s.failed("invalid_k")
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidNeighborhoodSize, k)
	}

	matrix, calls, err := s.builder.build(ctx, ids)
	if err != nil {
		s.failed(failureReason(err))
		return nil, err
	}

	graph, err := BuildKNN(matrix, k)
	if err != nil {
		s.failed(failureReason(err))
		return nil, err
	}

	table, err := EstimateGeodesics(ctx, graph, matrix, matrix.IDs())
	if err != nil {
		s.failed(failureReason(err))
		return nil, err
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.EstimateCompleted(matrix.Len(), table.UnreachableCount(), elapsed)
	}
	logger.Info("Run %s finished in %s: %d pairs, %d unreachable",
		runID, elapsed.Round(time.Millisecond), table.Len(), table.UnreachableCount())

	return &domain.ManifoldResult{
		RunID:       runID,
		K:           k,
		Matrix:      matrix,
		Graph:       graph,
		Table:       table,
		OracleCalls: calls,
		Elapsed:     elapsed,
	}, nil
}

// EstimateAll estimates over every centroid the lister reports.
func (s *ManifoldService) EstimateAll(ctx context.Context, k int) (*domain.ManifoldResult, error) {
	if s.lister == nil {
		return nil, errors.New("centroid listing not available for this oracle")
	}
	if k <= 0 {
		s.failed("invalid_k")
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidNeighborhoodSize, k)
	}

	ids, err := s.lister.ListCentroids(ctx)
	if err != nil {
		s.failed("list")
		return nil, fmt.Errorf("listing centroids: %w", err)
	}
	logger.Debug("Listed %d centroids", len(ids))

	return s.Estimate(ctx, ids, k)
}

// Summarize describes the distance distribution of result.
func (s *ManifoldService) Summarize(result *domain.ManifoldResult) domain.Summary {
	if result == nil {
		return domain.Summary{}
	}
	return Summarize(result.Matrix, result.Graph, result.Table)
}

func (s *ManifoldService) failed(reason string) {
	if s.metrics != nil {
		s.metrics.EstimateFailed(reason)
	}
}

// failureReason maps an error to a metrics label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownCentroid):
		return "unknown_centroid"
	case errors.Is(err, domain.ErrInvalidNeighborhoodSize):
		return "invalid_k"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, domain.ErrOracleUnavailable):
		return "oracle_unavailable"
	default:
		return "oracle"
	}
}

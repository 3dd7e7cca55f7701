package cli

import (
	"context"
	"sync"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/logger"
)

// Ensure reloadableManifold implements the interface.
var _ driving.ManifoldService = (*reloadableManifold)(nil)

// reloadableManifold forwards to a manifold service that can be replaced
// while a long-running server holds it.
type reloadableManifold struct {
	mu  sync.RWMutex
	svc driving.ManifoldService
}

func newReloadableManifold(svc driving.ManifoldService) *reloadableManifold {
	return &reloadableManifold{svc: svc}
}

func (r *reloadableManifold) current() driving.ManifoldService {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.svc
}

func (r *reloadableManifold) swap(svc driving.ManifoldService) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.svc = svc
}

func (r *reloadableManifold) Estimate(
	ctx context.Context,
	ids []domain.CentroidID,
	k int,
) (*domain.ManifoldResult, error) {
	return r.current().Estimate(ctx, ids, k)
}

func (r *reloadableManifold) EstimateAll(ctx context.Context, k int) (*domain.ManifoldResult, error) {
	return r.current().EstimateAll(ctx, k)
}

func (r *reloadableManifold) Summarize(result *domain.ManifoldResult) domain.Summary {
	return r.current().Summarize(result)
}

// onConfigReload rebuilds the oracle and estimator from the reloaded settings.
// Without a factory only per-call settings such as estimator.k take effect.
func onConfigReload(m *reloadableManifold, factory ManifoldFactory) func() {
	return func() {
		if factory == nil {
			logger.Info("Configuration reloaded; oracle settings apply after restart")
			return
		}
		m.swap(factory(0))
		logger.Info("Configuration reloaded; oracle and estimator rebuilt")
	}
}

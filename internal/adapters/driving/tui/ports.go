// Package tui provides an interactive terminal viewer for geodist estimates.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
)

// Ports aggregates the driving ports and run parameters used by the TUI.
type Ports struct {
	// Manifold re-runs estimates when k changes.
	Manifold driving.ManifoldService

	// IDs are the centroids to compare. Empty means every known centroid.
	IDs []domain.CentroidID
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Manifold == nil {
		return ErrMissingManifoldService
	}
	return nil
}

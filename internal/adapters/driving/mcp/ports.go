package mcp

import (
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Manifold runs distance estimates.
	Manifold driving.ManifoldService

	// Centroid lists locally stored centroids. Optional.
	Centroid driving.CentroidService

	// Settings exposes the active configuration and the default k. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Manifold == nil {
		return ErrMissingManifoldService
	}
	return nil
}

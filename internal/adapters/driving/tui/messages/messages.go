// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/geodist/internal/core/domain"
)

// EstimateRequested asks for a fresh estimate with neighbourhood size K.
type EstimateRequested struct {
	K int
}

// EstimateCompleted carries an estimate back to the model.
type EstimateCompleted struct {
	Result *domain.ManifoldResult
	Err    error
}

// SortMode orders the pair table.
type SortMode int

const (
	// SortByPair orders rows by centroid IDs.
	SortByPair SortMode = iota
	// SortByDistance orders rows by geodesic distance, unreachable last.
	SortByDistance
	// SortByStretch orders rows by geodesic over direct distance, largest first.
	SortByStretch
)

// Next returns the following mode, wrapping around.
func (m SortMode) Next() SortMode {
	return (m + 1) % 3
}

// String returns the mode's label.
func (m SortMode) String() string {
	switch m {
	case SortByDistance:
		return "distance"
	case SortByStretch:
		return "stretch"
	default:
		return "pair"
	}
}

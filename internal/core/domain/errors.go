package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent estimator failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCentroid indicates the oracle does not know a centroid.
	// Match with errors.Is; the concrete error is *UnknownCentroidError.
	ErrUnknownCentroid = errors.New("unknown centroid")

	// ErrInvalidNeighborhoodSize indicates k was not a positive integer.
	ErrInvalidNeighborhoodSize = errors.New("invalid neighborhood size")

	// ErrInvalidSimilarity indicates the oracle returned a non-finite score.
	ErrInvalidSimilarity = errors.New("invalid similarity score")

	// ErrOracleUnavailable indicates the similarity oracle cannot be reached.
	// Returned when the oracle's circuit breaker is open.
	ErrOracleUnavailable = errors.New("similarity oracle unavailable")
)

// UnknownCentroidError names the centroid the oracle reported as missing.
type UnknownCentroidError struct {
	ID CentroidID
}

// Error implements the error interface.
func (e *UnknownCentroidError) Error() string {
	return fmt.Sprintf("unknown centroid: %q", string(e.ID))
}

// Is reports whether target is ErrUnknownCentroid.
func (e *UnknownCentroidError) Is(target error) bool {
	return target == ErrUnknownCentroid
}

// NewUnknownCentroidError creates an error for the given centroid.
func NewUnknownCentroidError(id CentroidID) error {
	return &UnknownCentroidError{ID: id}
}

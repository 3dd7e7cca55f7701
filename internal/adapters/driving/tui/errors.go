package tui

import "errors"

// ErrMissingManifoldService is returned when the manifold service is not provided.
var ErrMissingManifoldService = errors.New("tui: manifold service is required")

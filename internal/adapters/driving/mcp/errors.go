// Package mcp provides an MCP (Model Context Protocol) server adapter for geodist.
// It lets AI assistants estimate manifold distances between centroids.
package mcp

import "errors"

// ErrMissingManifoldService is returned when the manifold service is not provided.
var ErrMissingManifoldService = errors.New("mcp: manifold service is required")

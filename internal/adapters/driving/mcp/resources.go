package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for geodist resources.
	uriScheme = "geodist://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "centroids",
		Name:        "centroids",
		Description: "IDs of the centroids stored for the local oracle",
		MIMEType:    "application/json",
	}, s.handleCentroidsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Active estimator and oracle settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)
}

// handleCentroidsResource returns the stored centroid IDs.
func (s *Server) handleCentroidsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Centroid == nil {
		return jsonResource(req.Params.URI, []string{})
	}

	ids, err := s.ports.Centroid.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing centroids: %w", err)
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = string(id)
	}
	return jsonResource(req.Params.URI, names)
}

// handleSettingsResource returns the active settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}
	return jsonResource(req.Params.URI, settings)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

// EstimateInput is the input schema for the estimate tool.
type EstimateInput struct {
	CentroidIDs []string `json:"centroid_ids,omitempty" jsonschema:"centroids to compare; omit to use every known centroid"`
	K           *int     `json:"k,omitempty" jsonschema:"neighbourhood size, a positive integer (default from settings)"`
}

// EstimateOutput is the output schema for the estimate tool.
type EstimateOutput struct {
	RunID   string         `json:"run_id"`
	K       int            `json:"k"`
	Pairs   []PairOutput   `json:"pairs"`
	Summary domain.Summary `json:"summary"`
}

// PairOutput is the geodesic distance of one centroid pair.
// Distance is null when the pair is unreachable.
type PairOutput struct {
	A         string   `json:"a"`
	B         string   `json:"b"`
	Distance  *float64 `json:"distance"`
	Direct    bool     `json:"direct"`
	Reachable bool     `json:"reachable"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "estimate_manifold_distances",
		Description: "Estimate manifold-regularized distances between centroids by " +
			"routing over their k-nearest-neighbour graph",
	}, s.handleEstimate)
}

// handleEstimate handles the estimate tool invocation.
func (s *Server) handleEstimate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EstimateInput,
) (*mcp.CallToolResult, EstimateOutput, error) {
	k := s.defaultK()
	if input.K != nil {
		k = *input.K
	}

	var (
		result *domain.ManifoldResult
		err    error
	)
	if len(input.CentroidIDs) == 0 {
		result, err = s.ports.Manifold.EstimateAll(ctx, k)
	} else {
		ids := make([]domain.CentroidID, len(input.CentroidIDs))
		for i, id := range input.CentroidIDs {
			ids[i] = domain.CentroidID(id)
		}
		result, err = s.ports.Manifold.Estimate(ctx, ids, k)
	}
	if err != nil {
		return nil, EstimateOutput{}, err
	}

	entries := result.Table.Entries()
	output := EstimateOutput{
		RunID:   result.RunID,
		K:       result.K,
		Pairs:   make([]PairOutput, len(entries)),
		Summary: s.ports.Manifold.Summarize(result),
	}
	for i, e := range entries {
		pair := PairOutput{
			A:         string(e.A),
			B:         string(e.B),
			Direct:    e.Direct,
			Reachable: e.Geodesic.Reachable,
		}
		if e.Geodesic.Reachable {
			d := e.Geodesic.Distance
			pair.Distance = &d
		}
		output.Pairs[i] = pair
	}

	return nil, output, nil
}

// defaultK reads the configured k on every call so reloaded settings apply.
func (s *Server) defaultK() int {
	if s.ports.Settings == nil {
		return domain.DefaultK
	}
	settings, err := s.ports.Settings.Get()
	if err != nil || settings.Estimator.K <= 0 {
		return domain.DefaultK
	}
	return settings.Estimator.K
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
)

var (
	estimateK           int
	estimateAll         bool
	estimateJSON        bool
	estimateTUI         bool
	estimateConcurrency int
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [centroid-id...]",
	Short: "Estimate manifold distances between centroids",
	Long: `Scores every pair of the given centroids with the similarity oracle,
builds a symmetrized k-nearest-neighbour graph, and prints the shortest-path
distance of every pair over that graph.

Pairs joined by a graph edge keep their direct distance. Pairs in different
graph components are reported as unreachable.

Examples:
  geodist estimate sports politics tech -k 2
  geodist estimate --all --json`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().IntVarP(&estimateK, "k", "k", 0, "neighbourhood size (default from settings)")
	estimateCmd.Flags().BoolVar(&estimateAll, "all", false, "compare every centroid the oracle knows")
	estimateCmd.Flags().BoolVar(&estimateJSON, "json", false, "output results as JSON")
	estimateCmd.Flags().BoolVar(&estimateTUI, "tui", false, "browse results in an interactive table")
	estimateCmd.Flags().IntVar(&estimateConcurrency, "concurrency", 0,
		"maximum concurrent oracle calls (default from settings)")
	rootCmd.AddCommand(estimateCmd)
}

// estimateOutput is the JSON shape of an estimate.
type estimateOutput struct {
	RunID   string                `json:"run_id"`
	K       int                   `json:"k"`
	Pairs   []domain.PairGeodesic `json:"pairs"`
	Summary domain.Summary        `json:"summary"`
}

func runEstimate(cmd *cobra.Command, args []string) error {
	svc := manifoldService
	if estimateConcurrency > 0 && manifoldFactory != nil {
		svc = manifoldFactory(estimateConcurrency)
	}
	if svc == nil {
		return errors.New("manifold service not configured")
	}

	switch {
	case estimateAll && len(args) > 0:
		return errors.New("pass centroid IDs or --all, not both")
	case !estimateAll && len(args) == 0:
		return errors.New("pass at least one centroid ID, or --all")
	}

	k := estimateK
	if !cmd.Flags().Changed("k") {
		k = configuredK()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ids := make([]domain.CentroidID, len(args))
	for i, a := range args {
		ids[i] = domain.CentroidID(a)
	}

	var (
		result *domain.ManifoldResult
		err    error
	)
	if estimateAll {
		result, err = svc.EstimateAll(ctx, k)
	} else {
		result, err = svc.Estimate(ctx, ids, k)
	}
	if err != nil {
		return fmt.Errorf("estimate failed: %w", err)
	}

	switch {
	case estimateJSON:
		return outputEstimateJSON(cmd, svc, result)
	case estimateTUI && isTerminal():
		return runViewer(ctx, svc, ids, result)
	}
	return outputEstimateTable(cmd, svc, result)
}

// configuredK returns estimator.k from settings, or the built-in default.
func configuredK() int {
	if settingsService == nil {
		return domain.DefaultK
	}
	settings, err := settingsService.Get()
	if err != nil {
		return domain.DefaultK
	}
	return settings.Estimator.K
}

func outputEstimateJSON(cmd *cobra.Command, svc driving.ManifoldService, result *domain.ManifoldResult) error {
	out := estimateOutput{
		RunID:   result.RunID,
		K:       result.K,
		Pairs:   result.Table.Entries(),
		Summary: svc.Summarize(result),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputEstimateTable(cmd *cobra.Command, svc driving.ManifoldService, result *domain.ManifoldResult) error {
	entries := result.Table.Entries()
	if len(entries) == 0 {
		cmd.Println("Fewer than two centroids, nothing to compare.")
		return nil
	}

	cmd.Printf("%-20s %-20s %12s  %s\n", "A", "B", "GEODESIC", "ROUTE")
	for _, e := range entries {
		route := "routed"
		switch {
		case !e.Geodesic.Reachable:
			route = "-"
		case e.Direct:
			route = "edge"
		}
		cmd.Printf("%-20s %-20s %12s  %s\n", e.A, e.B, e.Geodesic, route)
	}

	s := svc.Summarize(result)
	cmd.Println()
	cmd.Printf("%d centroids, %d edges (k=%d), %d pairs: %d direct, %d routed, %d unreachable\n",
		s.Centroids, s.Edges, result.K, s.Pairs, s.Direct, s.Routed, s.Unreachable)
	if s.Direct+s.Routed > 0 {
		cmd.Printf("Mean distance %.4f, max %.4f", s.MeanDistance, s.MaxDistance)
		if s.Routed > 0 {
			cmd.Printf(", mean stretch %.4f", s.MeanStretch)
		}
		cmd.Println()
	}
	return nil
}

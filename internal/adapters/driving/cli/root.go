// Package cli provides the cobra command tree for the geodist binary.
package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/logger"
)

// version is set at build time via -ldflags "-X .../cli.version=...".
var version = "dev"

// verbose enables debug logging for every command.
var verbose bool

// Services wired by main.
var (
	manifoldService driving.ManifoldService
	manifoldFactory ManifoldFactory
	centroidService driving.CentroidService
	settingsService driving.SettingsService
	configWatcher   driven.ConfigWatcher
	metricsHandler  http.Handler
)

// ManifoldFactory builds a manifold service from the current settings.
// A concurrency of zero or less uses estimator.concurrency.
type ManifoldFactory func(concurrency int) driving.ManifoldService

// Services holds the dependencies the command tree runs against.
type Services struct {
	Manifold        driving.ManifoldService
	ManifoldFactory ManifoldFactory
	Centroid        driving.CentroidService
	Settings        driving.SettingsService
	ConfigWatcher   driven.ConfigWatcher
	Metrics         http.Handler
}

// SetServices installs the services used by all commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	manifoldService = s.Manifold
	manifoldFactory = s.ManifoldFactory
	centroidService = s.Centroid
	settingsService = s.Settings
	configWatcher = s.ConfigWatcher
	metricsHandler = s.Metrics
}

var rootCmd = &cobra.Command{
	Use:   "geodist",
	Short: "Manifold-regularized distances between centroids",
	Long: `geodist estimates how far apart document centroids are along the
manifold they sample, rather than straight through the ambient space.

It scores every pair with a similarity oracle, links each centroid to its
k nearest neighbours, and reports shortest-path distances over that graph.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

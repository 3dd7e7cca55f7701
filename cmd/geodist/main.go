// Command geodist estimates manifold-regularized distances between centroids.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/geodist/internal/adapters/driven/config/file"
	"github.com/custodia-labs/geodist/internal/adapters/driven/metrics/prometheus"
	"github.com/custodia-labs/geodist/internal/adapters/driven/oracle/relevanced"
	"github.com/custodia-labs/geodist/internal/adapters/driven/oracle/vector"
	"github.com/custodia-labs/geodist/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/geodist/internal/adapters/driving/cli"
	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/core/services"
)

func main() {
	cleanup, err := setup()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	// Cobra prints command errors itself.
	err = cli.Execute()
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// setup wires adapters into services and installs them on the command tree.
func setup() (func(), error) {
	configDir, err := file.DefaultConfigDir()
	if err != nil {
		return nil, err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, err
	}

	store, err := sqlite.NewStore(settings.Store.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open centroid store: %w", err)
	}

	recorder := prometheus.NewRecorder("geodist")

	// The factory reads settings on every call so a reloaded config picks a
	// new oracle. The store stays open on its startup data dir.
	factory := func(concurrency int) driving.ManifoldService {
		current, err := settingsService.Get()
		if err != nil {
			current = settings
		}
		if concurrency <= 0 {
			concurrency = current.Estimator.Concurrency
		}
		oracle := newOracle(current, store)
		return services.NewManifoldService(oracle, oracle, recorder, concurrency)
	}

	cli.SetServices(&cli.Services{
		Manifold:        factory(0),
		ManifoldFactory: factory,
		Centroid:        services.NewCentroidService(store),
		Settings:        settingsService,
		ConfigWatcher:   configStore,
		Metrics:         recorder.Handler(),
	})

	return func() { _ = store.Close() }, nil
}

// similarityOracle is what the manifold service needs from a backend.
type similarityOracle interface {
	driven.SimilarityOracle
	driven.CentroidLister
}

func newOracle(settings *domain.AppSettings, store driven.CentroidStore) similarityOracle {
	if settings.Oracle.Backend == domain.OracleBackendLocal {
		return vector.NewOracle(store)
	}
	return relevanced.NewOracle(relevanced.Config{
		BaseURL: settings.Oracle.BaseURL,
		Timeout: time.Duration(settings.Oracle.TimeoutSeconds) * time.Second,
		Rate:    settings.Oracle.Rate,
		Burst:   settings.Oracle.Burst,
	})
}

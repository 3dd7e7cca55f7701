package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geodist/internal/adapters/driven/oracle/vector"
	"github.com/custodia-labs/geodist/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driving"
	"github.com/custodia-labs/geodist/internal/core/services"
)

// setupTestServices wires real services over in-memory stores holding a
// chain a - b - c, where a and c are orthogonal, and a separate pair x - y.
func setupTestServices() func() {
	store := memory.NewCentroidStore()
	centroids := services.NewCentroidService(store)
	_, err := centroids.Import(context.Background(), []domain.Centroid{
		{ID: "a", Vector: []float32{1, 0, 0}},
		{ID: "b", Vector: []float32{1, 1, 0}},
		{ID: "c", Vector: []float32{0, 1, 0}},
		{ID: "x", Vector: []float32{0, 0, 1}},
		{ID: "y", Vector: []float32{0, 0, 2}},
	})
	if err != nil {
		panic(err)
	}

	config := memory.NewConfigStore()
	_ = config.Set(services.KeyEstimatorK, 1)

	oracle := vector.NewOracle(store)
	SetServices(&Services{
		Manifold: services.NewManifoldService(oracle, oracle, nil, 2),
		ManifoldFactory: func(concurrency int) driving.ManifoldService {
			return services.NewManifoldService(oracle, oracle, nil, concurrency)
		},
		Centroid: centroids,
		Settings: services.NewSettingsService(config),
	})

	return func() {
		SetServices(nil)
	}
}

// execute runs the root command with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag in the tree to its default between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "geodist", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestRootCmd_HasVerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestRootCmd_RegistersSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"estimate", "centroids", "settings", "mcp", "version"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestSetServices_NilClearsServices(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	require.NotNil(t, manifoldService)
	SetServices(nil)

	assert.Nil(t, manifoldService)
	assert.Nil(t, manifoldFactory)
	assert.Nil(t, centroidService)
	assert.Nil(t, settingsService)
	assert.Nil(t, configWatcher)
	assert.Nil(t, metricsHandler)
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentroidsCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range centroidsCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"import", "list", "show", "remove"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestCentroidsListCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "centroids", "list")

	require.NoError(t, err)
	assert.Equal(t, "a\nb\nc\nx\ny\n", out)
}

func TestCentroidsListCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	for _, id := range []string{"a", "b", "c", "x", "y"} {
		_, err := execute(t, "centroids", "remove", id)
		require.NoError(t, err)
	}

	out, err := execute(t, "centroids", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No centroids stored.")
}

func TestCentroidsShowCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "centroids", "show", "b")

	require.NoError(t, err)
	assert.Contains(t, out, "ID:         b")
	assert.Contains(t, out, "Dimensions: 3")
	assert.Contains(t, out, "[1 1 0]")
}

func TestCentroidsShowCmd_NotFound(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "centroids", "show", "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCentroidsShowCmd_RequiresArg(t *testing.T) {
	_, err := execute(t, "centroids", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestCentroidsRemoveCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "centroids", "rm", "x")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed centroid x")

	_, err = execute(t, "centroids", "remove", "x")
	require.Error(t, err)
}

func TestCentroidsImportCmd(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "centroids.json")
	data := `[{"id": "d", "vector": [0.5, 0.5, 0]}, {"id": "a", "vector": [2, 0, 0]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := execute(t, "centroids", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 centroids")

	out, err = execute(t, "centroids", "show", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "[2 0 0]")
}

func TestCentroidsImportCmd_BadJSON(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id": "a"}`), 0o600))

	_, err := execute(t, "centroids", "import", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestCentroidsImportCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "centroids", "import", filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestCentroidsCmd_NoService(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "centroids", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

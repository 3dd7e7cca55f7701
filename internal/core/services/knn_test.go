package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

func buildMatrix(t *testing.T, table map[domain.Pair]float64, names []domain.CentroidID) *domain.DistanceMatrix {
	t.Helper()
	m, err := NewSimilarityMatrixBuilder(newMockOracle(table), 4, nil).Build(context.Background(), names)
	require.NoError(t, err)
	return m
}

func TestBuildKNN_TriangleTieBreak(t *testing.T) {
	m := buildMatrix(t, triangleScores(), centroidIDs("A", "B", "C"))

	g, err := BuildKNN(m, 1)
	require.NoError(t, err)

	require.Len(t, g.Nearest("A"), 1)
	assert.Equal(t, domain.CentroidID("B"), g.Nearest("A")[0].ID)
	assert.Equal(t, domain.CentroidID("A"), g.Nearest("B")[0].ID)
	// C is 0.9 from both A and B; the tie goes to A.
	assert.Equal(t, domain.CentroidID("A"), g.Nearest("C")[0].ID)

	assert.True(t, g.HasEdge("A", "C"))
	assert.True(t, g.HasEdge("C", "A"))
	assert.False(t, g.HasEdge("B", "C"))
	assert.Equal(t, 2, g.EdgeCount())

	// A gained C through symmetrization.
	neighbors := g.Neighbors("A")
	require.Len(t, neighbors, 2)
	assert.Equal(t, domain.CentroidID("B"), neighbors[0].ID)
	assert.Equal(t, domain.CentroidID("C"), neighbors[1].ID)
	assert.Len(t, g.Neighbors("B"), 1)
}

func TestBuildKNN_NearestLength(t *testing.T) {
	names, table := randomScores(5, 8)
	m := buildMatrix(t, table, names)

	for k := 1; k <= 10; k++ {
		g, err := BuildKNN(m, k)
		require.NoError(t, err)

		want := min(k, len(names)-1)
		for _, id := range names {
			nearest := g.Nearest(id)
			assert.Len(t, nearest, want, "k=%d id=%s", k, id)
			for i := 1; i < len(nearest); i++ {
				prev, cur := nearest[i-1], nearest[i]
				ordered := prev.Distance < cur.Distance ||
					(prev.Distance == cur.Distance && prev.ID < cur.ID)
				assert.True(t, ordered)
			}
		}
	}
}

func TestBuildKNN_Symmetric(t *testing.T) {
	names, table := randomScores(9, 12)
	m := buildMatrix(t, table, names)

	g, err := BuildKNN(m, 2)
	require.NoError(t, err)

	for _, a := range names {
		for _, n := range g.Neighbors(a) {
			assert.True(t, g.HasEdge(n.ID, a))
			d, _ := m.Distance(a, n.ID)
			assert.Equal(t, d, n.Distance)
		}
		for _, n := range g.Nearest(a) {
			assert.True(t, g.HasEdge(a, n.ID))
		}
	}
}

func TestBuildKNN_DenseWhenKCoversAll(t *testing.T) {
	names, table := randomScores(1, 6)
	m := buildMatrix(t, table, names)

	g, err := BuildKNN(m, 5)
	require.NoError(t, err)

	assert.Equal(t, 15, g.EdgeCount())
	for _, a := range names {
		assert.Len(t, g.Neighbors(a), 5)
	}
}

func TestBuildKNN_InvalidK(t *testing.T) {
	m := buildMatrix(t, triangleScores(), centroidIDs("A", "B", "C"))

	for _, k := range []int{0, -1, -100} {
		_, err := BuildKNN(m, k)
		assert.ErrorIs(t, err, domain.ErrInvalidNeighborhoodSize)
	}
}

func TestBuildKNN_TrivialSets(t *testing.T) {
	for _, names := range [][]domain.CentroidID{nil, centroidIDs("A")} {
		m := buildMatrix(t, nil, names)

		g, err := BuildKNN(m, 3)
		require.NoError(t, err)
		assert.Zero(t, g.EdgeCount())
	}
}

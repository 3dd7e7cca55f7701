package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeodesic_String(t *testing.T) {
	assert.Equal(t, "0.250000", Reached(0.25).String())
	assert.Equal(t, "unreachable", Unreachable.String())
}

func TestGeodesic_JSON(t *testing.T) {
	data, err := json.Marshal([]Geodesic{Reached(0.5), Unreachable})
	require.NoError(t, err)
	assert.JSONEq(t, `[0.5, null]`, string(data))

	var decoded []Geodesic
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Reached(0.5), decoded[0])
	assert.False(t, decoded[1].Reachable)
}

func TestGeodesicTableBuilder(t *testing.T) {
	b, err := NewGeodesicTableBuilder([]CentroidID{"a", "b", "c"})
	require.NoError(t, err)

	b.Set(0, 1, Reached(0.1), true)
	b.Set(0, 2, Reached(0.9), true)
	b.Set(1, 2, Reached(1.0), false)

	table, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	got, ok := table.Get("c", "b")
	require.True(t, ok)
	assert.Equal(t, Reached(1.0), got)

	got, ok = table.Get("b", "c")
	require.True(t, ok)
	assert.Equal(t, Reached(1.0), got)

	got, ok = table.Get("a", "a")
	require.True(t, ok)
	assert.Equal(t, Reached(0), got)

	_, ok = table.Get("a", "z")
	assert.False(t, ok)

	assert.True(t, table.IsDirect("b", "a"))
	assert.False(t, table.IsDirect("b", "c"))
	assert.Zero(t, table.UnreachableCount())
}

func TestGeodesicTableBuilder_Entries(t *testing.T) {
	b, err := NewGeodesicTableBuilder([]CentroidID{"a", "b", "c"})
	require.NoError(t, err)
	b.Set(1, 2, Unreachable, false)
	b.Set(0, 2, Reached(0.4), true)
	b.Set(0, 1, Reached(0.3), true)

	table, err := b.Build()
	require.NoError(t, err)

	entries := table.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, PairGeodesic{A: "a", B: "b", Geodesic: Reached(0.3), Direct: true}, entries[0])
	assert.Equal(t, PairGeodesic{A: "a", B: "c", Geodesic: Reached(0.4), Direct: true}, entries[1])
	assert.Equal(t, CentroidID("b"), entries[2].A)
	assert.False(t, entries[2].Geodesic.Reachable)
	assert.Equal(t, 1, table.UnreachableCount())
}

func TestGeodesicTableBuilder_MissingPair(t *testing.T) {
	b, err := NewGeodesicTableBuilder([]CentroidID{"a", "b", "c"})
	require.NoError(t, err)
	b.Set(0, 1, Reached(0.3), true)

	_, err = b.Build()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

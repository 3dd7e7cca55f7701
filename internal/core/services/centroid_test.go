package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/geodist/internal/core/domain"
)

func TestCentroidService_Import(t *testing.T) {
	store := &mockCentroidStore{}
	service := NewCentroidService(store)

	n, err := service.Import(context.Background(), []domain.Centroid{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0.5, 0.5}},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, store.saved, 2)
	assert.False(t, store.saved[0].UpdatedAt.IsZero())

	ids, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, centroidIDs("a", "b"), ids)

	c, err := service.Get(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, c.Vector)
}

func TestCentroidService_Import_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		centroid domain.Centroid
	}{
		{"missing id", domain.Centroid{Vector: []float32{1}}},
		{"empty vector", domain.Centroid{ID: "a"}},
		{"negative weight", domain.Centroid{ID: "a", Vector: []float32{1, -1}}},
		{"nan weight", domain.Centroid{ID: "a", Vector: []float32{float32(math.NaN())}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockCentroidStore{}
			service := NewCentroidService(store)

			n, err := service.Import(context.Background(), []domain.Centroid{
				{ID: "ok", Vector: []float32{1}},
				tt.centroid,
			})

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Zero(t, n)
			assert.Empty(t, store.saved)
		})
	}
}

func TestCentroidService_Import_StoreError(t *testing.T) {
	store := &mockCentroidStore{saveErr: errors.New("disk full")}
	service := NewCentroidService(store)

	_, err := service.Import(context.Background(), []domain.Centroid{{ID: "a", Vector: []float32{1}}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

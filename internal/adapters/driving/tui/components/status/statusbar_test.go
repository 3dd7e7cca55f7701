package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBar_Defaults(t *testing.T) {
	b := NewBar(nil, nil)

	assert.Equal(t, StateReady, b.State())
	assert.Equal(t, 80, b.width)
}

func TestBar_View_Ready(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetRun(3, 10)
	b.SetSort("distance")

	view := b.View()

	assert.Contains(t, view, "k=3")
	assert.Contains(t, view, "10 pairs")
	assert.Contains(t, view, "sort: distance")
	assert.Contains(t, view, "q: quit")
}

func TestBar_View_Estimating(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetRun(4, 0)
	b.SetState(StateEstimating)

	assert.Contains(t, b.View(), "Estimating with k=4")
}

func TestBar_View_Error(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetState(StateError)

	assert.Contains(t, b.View(), "Error")

	b.SetMessage("unknown centroid")
	assert.Contains(t, b.View(), "Error: unknown centroid")
}

func TestBar_SetWidth_NarrowStillRenders(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(5)

	assert.NotEmpty(t, b.View())
}

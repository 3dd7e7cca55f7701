package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToDistance(t *testing.T) {
	tests := []struct {
		name       string
		similarity float64
		expected   float64
	}{
		{"identical", 1.0, 0.0},
		{"orthogonal", 0.0, 1.0},
		{"half", 0.5, 0.5},
		{"close", 0.9, 0.1},
		{"above range", 1.2, 0.0},
		{"below range", -0.3, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ToDistance(tt.similarity), 1e-12)
		})
	}
}

func TestToDistance_MonotoneDecreasing(t *testing.T) {
	prev := ToDistance(0)
	for s := 0.05; s <= 1.0; s += 0.05 {
		d := ToDistance(s)
		assert.LessOrEqual(t, d, prev)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 1.0)
		prev = d
	}
}

package flood

import (
	"math"
	"testing"

	"github.com/akmonengine/buoy/voxel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmergedFraction(t *testing.T) {
	tests := []struct {
		name      string
		worldY    float64
		blockSize float64
		want      float64
	}{
		{"far above", 10, 1, 0},
		{"upper breakpoint", 0.5, 1, 0},
		{"centered on the plane", 0, 1, 0.5},
		{"quarter submerged", 0.25, 1, 0.25},
		{"lower breakpoint", -0.5, 1, 1},
		{"far below", -10, 1, 1},
		{"large blocks keep the exact expression", 0.5, 2, 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SubmergedFraction(tt.worldY, tt.blockSize), 1e-12)
		})
	}
}

func TestSubmergedFraction_MonotonicAndContinuous(t *testing.T) {
	prev := SubmergedFraction(1, 1)
	for y := 1.0; y >= -1.0; y -= 0.001 {
		got := SubmergedFraction(y, 1)
		require.LessOrEqual(t, prev, got+1e-12, "fraction decreased at y=%v", y)
		require.LessOrEqual(t, math.Abs(got-prev), 0.002, "jump at y=%v", y)
		prev = got
	}
}

func TestWaterContactClassification(t *testing.T) {
	assert.False(t, InWaterContact(0.5, 1))
	assert.True(t, InWaterContact(0.49, 1))
	assert.False(t, FullySubmerged(-0.5, 1))
	assert.True(t, FullySubmerged(-0.51, 1))
	assert.True(t, InWaterContact(0.9, 2))
}

func TestSecureHeight(t *testing.T) {
	occ := voxel.NewGrid[int](1, 1, 1)
	occ.Set(0, 0, 0, 1)

	bm, err := voxel.BuildExpandedGrid(occ, voxel.UniformMass(occ, 1), 1)
	require.NoError(t, err)

	assert.InDelta(t, math.Sqrt(3)+1, SecureHeight(bm), 1e-12)
}

package actor

import (
	"math"

	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// Helper function to compare floats with epsilon tolerance
func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

// Helper function to compare Vec3 with epsilon tolerance
func vec3AlmostEqual(a, b mgl64.Vec3, epsilon float64) bool {
	return almostEqual(a.X(), b.X(), epsilon) &&
		almostEqual(a.Y(), b.Y(), epsilon) &&
		almostEqual(a.Z(), b.Z(), epsilon)
}

// Helper function to compare quaternions with epsilon tolerance
func quatAlmostEqual(a, b mgl64.Quat, epsilon float64) bool {
	return almostEqual(a.W, b.W, epsilon) &&
		almostEqual(a.V.X(), b.V.X(), epsilon) &&
		almostEqual(a.V.Y(), b.V.Y(), epsilon) &&
		almostEqual(a.V.Z(), b.V.Z(), epsilon)
}

// rowGrid builds an X-aligned row of cells with the given masses.
func rowGrid(masses ...float64) voxel.Grid[float64] {
	g := voxel.NewGrid[float64](len(masses), 1, 1)
	for x, m := range masses {
		g.Set(x, 0, 0, m)
	}
	return g
}

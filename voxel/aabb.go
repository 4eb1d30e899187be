package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Extend grows the box to include point.
func (a AABB) Extend(point mgl64.Vec3) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Min(a.Min[0], point[0]), math.Min(a.Min[1], point[1]), math.Min(a.Min[2], point[2])},
		Max: mgl64.Vec3{math.Max(a.Max[0], point[0]), math.Max(a.Max[1], point[1]), math.Max(a.Max[2], point[2])},
	}
}

// Extent returns the farthest distance from the origin to a corner of the box.
func (a AABB) Extent() float64 {
	x := math.Max(math.Abs(a.Min.X()), math.Abs(a.Max.X()))
	y := math.Max(math.Abs(a.Min.Y()), math.Abs(a.Max.Y()))
	z := math.Max(math.Abs(a.Min.Z()), math.Abs(a.Max.Z()))

	return math.Sqrt(x*x + y*y + z*z)
}

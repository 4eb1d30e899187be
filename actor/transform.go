package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform represents the world pose of a vehicle frame
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformAt creates an unrotated transform at position
func NewTransformAt(position mgl64.Vec3) Transform {
	return Transform{
		Position: position,
		Rotation: mgl64.QuatIdent(),
	}
}

// TransformPoint converts a point from the local frame to world space.
func (t Transform) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return t.Position.Add(t.Rotation.Rotate(local))
}

// InverseTransformDirection converts a world direction into the local frame.
func (t Transform) InverseTransformDirection(direction mgl64.Vec3) mgl64.Vec3 {
	return t.Rotation.Inverse().Rotate(direction)
}

// RotateAround rotates the frame about a world-space pivot, angle in radians.
func (t *Transform) RotateAround(pivot mgl64.Vec3, axis mgl64.Vec3, angle float64) {
	if axis.Len() == 0 || angle == 0 {
		return
	}

	q := mgl64.QuatRotate(angle, axis.Normalize())
	t.Position = pivot.Add(q.Rotate(t.Position.Sub(pivot)))
	t.Rotation = q.Mul(t.Rotation).Normalize()
}

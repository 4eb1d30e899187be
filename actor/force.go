package actor

import "github.com/go-gl/mathgl/mgl64"

// Force is a force vector applied at a world-space position. Forces live for one step.
type Force struct {
	Position mgl64.Vec3
	Vector   mgl64.Vec3
}

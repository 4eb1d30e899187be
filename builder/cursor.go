package builder

import (
	"math"

	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// Cursor is the builder position on the grid. Yaw, in degrees, orients horizontal moves:
// at yaw 0 forward is +Z and right is +X.
type Cursor struct {
	Position voxel.Coord
	Yaw      float64
}

// Turn adds degrees to the yaw, keeping it within (-360, 360).
func (c *Cursor) Turn(degrees float64) {
	c.Yaw = math.Mod(c.Yaw+degrees, 360)
}

// Move shifts the cursor by forward and right along the yaw, snaps it back to the grid
// and then moves it up by whole blocks.
func (c *Cursor) Move(forward, right float64, up int) {
	yaw := mgl64.DegToRad(c.Yaw)
	forwardDir := mgl64.Vec3{math.Sin(yaw), 0, math.Cos(yaw)}
	rightDir := mgl64.Vec3{forwardDir.Z(), 0, -forwardDir.X()}

	position := mgl64.Vec3{float64(c.Position.X), float64(c.Position.Y), float64(c.Position.Z)}
	position = position.Add(forwardDir.Mul(forward)).Add(rightDir.Mul(right))

	c.Position = voxel.Snap(position, 1).Add(voxel.Coord{Y: up})
}

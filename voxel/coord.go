package voxel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Coord is an integer grid coordinate of a block.
type Coord struct {
	X, Y, Z int
}

// Neighbors lists the 6 axis offsets in lookup order: +X, -X, +Y, -Y, +Z, -Z.
// Flood seeding relies on this order for tie-breaking.
var Neighbors = [6]Coord{
	{1, 0, 0},
	{-1, 0, 0},
	{0, 1, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

func (c Coord) Add(other Coord) Coord {
	return Coord{c.X + other.X, c.Y + other.Y, c.Z + other.Z}
}

func (c Coord) Sub(other Coord) Coord {
	return Coord{c.X - other.X, c.Y - other.Y, c.Z - other.Z}
}

// Min returns the component-wise minimum.
func (c Coord) Min(other Coord) Coord {
	return Coord{min(c.X, other.X), min(c.Y, other.Y), min(c.Z, other.Z)}
}

// Max returns the component-wise maximum.
func (c Coord) Max(other Coord) Coord {
	return Coord{max(c.X, other.X), max(c.Y, other.Y), max(c.Z, other.Z)}
}

// Snap converts a world position to the nearest grid coordinate for the given step.
func Snap(position mgl64.Vec3, step float64) Coord {
	return Coord{
		X: int(math.Round(position.X() / step)),
		Y: int(math.Round(position.Y() / step)),
		Z: int(math.Round(position.Z() / step)),
	}
}

// CenteredPosition maps a cell of a grid of the given size to a position relative to the
// grid's geometric center, scaled by blockSize.
func CenteredPosition(c Coord, sx, sy, sz int, blockSize float64) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(c.X) - float64(sx-1)*0.5,
		float64(c.Y) - float64(sy-1)*0.5,
		float64(c.Z) - float64(sz-1)*0.5,
	}.Mul(blockSize)
}

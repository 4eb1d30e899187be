package voxel

import (
	"errors"
	"fmt"
)

var (
	ErrDimensionMismatch = errors.New("voxel: grid dimensions mismatch")
	ErrEmptyGrid         = errors.New("voxel: grid has a zero dimension")
	ErrInvalidBlockType  = errors.New("voxel: invalid block type")
)

// Grid is a dense 3D array of sizes (X, Y, Z), Y being the vertical axis.
// Cells are stored x-major, then z, then y, which is also the Range order.
type Grid[T any] struct {
	sx, sy, sz int
	cells      []T
}

// NewGrid allocates a zeroed grid.
func NewGrid[T any](sx, sy, sz int) Grid[T] {
	if sx < 0 || sy < 0 || sz < 0 {
		sx, sy, sz = 0, 0, 0
	}

	return Grid[T]{
		sx:    sx,
		sy:    sy,
		sz:    sz,
		cells: make([]T, sx*sy*sz),
	}
}

// Size returns the grid dimensions.
func (g Grid[T]) Size() (int, int, int) {
	return g.sx, g.sy, g.sz
}

// Len returns the number of cells.
func (g Grid[T]) Len() int {
	return len(g.cells)
}

func (g Grid[T]) Empty() bool {
	return g.sx == 0 || g.sy == 0 || g.sz == 0
}

// Contains reports whether c lies inside the grid.
func (g Grid[T]) Contains(c Coord) bool {
	return c.X >= 0 && c.X < g.sx &&
		c.Y >= 0 && c.Y < g.sy &&
		c.Z >= 0 && c.Z < g.sz
}

func (g Grid[T]) index(x, y, z int) int {
	return (x*g.sz+z)*g.sy + y
}

// At returns the value at (x, y, z). It panics when out of range, like a slice.
func (g Grid[T]) At(x, y, z int) T {
	return g.cells[g.index(x, y, z)]
}

func (g Grid[T]) Set(x, y, z int, value T) {
	g.cells[g.index(x, y, z)] = value
}

// Range calls fn for every cell, x outermost, then z, then y.
func (g Grid[T]) Range(fn func(c Coord, value T)) {
	for x := 0; x < g.sx; x++ {
		for z := 0; z < g.sz; z++ {
			for y := 0; y < g.sy; y++ {
				fn(Coord{x, y, z}, g.cells[g.index(x, y, z)])
			}
		}
	}
}

// SameSize reports whether two grids have identical dimensions.
func SameSize[A, B any](a Grid[A], b Grid[B]) bool {
	return a.sx == b.sx && a.sy == b.sy && a.sz == b.sz
}

// UniformMass builds a mass grid assigning blockMass to every solid cell of occupancy.
func UniformMass(occupancy Grid[int], blockMass float64) Grid[float64] {
	mass := NewGrid[float64](occupancy.Size())
	for i, v := range occupancy.cells {
		if BlockType(v) == BlockSolid {
			mass.cells[i] = blockMass
		}
	}

	return mass
}

// ValidateOccupancy checks that every cell is air or solid.
func ValidateOccupancy(occupancy Grid[int]) error {
	if occupancy.Empty() {
		return ErrEmptyGrid
	}

	var err error
	occupancy.Range(func(c Coord, value int) {
		if err == nil && BlockType(value) != BlockAir && BlockType(value) != BlockSolid {
			err = fmt.Errorf("%w: %d at %v", ErrInvalidBlockType, value, c)
		}
	})

	return err
}

// SolidCount returns the number of solid cells.
func SolidCount(occupancy Grid[int]) int {
	n := 0
	for _, v := range occupancy.cells {
		if BlockType(v) == BlockSolid {
			n++
		}
	}

	return n
}

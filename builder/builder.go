// Package builder models builder mode: a set of blocks placed on an integer grid, a
// cursor moving over it and the export of the placed set as a vehicle layout.
package builder

import (
	"cmp"
	"errors"
	"slices"

	"github.com/akmonengine/buoy/voxel"
)

var ErrNoBlocks = errors.New("builder: no blocks placed")

type Builder struct {
	placed map[voxel.Coord]struct{}
	Cursor Cursor
}

func New() *Builder {
	return &Builder{
		placed: make(map[voxel.Coord]struct{}),
	}
}

// Place adds a block at c. It returns false if one is already there.
func (b *Builder) Place(c voxel.Coord) bool {
	if _, ok := b.placed[c]; ok {
		return false
	}
	b.placed[c] = struct{}{}

	return true
}

// Remove deletes the block at c. It returns false if there was none.
func (b *Builder) Remove(c voxel.Coord) bool {
	if _, ok := b.placed[c]; !ok {
		return false
	}
	delete(b.placed, c)

	return true
}

func (b *Builder) PlaceAtCursor() bool {
	return b.Place(b.Cursor.Position)
}

func (b *Builder) RemoveAtCursor() bool {
	return b.Remove(b.Cursor.Position)
}

func (b *Builder) Has(c voxel.Coord) bool {
	_, ok := b.placed[c]
	return ok
}

func (b *Builder) Len() int {
	return len(b.placed)
}

// Coords returns the placed coordinates ordered by x, then z, then y.
func (b *Builder) Coords() []voxel.Coord {
	coords := make([]voxel.Coord, 0, len(b.placed))
	for c := range b.placed {
		coords = append(coords, c)
	}
	slices.SortFunc(coords, func(p, q voxel.Coord) int {
		return cmp.Or(cmp.Compare(p.X, q.X), cmp.Compare(p.Z, q.Z), cmp.Compare(p.Y, q.Y))
	})

	return coords
}

// Bounds returns the inclusive bounding box of the placed blocks.
func (b *Builder) Bounds() (lo, hi voxel.Coord, err error) {
	if len(b.placed) == 0 {
		return voxel.Coord{}, voxel.Coord{}, ErrNoBlocks
	}

	first := true
	for c := range b.placed {
		if first {
			lo, hi = c, c
			first = false
			continue
		}
		lo = lo.Min(c)
		hi = hi.Max(c)
	}

	return lo, hi, nil
}

// Export returns an occupancy grid spanning the bounding box of the placed blocks, with
// cell (x, y, z) solid when a block sits at bounds min + (x, y, z).
func (b *Builder) Export() (voxel.Grid[int], error) {
	lo, hi, err := b.Bounds()
	if err != nil {
		return voxel.Grid[int]{}, err
	}

	size := hi.Sub(lo)
	grid := voxel.NewGrid[int](size.X+1, size.Y+1, size.Z+1)
	for c := range b.placed {
		local := c.Sub(lo)
		grid.Set(local.X, local.Y, local.Z, int(voxel.BlockSolid))
	}

	return grid, nil
}

// Literal exports the placed blocks as a brace literal.
func (b *Builder) Literal() (string, error) {
	grid, err := b.Export()
	if err != nil {
		return "", err
	}

	return voxel.Encode(grid), nil
}

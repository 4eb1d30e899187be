package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// BlockMap holds every cell of a vehicle's bounding box expanded by one air cell on each
// face. Cells live in a flat array indexed from integer coordinates, so pointers returned
// by Lookup stay valid for the lifetime of the map.
type BlockMap struct {
	grid      Grid[Block]
	solids    []Coord
	blockSize float64
	bounds    AABB
}

// BuildExpandedGrid pads occupancy and mass by one air cell on every face and computes each
// block position relative to the grid center.
func BuildExpandedGrid(occupancy Grid[int], mass Grid[float64], blockSize float64) (*BlockMap, error) {
	if !SameSize(occupancy, mass) {
		ox, oy, oz := occupancy.Size()
		mx, my, mz := mass.Size()
		return nil, fmt.Errorf("%w: occupancy %dx%dx%d, mass %dx%dx%d", ErrDimensionMismatch, ox, oy, oz, mx, my, mz)
	}
	if err := ValidateOccupancy(occupancy); err != nil {
		return nil, err
	}

	sx, sy, sz := occupancy.Size()
	grid := NewGrid[Block](sx+2, sy+2, sz+2)
	bm := &BlockMap{
		grid:      grid,
		blockSize: blockSize,
	}

	first := true
	grid.Range(func(c Coord, _ Block) {
		block := Block{
			Type:     BlockAir,
			Position: CenteredPosition(c, sx+2, sy+2, sz+2, blockSize),
		}

		inner := c.Sub(Coord{1, 1, 1})
		if occupancy.Contains(inner) {
			block.Type = BlockType(occupancy.At(inner.X, inner.Y, inner.Z))
			block.Mass = mass.At(inner.X, inner.Y, inner.Z)
		}
		if block.Type == BlockAir {
			block.Mass = 0
		} else {
			bm.solids = append(bm.solids, c)
		}

		if first {
			bm.bounds = AABB{Min: block.Position, Max: block.Position}
			first = false
		} else {
			bm.bounds = bm.bounds.Extend(block.Position)
		}

		grid.Set(c.X, c.Y, c.Z, block)
	})

	return bm, nil
}

// Lookup returns the block at c, or false if c lies outside the expanded grid.
func (bm *BlockMap) Lookup(c Coord) (*Block, bool) {
	if !bm.grid.Contains(c) {
		return nil, false
	}

	return &bm.grid.cells[bm.grid.index(c.X, c.Y, c.Z)], true
}

// Size returns the expanded dimensions.
func (bm *BlockMap) Size() (int, int, int) {
	return bm.grid.Size()
}

func (bm *BlockMap) Len() int {
	return bm.grid.Len()
}

func (bm *BlockMap) BlockSize() float64 {
	return bm.blockSize
}

// Solids returns the coordinates of solid blocks in Range order. The slice must not be
// modified.
func (bm *BlockMap) Solids() []Coord {
	return bm.solids
}

// Bounds returns the box spanned by the block centers, in the vehicle frame.
func (bm *BlockMap) Bounds() AABB {
	return bm.bounds
}

// Range calls fn for every block in x, z, y order.
func (bm *BlockMap) Range(fn func(c Coord, block *Block)) {
	bm.grid.Range(func(c Coord, _ Block) {
		fn(c, &bm.grid.cells[bm.grid.index(c.X, c.Y, c.Z)])
	})
}

// ClearFlooded resets the flooded flag on every block.
func (bm *BlockMap) ClearFlooded() {
	for i := range bm.grid.cells {
		bm.grid.cells[i].Flooded = false
	}
}

// Position returns the vehicle-frame position of c, or false if c is not in the map.
func (bm *BlockMap) Position(c Coord) (mgl64.Vec3, bool) {
	block, ok := bm.Lookup(c)
	if !ok {
		return mgl64.Vec3{}, false
	}

	return block.Position, true
}

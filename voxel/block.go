package voxel

import "github.com/go-gl/mathgl/mgl64"

// BlockType is the occupancy of a cell.
type BlockType int

const (
	BlockAir BlockType = iota
	BlockSolid
)

func (t BlockType) String() string {
	switch t {
	case BlockAir:
		return "air"
	case BlockSolid:
		return "solid"
	default:
		return "unknown"
	}
}

// Block is one cell of a vehicle. Position is relative to the vehicle frame and fixed
// after load; Flooded is mutated by the flood simulation.
type Block struct {
	Type     BlockType
	Mass     float64
	Position mgl64.Vec3
	Flooded  bool
}

func (b *Block) IsSolid() bool {
	return b.Type == BlockSolid
}

package buoy

import (
	"github.com/akmonengine/buoy/flood"
	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// Displacement returns the water volume displaced by a block centered at worldY. It
// treats the block as an unrotated cube.
func Displacement(worldY, blockSize float64) float64 {
	return blockSize * blockSize * flood.SubmergedFraction(worldY, blockSize) * blockSize
}

// DisplacementForce returns the upward force on a block centered at worldY.
func DisplacementForce(worldY, blockSize, waterDensity float64, gravity mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{0, Displacement(worldY, blockSize) * waterDensity * -gravity.Y(), 0}
}

// applyBuoyancy queues gravity at every solid block and, while the vehicle touches the
// water, a displacement force at every block below the water line that is not flooded.
func applyBuoyancy(v *Vehicle, gravity mgl64.Vec3, waterDensity float64) {
	tr := v.Body.Transform
	blockSize := v.Blocks.BlockSize()

	for _, c := range v.Blocks.Solids() {
		block, _ := v.Blocks.Lookup(c)
		v.Body.ApplyForce(tr.TransformPoint(block.Position), gravity.Mul(block.Mass))
	}

	if !v.Flood.InContact() {
		return
	}

	v.Blocks.Range(func(_ voxel.Coord, block *voxel.Block) {
		if block.Flooded {
			return
		}

		position := tr.TransformPoint(block.Position)
		if flood.InWaterContact(position.Y(), blockSize) {
			v.Body.ApplyForce(position, DisplacementForce(position.Y(), blockSize, waterDensity, gravity))
		}
	})
}

package actor

import (
	"github.com/akmonengine/buoy/voxel"
	"github.com/go-gl/mathgl/mgl64"
)

// MassProperties describes the mass distribution of a vehicle, in the vehicle frame.
type MassProperties struct {
	Total        float64
	CenterOfMass mgl64.Vec3

	distribution voxel.Grid[float64]
	blockSize    float64
}

// ComputeMassProperties derives total mass and center of mass from a mass grid. Cell
// positions are centered on the grid and scaled by blockSize.
func ComputeMassProperties(mass voxel.Grid[float64], blockSize float64) MassProperties {
	return MassProperties{
		Total:        TotalMass(mass),
		CenterOfMass: CenterOfMass(mass, blockSize),
		distribution: mass,
		blockSize:    blockSize,
	}
}

// InertiaAbout returns the moment of inertia about an axis (vehicle frame) through the
// center of mass.
func (mp MassProperties) InertiaAbout(axis mgl64.Vec3) float64 {
	return MomentOfInertia(axis, mp.distribution, mp.CenterOfMass, mp.blockSize)
}

// CenterOfMass computes a running weighted average: every nonzero cell pulls the current
// estimate towards itself by newMass/(processed+newMass). Zero-mass cells are skipped.
func CenterOfMass(mass voxel.Grid[float64], blockSize float64) mgl64.Vec3 {
	sx, sy, sz := mass.Size()

	var com mgl64.Vec3
	processed := 0.0
	mass.Range(func(c voxel.Coord, m float64) {
		if m == 0 {
			return
		}

		point := voxel.CenteredPosition(c, sx, sy, sz, blockSize)
		t := m / (processed + m)
		com = com.Add(point.Sub(com).Mul(t))
		processed += m
	})

	return com
}

// TotalMass sums every cell.
func TotalMass(mass voxel.Grid[float64]) float64 {
	total := 0.0
	mass.Range(func(_ voxel.Coord, m float64) {
		total += m
	})

	return total
}

// MomentOfInertia sums mass * squared distance to the axis passing through com.
// A zero axis has no defined inertia and yields 0.
func MomentOfInertia(axis mgl64.Vec3, mass voxel.Grid[float64], com mgl64.Vec3, blockSize float64) float64 {
	if axis.Len() == 0 {
		return 0
	}

	sx, sy, sz := mass.Size()
	inertia := 0.0
	mass.Range(func(c voxel.Coord, m float64) {
		if m == 0 {
			return
		}

		point := voxel.CenteredPosition(c, sx, sy, sz, blockSize)
		radius := point.Sub(ProjectOntoAxis(axis, point, com))
		inertia += radius.Dot(radius) * m
	})

	return inertia
}

// ProjectOntoAxis projects point onto the line through origin along axis.
func ProjectOntoAxis(axis, point, origin mgl64.Vec3) mgl64.Vec3 {
	n := axis.Normalize()
	return n.Mul(point.Sub(origin).Dot(n)).Add(origin)
}

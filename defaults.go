package buoy

import (
	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/voxel"
)

// DefaultVehicleName names the hull built by DefaultVehicle.
const DefaultVehicleName = "default-hull"

// DefaultVehicleLayout is a small open hull, 5 wide (X), 3 high (Y) and 5 long (Z).
const DefaultVehicleLayout = `{
    {{0, 0, 0}, {0, 0, 0}, {0, 1, 1}, {0, 0, 0}, {0, 0, 0}},
    {{0, 1, 0}, {1, 1, 1}, {1, 0, 0}, {1, 1, 1}, {0, 1, 0}},
    {{1, 1, 1}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 1, 1}},
    {{1, 1, 1}, {1, 0, 0}, {1, 0, 0}, {1, 0, 0}, {1, 1, 1}},
    {{0, 1, 0}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {0, 1, 0}}
}`

// DefaultOccupancy parses DefaultVehicleLayout.
func DefaultOccupancy() voxel.Grid[int] {
	g, err := voxel.Parse(DefaultVehicleLayout)
	if err != nil {
		panic(err)
	}

	return g
}

// DefaultVehicle builds the default hull with uniform block mass.
func DefaultVehicle(physics config.Physics) (*Vehicle, error) {
	return NewUniformVehicle(DefaultVehicleName, DefaultOccupancy(), physics)
}

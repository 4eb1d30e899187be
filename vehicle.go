package buoy

import (
	"errors"
	"fmt"

	"github.com/akmonengine/buoy/actor"
	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/flood"
	"github.com/akmonengine/buoy/voxel"
	"github.com/google/uuid"
)

var ErrMassless = errors.New("buoy: vehicle has no mass")

// Vehicle bundles everything derived from one vehicle layout: the padded block map, the
// mass properties and pose, and the flood state. A World replaces it as a whole on load.
type Vehicle struct {
	ID          uuid.UUID
	Name        string
	Fingerprint uint64

	Occupancy voxel.Grid[int]
	Blocks    *voxel.BlockMap
	Body      *actor.RigidBody
	Flood     *flood.Flood

	// SecureHeight is the frame height above which no block can touch the water.
	SecureHeight float64

	settle settleState
}

// NewVehicle builds a vehicle at the origin from an occupancy grid and a mass grid of the
// same dimensions.
func NewVehicle(name string, occupancy voxel.Grid[int], mass voxel.Grid[float64], blockSize float64) (*Vehicle, error) {
	blocks, err := voxel.BuildExpandedGrid(occupancy, mass, blockSize)
	if err != nil {
		return nil, fmt.Errorf("vehicle %q: %w", name, err)
	}

	props := actor.ComputeMassProperties(mass, blockSize)
	if !(props.Total > 0) {
		return nil, fmt.Errorf("%w: %q", ErrMassless, name)
	}

	secureHeight := flood.SecureHeight(blocks)

	return &Vehicle{
		ID:           uuid.New(),
		Name:         name,
		Fingerprint:  voxel.Fingerprint(occupancy),
		Occupancy:    occupancy,
		Blocks:       blocks,
		Body:         actor.NewRigidBody(actor.NewTransform(), props),
		Flood:        flood.New(blocks, secureHeight),
		SecureHeight: secureHeight,
	}, nil
}

// NewUniformVehicle builds a vehicle whose solid blocks all weigh physics.BlockMass().
func NewUniformVehicle(name string, occupancy voxel.Grid[int], physics config.Physics) (*Vehicle, error) {
	return NewVehicle(name, occupancy, voxel.UniformMass(occupancy, physics.BlockMass()), physics.BlockSize)
}

// Settling reports whether the vehicle is still being lowered into the water.
func (v *Vehicle) Settling() bool {
	return v.settle.active
}

package buoy

import (
	"errors"
	"math"
	"testing"

	"github.com/akmonengine/buoy/voxel"
)

func TestNewVehicle_Errors(t *testing.T) {
	occ := voxel.NewGrid[int](2, 1, 1)
	occ.Set(0, 0, 0, 1)

	tests := []struct {
		name      string
		occupancy voxel.Grid[int]
		mass      voxel.Grid[float64]
		wantErr   error
	}{
		{"dimension mismatch", occ, voxel.NewGrid[float64](1, 1, 1), voxel.ErrDimensionMismatch},
		{"massless", occ, voxel.NewGrid[float64](2, 1, 1), ErrMassless},
		{"empty", voxel.NewGrid[int](0, 1, 1), voxel.NewGrid[float64](0, 1, 1), voxel.ErrEmptyGrid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewVehicle(tt.name, tt.occupancy, tt.mass, 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewVehicle() error = %v, want %v", err, tt.wantErr)
			}
			if v != nil {
				t.Errorf("NewVehicle() returned a vehicle on error")
			}
		})
	}
}

func TestDefaultVehicle(t *testing.T) {
	physics := testPhysics()

	v, err := DefaultVehicle(physics)
	if err != nil {
		t.Fatalf("DefaultVehicle() error = %v", err)
	}

	if got := len(v.Blocks.Solids()); got != 40 {
		t.Errorf("solid blocks = %d, want 40", got)
	}
	if !almostEqual(v.Body.Mass.Total, 40*1050, 1e-9) {
		t.Errorf("mass = %v, want %v", v.Body.Mass.Total, 40*1050)
	}
	sx, sy, sz := v.Blocks.Size()
	if sx != 7 || sy != 5 || sz != 7 {
		t.Errorf("expanded size = %dx%dx%d, want 7x5x7", sx, sy, sz)
	}
	if !almostEqual(v.SecureHeight, math.Sqrt(22)+1, 1e-12) {
		t.Errorf("SecureHeight = %v, want %v", v.SecureHeight, math.Sqrt(22)+1)
	}
	if v.Fingerprint != voxel.Fingerprint(DefaultOccupancy()) {
		t.Errorf("Fingerprint = %x, want %x", v.Fingerprint, voxel.Fingerprint(DefaultOccupancy()))
	}
}

func TestDefaultOccupancy_Layout(t *testing.T) {
	occ := DefaultOccupancy()

	sx, sy, sz := occ.Size()
	if sx != 5 || sy != 3 || sz != 5 {
		t.Fatalf("size = %dx%dx%d, want 5x3x5", sx, sy, sz)
	}

	tests := []struct {
		x, y, z int
		want    int
	}{
		{0, 1, 2, 1},
		{0, 2, 2, 1},
		{0, 0, 2, 0},
		{1, 1, 0, 1},
		{2, 0, 0, 1},
		{2, 1, 2, 0},
		{4, 1, 2, 1},
	}
	for _, tt := range tests {
		if got := occ.At(tt.x, tt.y, tt.z); got != tt.want {
			t.Errorf("At(%d, %d, %d) = %d, want %d", tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestNewVehicle_CenterOfMassUsesBlockSize(t *testing.T) {
	physics := testPhysics()
	physics.BlockSize = 2

	occ := voxel.NewGrid[int](2, 1, 1)
	occ.Set(1, 0, 0, 1)
	v, err := NewUniformVehicle("offset", occ, physics)
	if err != nil {
		t.Fatalf("NewUniformVehicle() error = %v", err)
	}

	if !almostEqual(v.Body.Mass.CenterOfMass.X(), 1, 1e-12) {
		t.Errorf("CenterOfMass = %v, want x=1", v.Body.Mass.CenterOfMass)
	}
	if !almostEqual(v.Body.Mass.Total, 1050*8, 1e-9) {
		t.Errorf("mass = %v, want %v", v.Body.Mass.Total, 1050*8)
	}
}

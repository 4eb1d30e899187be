// Package vehiclefile reads and writes vehicle descriptors: a YAML document holding a
// name, an optional block density and the occupancy layout as a brace literal.
package vehiclefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/buoy"
	"github.com/akmonengine/buoy/config"
	"github.com/akmonengine/buoy/voxel"
	"gopkg.in/yaml.v3"
)

var ErrFingerprintMismatch = errors.New("vehiclefile: layout does not match fingerprint")

// File is the on-disk form of a vehicle.
type File struct {
	Name string `yaml:"name"`
	// BlockDensity overrides physics.blockDensity when positive.
	BlockDensity float64 `yaml:"blockDensity,omitempty"`
	// Fingerprint is the hex xxhash of the layout. It is checked when present.
	Fingerprint string `yaml:"fingerprint,omitempty"`
	Layout      string `yaml:"layout"`
}

// New describes occupancy under name, stamping its fingerprint.
func New(name string, occupancy voxel.Grid[int]) File {
	return File{
		Name:        name,
		Fingerprint: voxel.FingerprintString(occupancy),
		Layout:      voxel.Encode(occupancy),
	}
}

// Occupancy parses the layout and checks it against the fingerprint.
func (f File) Occupancy() (voxel.Grid[int], error) {
	grid, err := voxel.Parse(f.Layout)
	if err != nil {
		return voxel.Grid[int]{}, fmt.Errorf("vehicle %q: %w", f.Name, err)
	}
	if err := voxel.ValidateOccupancy(grid); err != nil {
		return voxel.Grid[int]{}, fmt.Errorf("vehicle %q: %w", f.Name, err)
	}

	if f.Fingerprint != "" {
		if got := voxel.FingerprintString(grid); got != f.Fingerprint {
			return voxel.Grid[int]{}, fmt.Errorf("%w: vehicle %q has %s, file says %s", ErrFingerprintMismatch, f.Name, got, f.Fingerprint)
		}
	}

	return grid, nil
}

// Vehicle builds the described vehicle with uniform block mass.
func (f File) Vehicle(physics config.Physics) (*buoy.Vehicle, error) {
	grid, err := f.Occupancy()
	if err != nil {
		return nil, err
	}

	if f.BlockDensity > 0 {
		physics.BlockDensity = f.BlockDensity
	}

	return buoy.NewUniformVehicle(f.Name, grid, physics)
}

func Read(r io.Reader) (File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("decode vehicle file: %w", err)
	}

	return f, nil
}

func Write(w io.Writer, f File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode vehicle file: %w", err)
	}

	return enc.Close()
}

// Load reads the vehicle file at path.
func Load(path string) (File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return File{}, err
	}
	defer fh.Close()

	return Read(fh)
}

// Save writes f to path, replacing any existing file.
func Save(path string, f File) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(fh, f); err != nil {
		fh.Close()
		return err
	}

	return fh.Close()
}

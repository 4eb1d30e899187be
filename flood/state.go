package flood

import (
	"errors"
	"fmt"

	"github.com/akmonengine/buoy/actor"
	"github.com/akmonengine/buoy/voxel"
)

// ErrMissingBlock reports a coordinate the flood bookkeeping expected in the block map.
var ErrMissingBlock = errors.New("flood: block missing from block map")

// State of the flood machine
type State uint8

const (
	Dry State = iota
	InitialContact
	Flooding
)

func (s State) String() string {
	switch s {
	case Dry:
		return "dry"
	case InitialContact:
		return "initial_contact"
	case Flooding:
		return "flooding"
	default:
		return "unknown"
	}
}

// Entry is one flooded cell of the frontier.
type Entry struct {
	Coord voxel.Coord
	Block *voxel.Block
}

// Report summarizes what an Update changed.
type Report struct {
	State State

	// Entered is set on the step contact starts, Exited on the step it is lost.
	Entered bool
	Exited  bool

	// Seeded is set when a seed was placed this step; SeedMissing when contact had no
	// lower air neighbor to seed from.
	Seeded      bool
	Seed        voxel.Coord
	SeedMissing bool

	Added   int
	Removed int
}

// Flood owns the flooded flags of a block map. It is not safe for concurrent use.
type Flood struct {
	blocks       *voxel.BlockMap
	blockSize    float64
	secureHeight float64

	state        State
	inContact    bool
	wasInContact bool
	contact      voxel.Coord

	// two buffers: the next frontier is built into spare, then swapped
	frontier []Entry
	spare    []Entry
	grown    []Entry
}

// New creates a dry flood state over blocks. Flags already set on blocks are cleared.
func New(blocks *voxel.BlockMap, secureHeight float64) *Flood {
	blocks.ClearFlooded()

	return &Flood{
		blocks:       blocks,
		blockSize:    blocks.BlockSize(),
		secureHeight: secureHeight,
		frontier:     make([]Entry, 0, 64),
		spare:        make([]Entry, 0, 64),
		grown:        make([]Entry, 0, 64),
	}
}

func (f *Flood) State() State {
	return f.state
}

// InContact reports whether the last Update found a solid block touching the water.
func (f *Flood) InContact() bool {
	return f.inContact
}

// Contact returns the solid block found touching the water by the last Update.
func (f *Flood) Contact() (voxel.Coord, bool) {
	return f.contact, f.inContact
}

// Frontier returns the flooded cells. The slice is owned by f and reused on the next Update.
func (f *Flood) Frontier() []Entry {
	return f.frontier
}

func (f *Flood) Len() int {
	return len(f.frontier)
}

func (f *Flood) SecureHeight() float64 {
	return f.secureHeight
}

// Update advances the flood state by one step for the vehicle pose tr.
//
// Above the secure height no block is scanned and any flooded cell is drained. Below it,
// the first solid block touching the water decides contact: a fresh contact seeds the
// frontier, a continued contact expands it by one layer and a lost contact drains it.
func (f *Flood) Update(tr actor.Transform) (Report, error) {
	var report Report

	if tr.Position.Y() > f.secureHeight {
		report.Exited = f.inContact
		report.Removed = f.Drain()
		f.inContact = false
		f.wasInContact = false
		f.state = Dry
		report.State = f.state

		return report, nil
	}

	f.wasInContact = f.inContact
	f.contact, f.inContact = f.DetectContact(tr)

	seedTried := false
	switch {
	case f.inContact && !f.wasInContact:
		report.Entered = true
		if err := f.seedInto(tr, &report); err != nil {
			return report, err
		}
		seedTried = true
	case f.inContact && f.wasInContact:
		report.Added, report.Removed = f.Expand(tr)
	case !f.inContact && f.wasInContact:
		report.Exited = true
		report.Removed = f.Drain()
	}

	if f.inContact && len(f.frontier) == 0 && !seedTried {
		if err := f.seedInto(tr, &report); err != nil {
			return report, err
		}
	}

	switch {
	case !f.inContact:
		f.state = Dry
	case report.Seeded || len(f.frontier) == 0:
		f.state = InitialContact
	default:
		f.state = Flooding
	}
	report.State = f.state

	return report, nil
}

func (f *Flood) seedInto(tr actor.Transform, report *Report) error {
	seed, ok, err := f.Seed(tr, f.contact)
	if err != nil {
		return err
	}

	report.Seeded = ok
	report.SeedMissing = !ok
	if ok {
		report.Seed = seed
		report.Added++
	}

	return nil
}

// DetectContact returns the first solid block, in block map order, whose center touches
// the water.
func (f *Flood) DetectContact(tr actor.Transform) (voxel.Coord, bool) {
	for _, c := range f.blocks.Solids() {
		block, _ := f.blocks.Lookup(c)
		if InWaterContact(tr.TransformPoint(block.Position).Y(), f.blockSize) {
			return c, true
		}
	}

	return voxel.Coord{}, false
}

// Seed floods the lowest air neighbor of contact. Neighbors are scanned in voxel.Neighbors
// order and a candidate must lie strictly lower than the best so far, starting from the
// contact block itself; the first one found wins ties. It returns false if no air
// neighbor is lower than the contact block.
func (f *Flood) Seed(tr actor.Transform, contact voxel.Coord) (voxel.Coord, bool, error) {
	origin, ok := f.blocks.Lookup(contact)
	if !ok {
		return voxel.Coord{}, false, fmt.Errorf("%w: contact %v", ErrMissingBlock, contact)
	}

	lowest := tr.TransformPoint(origin.Position).Y()
	var (
		best      *voxel.Block
		bestCoord voxel.Coord
	)
	for _, offset := range voxel.Neighbors {
		c := contact.Add(offset)
		neighbor, ok := f.blocks.Lookup(c)
		if !ok {
			continue
		}

		y := tr.TransformPoint(neighbor.Position).Y()
		if y < lowest && neighbor.Type == voxel.BlockAir {
			lowest = y
			best = neighbor
			bestCoord = c
		}
	}

	if best == nil {
		return voxel.Coord{}, false, nil
	}
	if !best.Flooded {
		best.Flooded = true
		f.frontier = append(f.frontier, Entry{Coord: bestCoord, Block: best})
	}

	return bestCoord, true, nil
}

// Expand advances the frontier by one layer. Entries that left the water are unflooded
// and dropped; the others stay and flood every air neighbor that is below the water and
// not yet flooded. Kept entries come first in the new frontier, grown ones after.
func (f *Flood) Expand(tr actor.Transform) (added, removed int) {
	next := f.spare[:0]
	grown := f.grown[:0]

	for _, entry := range f.frontier {
		if !InWaterContact(tr.TransformPoint(entry.Block.Position).Y(), f.blockSize) {
			entry.Block.Flooded = false
			removed++
			continue
		}
		next = append(next, entry)

		for _, offset := range voxel.Neighbors {
			c := entry.Coord.Add(offset)
			neighbor, ok := f.blocks.Lookup(c)
			if !ok || neighbor.Flooded || neighbor.Type != voxel.BlockAir {
				continue
			}

			if InWaterContact(tr.TransformPoint(neighbor.Position).Y(), f.blockSize) {
				neighbor.Flooded = true
				grown = append(grown, Entry{Coord: c, Block: neighbor})
			}
		}
	}

	next = append(next, grown...)
	f.frontier, f.spare = next, f.frontier
	f.grown = grown

	return len(grown), removed
}

// Reset drains the frontier and forgets any water contact.
func (f *Flood) Reset() {
	f.Drain()
	f.inContact = false
	f.wasInContact = false
	f.contact = voxel.Coord{}
	f.state = Dry
}

// Drain unfloods every frontier cell and empties the frontier. It returns how many cells
// were drained.
func (f *Flood) Drain() int {
	n := len(f.frontier)
	for _, entry := range f.frontier {
		entry.Block.Flooded = false
	}
	f.frontier = f.frontier[:0]

	return n
}

package voxel

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the dimensions and cells of an occupancy grid. Two grids with the same
// layout have the same fingerprint.
func Fingerprint(g Grid[int]) uint64 {
	h := xxhash.New()

	var buf [8]byte
	for _, n := range [3]int{g.sx, g.sy, g.sz} {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		_, _ = h.Write(buf[:])
	}
	for _, v := range g.cells {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}

// FingerprintString formats Fingerprint as 16 hex digits.
func FingerprintString(g Grid[int]) string {
	return fmt.Sprintf("%016x", Fingerprint(g))
}

package builder

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/akmonengine/buoy/voxel"
)

var ErrBadCommand = errors.New("builder: bad command")

// Exec runs one script line. Blank lines and lines starting with '#' are ignored.
//
//	x y z              place a block at (x, y, z)
//	place x y z        same
//	remove x y z       remove the block at (x, y, z)
//	goto x y z         move the cursor to (x, y, z)
//	move fwd right up  move the cursor along its yaw
//	turn degrees       turn the cursor
//	put                place a block at the cursor
//	erase              remove the block at the cursor
func (b *Builder) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	name, args := strings.ToLower(fields[0]), fields[1:]
	if _, err := strconv.Atoi(name); err == nil {
		name, args = "place", fields
	}

	switch name {
	case "place", "remove", "goto":
		c, err := parseCoord(args)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		switch name {
		case "place":
			b.Place(c)
		case "remove":
			b.Remove(c)
		default:
			b.Cursor.Position = c
		}
	case "move":
		if len(args) != 3 {
			return fmt.Errorf("%w: move wants forward, right and up", ErrBadCommand)
		}
		forward, err1 := strconv.ParseFloat(args[0], 64)
		right, err2 := strconv.ParseFloat(args[1], 64)
		up, err3 := strconv.Atoi(args[2])
		if err := errors.Join(err1, err2, err3); err != nil {
			return fmt.Errorf("%w: move: %w", ErrBadCommand, err)
		}
		b.Cursor.Move(forward, right, up)
	case "turn":
		if len(args) != 1 {
			return fmt.Errorf("%w: turn wants one angle", ErrBadCommand)
		}
		degrees, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("%w: turn: %w", ErrBadCommand, err)
		}
		b.Cursor.Turn(degrees)
	case "put":
		b.PlaceAtCursor()
	case "erase":
		b.RemoveAtCursor()
	default:
		return fmt.Errorf("%w: unknown command %q", ErrBadCommand, fields[0])
	}

	return nil
}

// Run executes every line of r, stopping at the first failing one.
func (b *Builder) Run(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		if err := b.Exec(scanner.Text()); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}

	return scanner.Err()
}

func parseCoord(args []string) (voxel.Coord, error) {
	if len(args) != 3 {
		return voxel.Coord{}, fmt.Errorf("%w: want 3 integers, got %d", ErrBadCommand, len(args))
	}

	var xyz [3]int
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return voxel.Coord{}, fmt.Errorf("%w: %w", ErrBadCommand, err)
		}
		xyz[i] = v
	}

	return voxel.Coord{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

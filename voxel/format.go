package voxel

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrMalformedLiteral = errors.New("voxel: malformed grid literal")

// braces maps the brace literal onto a YAML flow sequence.
var braces = strings.NewReplacer("{", "[", "}", "]")

// Encode prints an occupancy grid as a nested brace literal. The outer list is X, the
// middle list is Z and the inner list is Y, each in ascending order.
func Encode(g Grid[int]) string {
	var sb strings.Builder

	sb.WriteString("{\n")
	for x := 0; x < g.sx; x++ {
		sb.WriteString("    {")
		for z := 0; z < g.sz; z++ {
			sb.WriteString("{")
			for y := 0; y < g.sy; y++ {
				sb.WriteString(strconv.Itoa(g.At(x, y, z)))
				if y != g.sy-1 {
					sb.WriteString(", ")
				}
			}
			sb.WriteString("}")
			if z != g.sz-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("}")
		if x != g.sx-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}")

	return sb.String()
}

// Parse reads a nested brace literal written by Encode. Rows must be rectangular.
func Parse(literal string) (Grid[int], error) {
	var rows [][][]int
	if err := yaml.Unmarshal([]byte(braces.Replace(literal)), &rows); err != nil {
		return Grid[int]{}, fmt.Errorf("%w: %v", ErrMalformedLiteral, err)
	}

	sx := len(rows)
	if sx == 0 || len(rows[0]) == 0 || len(rows[0][0]) == 0 {
		return Grid[int]{}, ErrEmptyGrid
	}
	sz, sy := len(rows[0]), len(rows[0][0])

	g := NewGrid[int](sx, sy, sz)
	for x, plane := range rows {
		if len(plane) != sz {
			return Grid[int]{}, fmt.Errorf("%w: x=%d has %d rows, want %d", ErrMalformedLiteral, x, len(plane), sz)
		}
		for z, column := range plane {
			if len(column) != sy {
				return Grid[int]{}, fmt.Errorf("%w: x=%d z=%d has %d cells, want %d", ErrMalformedLiteral, x, z, len(column), sy)
			}
			for y, value := range column {
				g.Set(x, y, z, value)
			}
		}
	}

	return g, nil
}

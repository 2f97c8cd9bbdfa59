package t2048

import (
	"fmt"
	"strconv"
	"strings"
)

// Direction is a move direction code. The numeric values are the codes an
// input collaborator emits.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists every direction in code order.
var Directions = [...]Direction{DirUp, DirRight, DirDown, DirLeft}

// Vector is a unit step on the grid.
type Vector struct {
	X, Y int
}

var vectors = [...]Vector{
	DirUp:    {X: 0, Y: -1},
	DirRight: {X: 1, Y: 0},
	DirDown:  {X: 0, Y: 1},
	DirLeft:  {X: -1, Y: 0},
}

// Valid reports whether d is one of the four direction codes.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirLeft
}

// Vector returns the unit step for d. Unknown codes map to the zero vector.
func (d Direction) Vector() Vector {
	if !d.Valid() {
		return Vector{}
	}
	return vectors[d]
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts a direction name (case-insensitive) or its numeric code.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range Directions {
		if s == d.String() {
			return d, nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && Direction(n).Valid() {
		return Direction(n), nil
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

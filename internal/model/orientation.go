package model

import (
	"fmt"
	"strings"
)

// Orientation is a compass direction used to lay a ship out from its start
// cell. North steps toward row A, East toward higher columns.
type Orientation string

const (
	North Orientation = "north"
	East  Orientation = "east"
	South Orientation = "south"
	West  Orientation = "west"
)

// ValidOrientations returns the orientations a placement accepts.
func ValidOrientations() []Orientation {
	return []Orientation{North, East, South, West}
}

// ParseOrientation parses an orientation name, accepting any case and the
// single-letter compass abbreviation.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

// Valid reports whether the orientation is one of the four compass directions.
func (o Orientation) Valid() bool {
	switch o {
	case North, East, South, West:
		return true
	}
	return false
}

// Step returns the (row, column) unit deltas for one cell of movement in
// this direction.
func (o Orientation) Step() (int, int) {
	switch o {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	}
	return 0, 0
}

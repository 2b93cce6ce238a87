package model

import (
	"fmt"
	"strings"
)

// Ship describes a fleet member: an identity label and the number of cells
// it occupies. Ship is a plain comparable value; two independently
// constructed ships with the same name and size are interchangeable.
type Ship struct {
	Name string
	Size int
}

// String returns the conventional "Name(size)" form, e.g. "Carrier(5)".
func (s Ship) String() string {
	return fmt.Sprintf("%s(%d)", s.Name, s.Size)
}

// Fleet is the read-only registry of ships a board must field, in display
// order.
type Fleet []Ship

// StandardFleet returns the fixed five-ship fleet. Two ships share size 3
// but are distinct identities.
func StandardFleet() Fleet {
	return Fleet{
		{Name: "Destroyer", Size: 2},
		{Name: "Submarine", Size: 3},
		{Name: "Cruiser", Size: 3},
		{Name: "Battleship", Size: 4},
		{Name: "Carrier", Size: 5},
	}
}

// ByName looks a ship up by its name, case-insensitively.
func (f Fleet) ByName(name string) (Ship, bool) {
	for _, ship := range f {
		if strings.EqualFold(ship.Name, name) {
			return ship, true
		}
	}
	return Ship{}, false
}

// Contains reports whether the fleet includes the given ship identity.
func (f Fleet) Contains(ship Ship) bool {
	for _, s := range f {
		if s == ship {
			return true
		}
	}
	return false
}

package model

import (
	"fmt"
	"sort"
)

// Cell is the shot state of a single grid cell as seen by an attacker.
type Cell string

const (
	CellUnknown Cell = "unknown"
	CellMiss    Cell = "miss"
	CellHit     Cell = "hit"
)

// ShipPlacement records where one ship sits on a board.
type ShipPlacement struct {
	Ship  Ship
	Cells []Coord // the straight contiguous run the ship occupies
}

// Board owns one participant's ship placements and incoming shot history.
// Placements never overlap, every placed cell is in bounds, and the shot
// history only grows. All mutation is validate-then-commit: a failed call
// leaves the board untouched.
type Board struct {
	Placements []ShipPlacement // insertion order; at most one entry per ship identity
	Shots      []Coord
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Contains reports whether the coordinate lies within the board's bounds.
func (b *Board) Contains(c Coord) bool {
	return c.InBounds()
}

// HasShot reports whether the coordinate has already been shot.
func (b *Board) HasShot(c Coord) bool {
	for _, shot := range b.Shots {
		if shot == c {
			return true
		}
	}
	return false
}

// Placement returns the recorded placement for a ship identity.
func (b *Board) Placement(ship Ship) (ShipPlacement, bool) {
	for _, p := range b.Placements {
		if p.Ship == ship {
			return p, true
		}
	}
	return ShipPlacement{}, false
}

// ShipAt returns the ship occupying the coordinate, if any.
func (b *Board) ShipAt(c Coord) (Ship, bool) {
	for _, p := range b.Placements {
		for _, cell := range p.Cells {
			if cell == c {
				return p.Ship, true
			}
		}
	}
	return Ship{}, false
}

// AddShip records a ship at an explicit list of cells.
// Validation order: the ship must not already be placed, the cell count must
// match the ship's size, the cells must form a straight contiguous run in one
// row or one column, every cell must be in bounds, and no cell may belong to
// another ship. Any failure aborts with no mutation.
func (b *Board) AddShip(ship Ship, cells []Coord) error {
	if _, ok := b.Placement(ship); ok {
		return fmt.Errorf("%w: %s", ErrShipAlreadyPlaced, ship)
	}
	if len(cells) != ship.Size {
		return fmt.Errorf("%w: %s needs %d, got %d", ErrCoordinateCount, ship, ship.Size, len(cells))
	}
	if !isStraightRun(cells) {
		return fmt.Errorf("%w: %s", ErrCellsNotContiguous, ship)
	}
	for _, c := range cells {
		if !b.Contains(c) {
			return fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
		}
	}
	for _, c := range cells {
		if other, ok := b.ShipAt(c); ok {
			return fmt.Errorf("%w: %s at %s", ErrCellOccupied, other, c)
		}
	}
	placed := make([]Coord, len(cells))
	copy(placed, cells)
	b.Placements = append(b.Placements, ShipPlacement{Ship: ship, Cells: placed})
	return nil
}

// PlaceShip records a ship by start cell and orientation, stepping one cell
// per size unit in the orientation's direction. The generated run is subject
// to the same validation as AddShip.
func (b *Board) PlaceShip(ship Ship, start Coord, o Orientation) error {
	if !o.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, o)
	}
	cells := make([]Coord, 0, ship.Size)
	c := start
	for i := 0; i < ship.Size; i++ {
		cells = append(cells, c)
		c = c.Step(o)
	}
	return b.AddShip(ship, cells)
}

// ReceiveShot records a shot and reports whether it hit a ship. A coordinate
// can only be shot once; a repeat fails and records nothing.
func (b *Board) ReceiveShot(c Coord) (bool, error) {
	if b.HasShot(c) {
		return false, fmt.Errorf("%w: %s", ErrAlreadyShot, c)
	}
	b.Shots = append(b.Shots, c)
	_, hit := b.ShipAt(c)
	return hit, nil
}

// ShipsAfloat returns the placed ships that still have at least one unshot
// cell, in placement order. Recomputed on each call.
func (b *Board) ShipsAfloat() []Ship {
	afloat := make([]Ship, 0, len(b.Placements))
	for _, p := range b.Placements {
		if !b.allShot(p.Cells) {
			afloat = append(afloat, p.Ship)
		}
	}
	return afloat
}

// IsSunk reports whether every cell of the ship's placement has been shot.
// An unplaced ship is not sunk.
func (b *Board) IsSunk(ship Ship) bool {
	p, ok := b.Placement(ship)
	if !ok {
		return false
	}
	return b.allShot(p.Cells)
}

// FleetComplete reports whether every ship of the fleet has been placed.
func (b *Board) FleetComplete(fleet Fleet) bool {
	for _, ship := range fleet {
		if _, ok := b.Placement(ship); !ok {
			return false
		}
	}
	return true
}

// Matrix returns a GridSize×GridSize snapshot of shot outcomes: hit where a
// shot found a ship, miss where it found water, unknown where nothing has
// landed yet. The snapshot is independent of the board.
func (b *Board) Matrix() [][]Cell {
	m := make([][]Cell, GridSize)
	for r := range m {
		m[r] = make([]Cell, GridSize)
		for c := range m[r] {
			m[r][c] = CellUnknown
		}
	}
	for _, shot := range b.Shots {
		if !shot.InBounds() {
			continue
		}
		state := CellMiss
		if _, hit := b.ShipAt(shot); hit {
			state = CellHit
		}
		m[shot.rowIndex()][shot.colIndex()] = state
	}
	return m
}

func (b *Board) allShot(cells []Coord) bool {
	for _, c := range cells {
		if !b.HasShot(c) {
			return false
		}
	}
	return true
}

// isStraightRun reports whether the cells sit in a single row or column and,
// once sorted, step by exactly one cell each. Order of the input does not
// matter; duplicates fail the run check.
func isStraightRun(cells []Coord) bool {
	if len(cells) == 0 {
		return false
	}
	first := cells[0]
	sameRow, sameCol := true, true
	for _, c := range cells[1:] {
		sameRow = sameRow && c.Row == first.Row
		sameCol = sameCol && c.Col == first.Col
	}
	switch {
	case sameRow:
		cols := make([]int, len(cells))
		for i, c := range cells {
			cols[i] = c.Col
		}
		return consecutive(cols)
	case sameCol:
		rows := make([]int, len(cells))
		for i, c := range cells {
			rows[i] = int(c.Row)
		}
		return consecutive(rows)
	}
	return false
}

func consecutive(values []int) bool {
	sort.Ints(values)
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1]+1 {
			return false
		}
	}
	return true
}

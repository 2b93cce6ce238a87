package model

import (
	"fmt"
	"strconv"
)

// GridSize is the number of rows and columns on a board.
const GridSize = 10

// Row and column bounds. Rows are letters counted from MinRow, columns are
// numbers counted from MinCol.
const (
	MinRow rune = 'A'
	MaxRow rune = MinRow + GridSize - 1
	MinCol int  = 1
	MaxCol int  = GridSize
)

// Coord identifies a cell on a board by row letter and column number
type Coord struct {
	Row rune // 'A' through 'J', top to bottom
	Col int  // 1 through 10, left to right
}

// ParseCoord parses the text form of a coordinate, e.g. "B7" or "J10".
// Row letters are case-sensitive and must be uppercase, and the column is
// an unsigned decimal number. Parsing does not check bounds; a coordinate
// like "K1" parses and fails InBounds.
func ParseCoord(s string) (Coord, error) {
	if len(s) < 2 {
		return Coord{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidCoordinate, s)
	}
	row := rune(s[0])
	if row < 'A' || row > 'Z' {
		return Coord{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidCoordinate, s)
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return Coord{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidCoordinate, s)
		}
	}
	col, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coord{}, fmt.Errorf("%w: cannot parse %q", ErrInvalidCoordinate, s)
	}
	return Coord{Row: row, Col: col}, nil
}

// String returns the text form of the coordinate, e.g. "B7".
func (c Coord) String() string {
	return fmt.Sprintf("%c%d", c.Row, c.Col)
}

// MarshalText encodes the coordinate as its text form, so JSON carries "B7"
// rather than a rune/int pair.
func (c Coord) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses the text form of a coordinate.
func (c *Coord) UnmarshalText(text []byte) error {
	parsed, err := ParseCoord(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// InBounds reports whether the coordinate lies within the grid.
func (c Coord) InBounds() bool {
	return c.Row >= MinRow && c.Row <= MaxRow && c.Col >= MinCol && c.Col <= MaxCol
}

// Step returns the coordinate one cell away in the given direction.
func (c Coord) Step(o Orientation) Coord {
	dr, dc := o.Step()
	return c.Offset(dr, dc)
}

// Offset returns the coordinate shifted by the given row and column deltas.
func (c Coord) Offset(rowDelta, colDelta int) Coord {
	return Coord{Row: c.Row + rune(rowDelta), Col: c.Col + colDelta}
}

// rowIndex and colIndex convert to 0-based matrix indexes.
func (c Coord) rowIndex() int { return int(c.Row - MinRow) }
func (c Coord) colIndex() int { return c.Col - MinCol }

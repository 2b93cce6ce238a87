package model

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// at and cells build coordinates from their text form; they panic on
// malformed literals since those are test bugs.
func at(s string) Coord {
	c, err := ParseCoord(s)
	if err != nil {
		panic(err)
	}
	return c
}

func cells(coords ...string) []Coord {
	out := make([]Coord, len(coords))
	for i, s := range coords {
		out[i] = at(s)
	}
	return out
}

type BoardSuite struct {
	suite.Suite
	board *Board
	fleet Fleet
}

func TestBoardSuite(t *testing.T) {
	suite.Run(t, new(BoardSuite))
}

func (s *BoardSuite) SetupTest() {
	s.board = NewBoard()
	s.fleet = StandardFleet()
}

func (s *BoardSuite) ship(name string) Ship {
	ship, ok := s.fleet.ByName(name)
	s.Require().True(ok, "unknown test ship %q", name)
	return ship
}

// AddShip tests

func (s *BoardSuite) TestAddShipSucceeds() {
	err := s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2"))
	s.Require().NoError(err)

	placement, ok := s.board.Placement(s.ship("Destroyer"))
	s.Require().True(ok)
	s.Equal(cells("A1", "A2"), placement.Cells)
}

func (s *BoardSuite) TestAddShipAcceptsColumnRun() {
	err := s.board.AddShip(s.ship("Cruiser"), cells("B3", "C3", "D3"))
	s.Require().NoError(err)

	ship, ok := s.board.ShipAt(at("C3"))
	s.Require().True(ok)
	s.Equal("Cruiser", ship.Name)
}

func (s *BoardSuite) TestAddShipAcceptsUnsortedRun() {
	// Placement order is preserved but contiguity does not depend on it.
	err := s.board.AddShip(s.ship("Cruiser"), cells("E5", "E3", "E4"))
	s.Require().NoError(err)

	placement, _ := s.board.Placement(s.ship("Cruiser"))
	s.Equal(cells("E5", "E3", "E4"), placement.Cells)
}

func (s *BoardSuite) TestAddShipWrongCount() {
	err := s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2", "A3"))
	s.ErrorIs(err, ErrCoordinateCount)
	s.Empty(s.board.Placements)
}

func (s *BoardSuite) TestAddShipDiagonalRejected() {
	err := s.board.AddShip(s.ship("Destroyer"), cells("A1", "B2"))
	s.ErrorIs(err, ErrCellsNotContiguous)
	s.Empty(s.board.Placements)
}

func (s *BoardSuite) TestAddShipGapRejected() {
	err := s.board.AddShip(s.ship("Destroyer"), cells("A1", "A3"))
	s.ErrorIs(err, ErrCellsNotContiguous)
	s.Empty(s.board.Placements)
}

func (s *BoardSuite) TestAddShipDuplicateCellRejected() {
	err := s.board.AddShip(s.ship("Destroyer"), cells("A1", "A1"))
	s.ErrorIs(err, ErrCellsNotContiguous)
	s.Empty(s.board.Placements)
}

func (s *BoardSuite) TestAddShipOutOfBounds() {
	err := s.board.AddShip(s.ship("Destroyer"), cells("J10", "J11"))
	s.ErrorIs(err, ErrInvalidCoordinate)
	s.Empty(s.board.Placements)

	err = s.board.AddShip(s.ship("Destroyer"), cells("J1", "K1"))
	s.ErrorIs(err, ErrInvalidCoordinate)
	s.Empty(s.board.Placements)
}

func (s *BoardSuite) TestAddShipOverlapRejected() {
	s.Require().NoError(s.board.AddShip(s.ship("Battleship"), cells("A1", "A2", "A3", "A4")))

	err := s.board.AddShip(s.ship("Cruiser"), cells("A2", "B2", "C2"))
	s.ErrorIs(err, ErrCellOccupied)
	s.Len(s.board.Placements, 1)
}

func (s *BoardSuite) TestAddShipAlreadyPlaced() {
	s.Require().NoError(s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2")))

	err := s.board.AddShip(s.ship("Destroyer"), cells("C1", "C2"))
	s.ErrorIs(err, ErrShipAlreadyPlaced)

	// The original placement is untouched.
	placement, _ := s.board.Placement(s.ship("Destroyer"))
	s.Equal(cells("A1", "A2"), placement.Cells)
}

func (s *BoardSuite) TestAddShipValidationOrder() {
	// Count is checked before contiguity.
	err := s.board.AddShip(s.ship("Destroyer"), cells("A1", "C5", "J9"))
	s.ErrorIs(err, ErrCoordinateCount)

	// Contiguity is checked before bounds.
	err = s.board.AddShip(s.ship("Destroyer"), cells("K1", "K3"))
	s.ErrorIs(err, ErrCellsNotContiguous)

	// Bounds are checked for every cell before any collision.
	s.Require().NoError(s.board.AddShip(s.ship("Cruiser"), cells("A1", "A2", "A3")))
	err = s.board.AddShip(s.ship("Destroyer"), cells("A0", "A1"))
	s.ErrorIs(err, ErrInvalidCoordinate)
}

// PlaceShip tests

func (s *BoardSuite) TestPlaceShipEast() {
	err := s.board.PlaceShip(s.ship("Battleship"), at("A1"), East)
	s.Require().NoError(err)

	placement, _ := s.board.Placement(s.ship("Battleship"))
	s.Equal(cells("A1", "A2", "A3", "A4"), placement.Cells)
}

func (s *BoardSuite) TestPlaceShipSouth() {
	err := s.board.PlaceShip(s.ship("Cruiser"), at("C4"), South)
	s.Require().NoError(err)

	placement, _ := s.board.Placement(s.ship("Cruiser"))
	s.Equal(cells("C4", "D4", "E4"), placement.Cells)
}

func (s *BoardSuite) TestPlaceShipNorthAndWestRunBackwards() {
	err := s.board.PlaceShip(s.ship("Destroyer"), at("E5"), North)
	s.Require().NoError(err)
	placement, _ := s.board.Placement(s.ship("Destroyer"))
	s.Equal(cells("E5", "D5"), placement.Cells)

	err = s.board.PlaceShip(s.ship("Submarine"), at("G7"), West)
	s.Require().NoError(err)
	placement, _ = s.board.Placement(s.ship("Submarine"))
	s.Equal(cells("G7", "G6", "G5"), placement.Cells)
}

func (s *BoardSuite) TestPlaceShipRunsOffBoard() {
	err := s.board.PlaceShip(s.ship("Carrier"), at("A8"), East)
	s.ErrorIs(err, ErrInvalidCoordinate)
	s.Empty(s.board.Placements)

	err = s.board.PlaceShip(s.ship("Destroyer"), at("A1"), North)
	s.ErrorIs(err, ErrInvalidCoordinate)
	s.Empty(s.board.Placements)
}

func (s *BoardSuite) TestPlaceShipOverlapScenario() {
	s.Require().NoError(s.board.PlaceShip(s.ship("Battleship"), at("A1"), East))

	err := s.board.PlaceShip(s.ship("Cruiser"), at("A2"), East)
	s.ErrorIs(err, ErrCellOccupied)
}

func (s *BoardSuite) TestPlaceShipInvalidOrientation() {
	err := s.board.PlaceShip(s.ship("Destroyer"), at("A1"), Orientation("up"))
	s.ErrorIs(err, ErrInvalidOrientation)
}

// ReceiveShot tests

func (s *BoardSuite) TestReceiveShotHitAndMiss() {
	s.Require().NoError(s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2")))

	hit, err := s.board.ReceiveShot(at("A1"))
	s.Require().NoError(err)
	s.True(hit)

	hit, err = s.board.ReceiveShot(at("B5"))
	s.Require().NoError(err)
	s.False(hit)

	s.Len(s.board.Shots, 2)
}

func (s *BoardSuite) TestReceiveShotRepeatFails() {
	s.Require().NoError(s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2")))

	_, err := s.board.ReceiveShot(at("A1"))
	s.Require().NoError(err)

	_, err = s.board.ReceiveShot(at("A1"))
	s.ErrorIs(err, ErrAlreadyShot)
	s.Len(s.board.Shots, 1)
}

// ShipsAfloat tests

func (s *BoardSuite) TestShipsAfloatSinking() {
	s.Require().NoError(s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2")))
	s.Require().NoError(s.board.AddShip(s.ship("Submarine"), cells("C1", "C2", "C3")))

	s.Len(s.board.ShipsAfloat(), 2)

	hit, err := s.board.ReceiveShot(at("A1"))
	s.Require().NoError(err)
	s.True(hit)
	s.Len(s.board.ShipsAfloat(), 2, "one unshot cell keeps the ship afloat")

	hit, err = s.board.ReceiveShot(at("A2"))
	s.Require().NoError(err)
	s.True(hit)

	afloat := s.board.ShipsAfloat()
	s.Len(afloat, 1)
	s.Equal("Submarine", afloat[0].Name)
	s.True(s.board.IsSunk(s.ship("Destroyer")))
	s.False(s.board.IsSunk(s.ship("Submarine")))
}

func (s *BoardSuite) TestDestroyerSinkScenario() {
	s.Require().NoError(s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2")))

	hit, err := s.board.ReceiveShot(at("A1"))
	s.Require().NoError(err)
	s.True(hit)

	hit, err = s.board.ReceiveShot(at("A2"))
	s.Require().NoError(err)
	s.True(hit)

	s.Empty(s.board.ShipsAfloat())
}

func (s *BoardSuite) TestIsSunkUnplacedShip() {
	s.False(s.board.IsSunk(s.ship("Carrier")))
}

// FleetComplete tests

func (s *BoardSuite) TestFleetComplete() {
	s.False(s.board.FleetComplete(s.fleet))

	rows := []string{"A1", "B1", "C1", "D1", "E1"}
	for i, ship := range s.fleet {
		s.Require().NoError(s.board.PlaceShip(ship, at(rows[i]), East))
	}

	s.True(s.board.FleetComplete(s.fleet))
}

// Matrix tests

func (s *BoardSuite) TestMatrixTriState() {
	s.Require().NoError(s.board.AddShip(s.ship("Destroyer"), cells("A1", "A2")))

	_, err := s.board.ReceiveShot(at("A1"))
	s.Require().NoError(err)
	_, err = s.board.ReceiveShot(at("B5"))
	s.Require().NoError(err)

	m := s.board.Matrix()
	s.Require().Len(m, GridSize)
	for _, row := range m {
		s.Require().Len(row, GridSize)
	}

	s.Equal(CellHit, m[0][0])     // A1
	s.Equal(CellUnknown, m[0][1]) // A2: ship cell, not yet shot
	s.Equal(CellMiss, m[1][4])    // B5
	s.Equal(CellUnknown, m[9][9]) // J10
}

func (s *BoardSuite) TestMatrixIsASnapshot() {
	m := s.board.Matrix()
	m[0][0] = CellHit

	s.Equal(CellUnknown, s.board.Matrix()[0][0])
}

// Contains tests

func (s *BoardSuite) TestContains() {
	s.True(s.board.Contains(at("A1")))
	s.True(s.board.Contains(at("J10")))
	s.False(s.board.Contains(at("K1")))
	s.False(s.board.Contains(at("J11")))
	s.False(s.board.Contains(Coord{Row: 'A', Col: 0}))
}

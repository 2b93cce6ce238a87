package board

import (
	"fmt"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// FleetCell is one cell of a fleet view: the board as its owner sees it,
// ships included.
type FleetCell string

const (
	FleetCellWater FleetCell = "water" // open water, not shot
	FleetCellShip  FleetCell = "ship"  // own ship cell, not shot
	FleetCellHit   FleetCell = "hit"   // own ship cell, shot
	FleetCellMiss  FleetCell = "miss"  // open water, shot
)

// ShipStatus reports one fleet ship's state on a board. Cells is only set
// once the ship is placed and only ever shown to the board's owner.
type ShipStatus struct {
	Ship   model.Ship
	Placed bool
	Cells  []model.Coord
	Hits   int
	Sunk   bool
}

// TargetView is what a shooter knows about the opponent's board: shot
// outcomes only, never ship positions.
type TargetView struct {
	Participant string
	Grid        [][]model.Cell
	ShipsAfloat int
	ShipsSunk   []model.Ship
}

// FleetView is a participant's own board: ship cells overlaid with the
// incoming shot history, plus per-ship placement and damage state.
type FleetView struct {
	Participant string
	Grid        [][]FleetCell
	Ships       []ShipStatus // in fleet order, including unplaced ships
}

// Service composes read models of match boards for clients. It holds no
// state; callers load the match first.
type Service struct{}

// New creates a new board Service
func New() *Service {
	return &Service{}
}

// TargetView builds the viewer's picture of their opponent's board. Before
// the computer opponent is synthesized in a solo match, the view is an
// untouched grid with the full fleet afloat.
func (s *Service) TargetView(m *model.Match, viewerID model.PlayerID) (*TargetView, error) {
	if !m.HasParticipant(viewerID) {
		return nil, fmt.Errorf("%w: %s", model.ErrNotInMatch, viewerID)
	}

	target := m.Game.TargetFor(viewerID.ParticipantName())
	board, err := m.Game.Board(target)
	if err != nil {
		return &TargetView{
			Participant: target,
			Grid:        emptyGrid(),
			ShipsAfloat: len(m.Game.Fleet),
		}, nil
	}

	view := &TargetView{
		Participant: target,
		Grid:        board.Matrix(),
		ShipsAfloat: len(board.ShipsAfloat()),
	}
	for _, ship := range m.Game.Fleet {
		if board.IsSunk(ship) {
			view.ShipsSunk = append(view.ShipsSunk, ship)
		}
	}
	return view, nil
}

// FleetView builds the viewer's picture of their own board.
func (s *Service) FleetView(m *model.Match, viewerID model.PlayerID) (*FleetView, error) {
	if !m.HasParticipant(viewerID) {
		return nil, fmt.Errorf("%w: %s", model.ErrNotInMatch, viewerID)
	}

	board, err := m.Game.Board(viewerID.ParticipantName())
	if err != nil {
		return nil, err
	}

	grid := make([][]FleetCell, model.GridSize)
	for r := range grid {
		grid[r] = make([]FleetCell, model.GridSize)
		for c := range grid[r] {
			grid[r][c] = FleetCellWater
		}
	}
	for _, p := range board.Placements {
		for _, cell := range p.Cells {
			grid[rowIndex(cell)][colIndex(cell)] = FleetCellShip
		}
	}
	for _, shot := range board.Shots {
		state := FleetCellMiss
		if _, hit := board.ShipAt(shot); hit {
			state = FleetCellHit
		}
		grid[rowIndex(shot)][colIndex(shot)] = state
	}

	view := &FleetView{
		Participant: viewerID.ParticipantName(),
		Grid:        grid,
		Ships:       make([]ShipStatus, 0, len(m.Game.Fleet)),
	}
	for _, ship := range m.Game.Fleet {
		status := ShipStatus{Ship: ship}
		if placement, ok := board.Placement(ship); ok {
			status.Placed = true
			status.Cells = placement.Cells
			for _, cell := range placement.Cells {
				if board.HasShot(cell) {
					status.Hits++
				}
			}
			status.Sunk = status.Hits == ship.Size
		}
		view.Ships = append(view.Ships, status)
	}
	return view, nil
}

func emptyGrid() [][]model.Cell {
	grid := make([][]model.Cell, model.GridSize)
	for r := range grid {
		grid[r] = make([]model.Cell, model.GridSize)
		for c := range grid[r] {
			grid[r][c] = model.CellUnknown
		}
	}
	return grid
}

func rowIndex(c model.Coord) int { return int(c.Row - model.MinRow) }
func colIndex(c model.Coord) int { return c.Col - model.MinCol }

// Interface for dependency injection
type ServiceInterface interface {
	TargetView(m *model.Match, viewerID model.PlayerID) (*TargetView, error)
	FleetView(m *model.Match, viewerID model.PlayerID) (*FleetView, error)
}

var _ ServiceInterface = (*Service)(nil)

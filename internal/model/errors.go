package model

import "errors"

// Common errors used across the application
var (
	// Coordinate and placement errors
	ErrInvalidCoordinate  = errors.New("coordinate is outside the grid")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrCoordinateCount    = errors.New("coordinate count does not match ship size")
	ErrCellsNotContiguous = errors.New("ship cells must form a straight contiguous run")
	ErrCellOccupied       = errors.New("cell is already occupied by another ship")
	ErrShipAlreadyPlaced  = errors.New("ship is already placed on this board")
	ErrAlreadyShot        = errors.New("coordinate has already been shot")
	ErrUnknownShip        = errors.New("no such ship in the fleet")

	// Game errors
	ErrNoBoards             = errors.New("game has no boards")
	ErrGameFull             = errors.New("game already has two boards")
	ErrDuplicateParticipant = errors.New("participant already has a board in this game")
	ErrFleetIncomplete      = errors.New("not all ships have been placed")
	ErrUnknownParticipant   = errors.New("no such participant in this game")
	ErrPlacementExhausted   = errors.New("could not find a valid random placement")
	ErrNoUntriedCoordinates = errors.New("no untried coordinates remain")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Match errors
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchNotJoinable   = errors.New("match cannot be joined")
	ErrMatchNotInProgress = errors.New("match is not in progress")
	ErrMatchOver          = errors.New("match is already over")
	ErrNotInMatch         = errors.New("player is not a participant in this match")
	ErrNotPlayerTurn      = errors.New("not this player's turn")
)

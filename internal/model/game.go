package model

import (
	"fmt"
	"strings"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
)

// ComputerName is the fixed identity of the synthesized opponent.
const ComputerName = "Computer"

// maxPlacementAttempts bounds the random placement retry loop per ship.
// A 10x10 grid places the standard fleet in a handful of attempts; hitting
// the bound means the randomness source is broken.
const maxPlacementAttempts = 128

// Game is the two-board turn state machine. It owns at most two named
// boards, tracks whose turn it is, and is the sole entry point for firing a
// shot. Access must be serialized by the caller; the game itself does no
// locking.
type Game struct {
	Fleet     Fleet
	Players   []string // board owners in join order; the first fires first
	Boards    map[string]*Board
	Turn      string            // participant who fires next
	Targeting TargetingStrategy // coordinate selection for automatic shots

	// rnd drives opponent synthesis and automatic targeting. It is not
	// serialized; a game loaded from storage falls back to crypto randomness
	// unless SetRandom is called.
	rnd random.Random
}

// NewGame creates an empty game with the standard fleet and hunt targeting.
func NewGame() *Game {
	return &Game{
		Fleet:     StandardFleet(),
		Boards:    make(map[string]*Board),
		Targeting: TargetingHunt,
	}
}

// SetRandom overrides the randomness source used for opponent synthesis and
// automatic targeting.
func (g *Game) SetRandom(rnd random.Random) {
	g.rnd = rnd
}

func (g *Game) random() random.Random {
	if g.rnd == nil {
		g.rnd = random.New()
	}
	return g.rnd
}

// AddBoard creates an empty board for a named participant. A game holds at
// most two boards; adding one resets the turn to the first participant.
func (g *Game) AddBoard(name string) (*Board, error) {
	if len(g.Players) >= 2 {
		return nil, ErrGameFull
	}
	if g.Boards == nil {
		g.Boards = make(map[string]*Board)
	}
	if _, ok := g.Boards[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateParticipant, name)
	}
	b := NewBoard()
	g.Players = append(g.Players, name)
	g.Boards[name] = b
	g.Turn = g.Players[0]
	return b, nil
}

// Board returns the named participant's board.
func (g *Game) Board(name string) (*Board, error) {
	b, ok := g.Boards[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (participants: %s)",
			ErrUnknownParticipant, name, strings.Join(g.Players, ", "))
	}
	return b, nil
}

// TurnHolder returns the participant who fires next.
func (g *Game) TurnHolder() string {
	return g.Turn
}

// TargetFor resolves who a shot from the given participant lands on: the
// other participant, or the computer opponent that will be synthesized on
// the first shot while only one board exists.
func (g *Game) TargetFor(shooter string) string {
	for _, p := range g.Players {
		if p != shooter {
			return p
		}
	}
	return ComputerName
}

// NextTarget returns the board the current turn holder fires at.
func (g *Game) NextTarget() string {
	return g.TargetFor(g.Turn)
}

// ShotResult describes the outcome of a resolved shot.
type ShotResult struct {
	Target string
	Coord  Coord
	Hit    bool
	Sunk   *Ship  // the ship this shot sank, nil otherwise
	Afloat []Ship // target's ships still afloat after the shot
	Board  *Board // the target board after the shot
}

// Shoot fires at a named participant's board. Preconditions are checked in
// order: at least one board exists; a computer opponent is synthesized if
// only one does; every board fields the complete fleet; the target exists;
// the coordinate is in bounds. On success the shot is applied and the turn
// advances, unless it sank the target's last ship.
func (g *Game) Shoot(target string, c Coord) (*ShotResult, error) {
	board, err := g.prepareShot(target)
	if err != nil {
		return nil, err
	}
	if !board.Contains(c) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
	}
	return g.resolveShot(target, board, c)
}

// ShootNext fires at the opponent of the current turn holder.
func (g *Game) ShootNext(c Coord) (*ShotResult, error) {
	return g.Shoot(g.NextTarget(), c)
}

// ShootAuto fires at a named participant's board, choosing the coordinate
// with the game's targeting strategy.
func (g *Game) ShootAuto(target string) (*ShotResult, error) {
	board, err := g.prepareShot(target)
	if err != nil {
		return nil, err
	}
	c, err := chooseTarget(board, g.Targeting, g.random())
	if err != nil {
		return nil, err
	}
	return g.resolveShot(target, board, c)
}

// AutoPlaceFleet fills the participant's unplaced fleet ships at random:
// each ship samples a start cell and an axis direction (east or south) until
// placement validates, bounded by maxPlacementAttempts.
func (g *Game) AutoPlaceFleet(name string) error {
	board, err := g.Board(name)
	if err != nil {
		return err
	}
	rnd := g.random()
	for _, ship := range g.Fleet {
		if _, ok := board.Placement(ship); ok {
			continue
		}
		if err := autoPlaceShip(board, ship, rnd); err != nil {
			return err
		}
	}
	return nil
}

// prepareShot runs the shot preconditions and resolves the target board.
// Opponent synthesis is a persistent side effect: it survives even if a
// later precondition fails.
func (g *Game) prepareShot(target string) (*Board, error) {
	if len(g.Players) == 0 {
		return nil, fmt.Errorf("%w: create at least one board first", ErrNoBoards)
	}
	if len(g.Players) == 1 {
		if err := g.synthesizeOpponent(); err != nil {
			return nil, err
		}
	}
	for _, name := range g.Players {
		if !g.Boards[name].FleetComplete(g.Fleet) {
			return nil, fmt.Errorf("%w: %s", ErrFleetIncomplete, name)
		}
	}
	return g.Board(target)
}

func (g *Game) resolveShot(target string, board *Board, c Coord) (*ShotResult, error) {
	hit, err := board.ReceiveShot(c)
	if err != nil {
		return nil, err
	}
	res := &ShotResult{
		Target: target,
		Coord:  c,
		Hit:    hit,
		Afloat: board.ShipsAfloat(),
		Board:  board,
	}
	if hit {
		if ship, ok := board.ShipAt(c); ok && board.IsSunk(ship) {
			res.Sunk = &ship
		}
	}
	if len(res.Afloat) > 0 {
		g.advanceTurn()
	}
	return res, nil
}

func (g *Game) synthesizeOpponent() error {
	if _, err := g.AddBoard(ComputerName); err != nil {
		return err
	}
	return g.AutoPlaceFleet(ComputerName)
}

func (g *Game) advanceTurn() {
	for i, p := range g.Players {
		if p == g.Turn {
			g.Turn = g.Players[(i+1)%len(g.Players)]
			return
		}
	}
}

func autoPlaceShip(board *Board, ship Ship, rnd random.Random) error {
	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		start := Coord{
			Row: MinRow + rune(rnd.Intn(GridSize)),
			Col: MinCol + rnd.Intn(GridSize),
		}
		dir := South
		if rnd.Intn(2) == 0 {
			dir = East
		}
		if err := board.PlaceShip(ship, start, dir); err == nil {
			return nil
		}
	}
	return fmt.Errorf("%w: %s after %d attempts", ErrPlacementExhausted, ship, maxPlacementAttempts)
}

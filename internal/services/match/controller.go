package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/bot"
	"github.com/mcoot/battleshipgame-go/internal/services/scoring"
	"github.com/mcoot/battleshipgame-go/internal/storage"
)

// ErrInvalidMode is returned when a match is created with an unknown mode
var ErrInvalidMode = errors.New("invalid match mode")

// maxBotTurns bounds the computer reply loop per human shot. Under normal
// rules the computer replies at most once.
const maxBotTurns = 16

// Recorder persists summaries of finished matches. A nil recorder disables
// history.
type Recorder interface {
	RecordMatch(ctx context.Context, summary *model.MatchSummary, final *model.Match) error
}

// Controller owns the match lifecycle around the engine: creation, seating,
// fleet placement, shots, and completion. The engine does no locking of its
// own, so every mutating operation runs under a per-match lock here.
type Controller struct {
	storage  storage.Storage
	bot      *bot.Service
	scoring  *scoring.Service
	recorder Recorder
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[model.MatchID]*sync.Mutex
}

// NewController creates a new match Controller
func NewController(
	store storage.Storage,
	botService *bot.Service,
	scoringService *scoring.Service,
	recorder Recorder,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  store,
		bot:      botService,
		scoring:  scoringService,
		recorder: recorder,
		clock:    clk,
		random:   rnd,
		logger:   logger.With(slog.String("component", "match-service")),
		locks:    make(map[model.MatchID]*sync.Mutex),
	}
}

// CreateMatch starts a new match hosted by the given player. Solo matches
// play against the computer, whose targeting is chosen by difficulty; pvp
// matches wait for a second player.
func (c *Controller) CreateMatch(ctx context.Context, hostID model.PlayerID, mode model.MatchMode, difficulty bot.Difficulty) (*model.Match, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
	if difficulty == "" {
		difficulty = bot.DefaultDifficulty
	}
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %q", bot.ErrUnknownDifficulty, difficulty)
	}

	game := model.NewGame()
	game.SetRandom(c.random)
	game.Targeting = difficulty.Targeting()
	if _, err := game.AddBoard(hostID.ParticipantName()); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	status := model.StatusPlacing
	if mode == model.ModePvP {
		status = model.StatusAwaitingOpponent
	}

	m := &model.Match{
		ID:        model.MatchID(uuid.NewString()[:8]),
		Mode:      mode,
		Status:    status,
		HostID:    hostID,
		Game:      game,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("match created",
		slog.String("match_id", string(m.ID)),
		slog.String("mode", string(mode)),
		slog.String("host_id", string(hostID)),
		slog.String("targeting", string(game.Targeting)),
	)

	return m, nil
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.loadMatch(ctx, id)
}

// ListOpenMatches returns pvp matches with an open seat, oldest first
func (c *Controller) ListOpenMatches(ctx context.Context) ([]*model.Match, error) {
	return c.storage.ListOpenMatches(ctx)
}

// JoinMatch seats a second player in an open pvp match. The engine resets
// the turn to the host when the second board is added.
func (c *Controller) JoinMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error) {
	lock := c.matchLock(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.HasParticipant(playerID) {
		return nil, fmt.Errorf("%w: %q", model.ErrDuplicateParticipant, playerID)
	}
	if !m.Joinable() {
		return nil, fmt.Errorf("%w: %s", model.ErrMatchNotJoinable, id)
	}

	if _, err := m.Game.AddBoard(playerID.ParticipantName()); err != nil {
		return nil, err
	}
	m.OpponentID = playerID
	m.Status = model.StatusPlacing
	m.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	c.logger.Info("player joined match",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(playerID)),
	)

	return m, nil
}

// PlaceShip places a fleet ship on the player's board by explicit cells.
func (c *Controller) PlaceShip(ctx context.Context, id model.MatchID, playerID model.PlayerID, shipName string, cells []model.Coord) (*model.Match, error) {
	return c.placeShip(ctx, id, playerID, shipName, func(b *model.Board, ship model.Ship) error {
		return b.AddShip(ship, cells)
	})
}

// PlaceShipAt places a fleet ship by start coordinate and orientation.
func (c *Controller) PlaceShipAt(ctx context.Context, id model.MatchID, playerID model.PlayerID, shipName string, start model.Coord, o model.Orientation) (*model.Match, error) {
	return c.placeShip(ctx, id, playerID, shipName, func(b *model.Board, ship model.Ship) error {
		return b.PlaceShip(ship, start, o)
	})
}

func (c *Controller) placeShip(ctx context.Context, id model.MatchID, playerID model.PlayerID, shipName string, place func(*model.Board, model.Ship) error) (*model.Match, error) {
	lock := c.matchLock(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(playerID) {
		return nil, fmt.Errorf("%w: %s", model.ErrNotInMatch, playerID)
	}
	if m.Over() {
		return nil, fmt.Errorf("%w: %s", model.ErrMatchOver, id)
	}

	ship, ok := m.Game.Fleet.ByName(shipName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownShip, shipName)
	}

	board, err := m.Game.Board(playerID.ParticipantName())
	if err != nil {
		return nil, err
	}
	if err := place(board, ship); err != nil {
		return nil, err
	}

	if c.fleetsReady(m) {
		m.Status = model.StatusInProgress
	}
	m.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	c.logger.Info("ship placed",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.String("ship", ship.Name),
		slog.String("status", string(m.Status)),
	)

	return m, nil
}

// FireResult reports the player's resolved shot plus any computer replies
// that followed in a solo match.
type FireResult struct {
	Match   *model.Match
	Shot    *model.ShotResult
	Replies []*model.ShotResult
}

// FireShot fires at the player's opponent at an explicit coordinate.
func (c *Controller) FireShot(ctx context.Context, id model.MatchID, playerID model.PlayerID, coord model.Coord) (*FireResult, error) {
	return c.fireShot(ctx, id, playerID, func(g *model.Game, target string) (*model.ShotResult, error) {
		return g.Shoot(target, coord)
	})
}

// FireShotAuto fires at the player's opponent, letting the engine's
// targeting strategy pick the coordinate.
func (c *Controller) FireShotAuto(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*FireResult, error) {
	return c.fireShot(ctx, id, playerID, func(g *model.Game, target string) (*model.ShotResult, error) {
		return g.ShootAuto(target)
	})
}

func (c *Controller) fireShot(ctx context.Context, id model.MatchID, playerID model.PlayerID, shoot func(*model.Game, string) (*model.ShotResult, error)) (*FireResult, error) {
	lock := c.matchLock(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(playerID) {
		return nil, fmt.Errorf("%w: %s", model.ErrNotInMatch, playerID)
	}
	if m.Over() {
		return nil, fmt.Errorf("%w: %s", model.ErrMatchOver, id)
	}
	if m.Status != model.StatusInProgress {
		return nil, fmt.Errorf("%w: status is %s", model.ErrMatchNotInProgress, m.Status)
	}

	shooter := playerID.ParticipantName()
	if m.Game.TurnHolder() != shooter {
		return nil, fmt.Errorf("%w: it is %s's turn", model.ErrNotPlayerTurn, m.Game.TurnHolder())
	}

	result, err := shoot(m.Game, m.Game.TargetFor(shooter))
	if err != nil {
		return nil, err
	}

	fire := &FireResult{Match: m, Shot: result}

	if len(result.Afloat) == 0 {
		c.finishMatch(ctx, m, shooter)
	} else if m.Mode == model.ModeSolo {
		if err := c.playComputerTurns(ctx, m, fire); err != nil {
			return nil, err
		}
	}

	m.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveMatch(ctx, m); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("shot fired",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.String("coord", result.Coord.String()),
		slog.Bool("hit", result.Hit),
		slog.String("status", string(m.Status)),
	)

	return fire, nil
}

// Abandon resigns the player from the match. Resigning a live match hands
// the win to the opponent; abandoning before play starts records no winner.
// Abandoning an already finished match is a no-op.
func (c *Controller) Abandon(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error) {
	lock := c.matchLock(id)
	lock.Lock()
	defer lock.Unlock()

	m, err := c.loadMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !m.HasParticipant(playerID) {
		return nil, fmt.Errorf("%w: %s", model.ErrNotInMatch, playerID)
	}
	if m.Over() {
		return m, nil
	}

	wasLive := m.Status == model.StatusInProgress
	m.Status = model.StatusAbandoned
	if wasLive {
		if other, ok := m.OtherParticipant(playerID); ok {
			m.Winner = string(other)
		} else if m.Mode == model.ModeSolo {
			m.Winner = model.ComputerName
		}
	}
	m.UpdatedAt = c.clock.Now()

	c.recordHistory(ctx, m)

	if err := c.storage.SaveMatch(ctx, m); err != nil {
		return nil, err
	}

	c.logger.Info("match abandoned",
		slog.String("match_id", string(id)),
		slog.String("player_id", string(playerID)),
		slog.String("winner", m.Winner),
	)

	return m, nil
}

// playComputerTurns lets the bot fire while it holds the turn.
func (c *Controller) playComputerTurns(ctx context.Context, m *model.Match, fire *FireResult) error {
	for i := 0; i < maxBotTurns; i++ {
		reply, err := c.bot.PlayTurn(ctx, m.Game)
		if err != nil {
			return err
		}
		if reply == nil {
			return nil
		}
		fire.Replies = append(fire.Replies, reply)
		if len(reply.Afloat) == 0 {
			c.finishMatch(ctx, m, model.ComputerName)
			return nil
		}
	}
	return nil
}

func (c *Controller) finishMatch(ctx context.Context, m *model.Match, winner string) {
	m.Status = model.StatusComplete
	m.Winner = winner

	c.logger.Info("match complete",
		slog.String("match_id", string(m.ID)),
		slog.String("winner", winner),
	)

	c.recordHistory(ctx, m)
}

// recordHistory hands the finished match to the recorder. History is best
// effort; the match result stands even if recording fails.
func (c *Controller) recordHistory(ctx context.Context, m *model.Match) {
	if c.recorder == nil {
		return
	}
	summary := c.scoring.Summarize(m, c.clock.Now())
	if err := c.recorder.RecordMatch(ctx, summary, m); err != nil {
		c.logger.Warn("failed to record match history",
			slog.String("match_id", string(m.ID)),
			slog.String("error", err.Error()),
		)
	}
}

// fleetsReady reports whether every seat is filled and every board fields
// the complete fleet. In solo mode the computer board does not exist until
// the first shot, so only the host board is required.
func (c *Controller) fleetsReady(m *model.Match) bool {
	if m.Mode == model.ModePvP && m.OpponentID == "" {
		return false
	}
	if len(m.Game.Players) == 0 {
		return false
	}
	for _, name := range m.Game.Players {
		board, err := m.Game.Board(name)
		if err != nil || !board.FleetComplete(m.Game.Fleet) {
			return false
		}
	}
	return true
}

// loadMatch fetches a match and re-attaches the randomness source, which
// does not survive serialization.
func (c *Controller) loadMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	m, err := c.storage.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.Game != nil {
		m.Game.SetRandom(c.random)
	}
	return m, nil
}

// matchLock returns the mutex guarding one match, creating it on first use.
func (c *Controller) matchLock(id model.MatchID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	return l
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateMatch(ctx context.Context, hostID model.PlayerID, mode model.MatchMode, difficulty bot.Difficulty) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListOpenMatches(ctx context.Context) ([]*model.Match, error)
	JoinMatch(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error)
	PlaceShip(ctx context.Context, id model.MatchID, playerID model.PlayerID, shipName string, cells []model.Coord) (*model.Match, error)
	PlaceShipAt(ctx context.Context, id model.MatchID, playerID model.PlayerID, shipName string, start model.Coord, o model.Orientation) (*model.Match, error)
	FireShot(ctx context.Context, id model.MatchID, playerID model.PlayerID, coord model.Coord) (*FireResult, error)
	FireShotAuto(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*FireResult, error)
	Abandon(ctx context.Context, id model.MatchID, playerID model.PlayerID) (*model.Match, error)
}

var _ ControllerInterface = (*Controller)(nil)

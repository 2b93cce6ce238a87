package storage

import (
	"context"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Storage defines the interface for data persistence. A match is stored as a
// single document: the embedded engine game and its boards ride along with
// the server bookkeeping.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Match operations. ListOpenMatches returns joinable matches ordered by
	// creation time, oldest first.
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	DeleteMatch(ctx context.Context, id model.MatchID) error
	ListOpenMatches(ctx context.Context) ([]*model.Match, error)
}

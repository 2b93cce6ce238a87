package bot

import (
	"context"
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Service drives the computer seat in solo matches.
type Service struct {
	logger *slog.Logger
}

// NewService creates a new bot Service
func NewService(logger *slog.Logger) *Service {
	return &Service{
		logger: logger.With(slog.String("component", "bot-service")),
	}
}

// PlayTurn fires the computer's shot if the computer currently holds the
// turn. It returns nil without error when it is not the computer's move, so
// callers can invoke it unconditionally after a human shot.
func (s *Service) PlayTurn(ctx context.Context, game *model.Game) (*model.ShotResult, error) {
	if game.TurnHolder() != model.ComputerName {
		return nil, nil
	}

	target := game.TargetFor(model.ComputerName)
	result, err := game.ShootAuto(target)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("computer fired",
		slog.String("target", target),
		slog.String("coord", result.Coord.String()),
		slog.Bool("hit", result.Hit),
		slog.Int("afloat", len(result.Afloat)),
	)

	return result, nil
}

package scoring

import (
	"time"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Service computes end-of-match summaries from engine state.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Summarize builds the final summary for a finished match: per-participant
// shot counts, accuracy, and fleet attrition.
func (s *Service) Summarize(m *model.Match, completedAt time.Time) *model.MatchSummary {
	summary := &model.MatchSummary{
		MatchID:     m.ID,
		Mode:        m.Mode,
		Status:      m.Status,
		Winner:      m.Winner,
		StartedAt:   m.CreatedAt,
		CompletedAt: completedAt,
	}

	if m.Game == nil {
		return summary
	}

	for _, name := range m.Game.Players {
		score := s.scoreParticipant(m.Game, name)
		summary.Participants = append(summary.Participants, score)
		summary.TotalShots += score.ShotsFired
	}

	return summary
}

// scoreParticipant reads a participant's record out of the engine: shots they
// fired land on the opponent's board, ships they lost sit on their own.
func (s *Service) scoreParticipant(g *model.Game, name string) model.ParticipantScore {
	score := model.ParticipantScore{Name: name}

	if own, err := g.Board(name); err == nil {
		placed := len(own.Placements)
		score.ShipsAfloat = len(own.ShipsAfloat())
		score.ShipsLost = placed - score.ShipsAfloat
	}

	opponent, err := g.Board(g.TargetFor(name))
	if err != nil {
		// No opponent board, e.g. a solo match abandoned before the first
		// shot synthesized one.
		return score
	}

	score.ShotsFired = len(opponent.Shots)
	for _, shot := range opponent.Shots {
		if _, hit := opponent.ShipAt(shot); hit {
			score.Hits++
		}
	}
	score.Misses = score.ShotsFired - score.Hits
	if score.ShotsFired > 0 {
		score.Accuracy = float64(score.Hits) / float64(score.ShotsFired)
	}

	return score
}

// Interface for dependency injection
type ServiceInterface interface {
	Summarize(m *model.Match, completedAt time.Time) *model.MatchSummary
}

var _ ServiceInterface = (*Service)(nil)

package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Helper to build a two-player match with fleets on rows A-E.
func (s *ServiceSuite) fleetedMatch(players ...string) *model.Match {
	game := model.NewGame()
	for _, name := range players {
		_, err := game.AddBoard(name)
		s.Require().NoError(err)
		board, err := game.Board(name)
		s.Require().NoError(err)
		rows := []string{"A1", "B1", "C1", "D1", "E1"}
		for i, ship := range game.Fleet {
			start, err := model.ParseCoord(rows[i])
			s.Require().NoError(err)
			s.Require().NoError(board.PlaceShip(ship, start, model.East))
		}
	}
	return &model.Match{
		ID:        "match-1",
		Mode:      model.ModePvP,
		Status:    model.StatusInProgress,
		HostID:    model.PlayerID(players[0]),
		Game:      game,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *ServiceSuite) shoot(m *model.Match, target string, coords ...string) {
	for _, raw := range coords {
		c, err := model.ParseCoord(raw)
		s.Require().NoError(err)
		_, err = m.Game.Shoot(target, c)
		s.Require().NoError(err)
	}
}

func (s *ServiceSuite) participant(summary *model.MatchSummary, name string) model.ParticipantScore {
	for _, p := range summary.Participants {
		if p.Name == name {
			return p
		}
	}
	s.Require().Failf("participant not in summary", "name=%s", name)
	return model.ParticipantScore{}
}

func (s *ServiceSuite) TestSummarizeCountsShotsAndHits() {
	m := s.fleetedMatch("john", "jane")
	// john hits jane twice (sinking the destroyer) and misses once; jane
	// fires two misses in between.
	s.shoot(m, "jane", "A1")
	s.shoot(m, "john", "J10")
	s.shoot(m, "jane", "A2")
	s.shoot(m, "john", "J9")
	s.shoot(m, "jane", "J10")

	completed := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	summary := s.service.Summarize(m, completed)

	s.Equal(m.ID, summary.MatchID)
	s.Equal(m.CreatedAt, summary.StartedAt)
	s.Equal(completed, summary.CompletedAt)
	s.Equal(5, summary.TotalShots)
	s.Require().Len(summary.Participants, 2)

	john := s.participant(summary, "john")
	s.Equal(3, john.ShotsFired)
	s.Equal(2, john.Hits)
	s.Equal(1, john.Misses)
	s.InDelta(2.0/3.0, john.Accuracy, 1e-9)
	s.Equal(0, john.ShipsLost)
	s.Equal(5, john.ShipsAfloat)

	jane := s.participant(summary, "jane")
	s.Equal(2, jane.ShotsFired)
	s.Equal(0, jane.Hits)
	s.Equal(0.0, jane.Accuracy)
	s.Equal(1, jane.ShipsLost)
	s.Equal(4, jane.ShipsAfloat)
}

func (s *ServiceSuite) TestSummarizeCarriesMatchOutcome() {
	m := s.fleetedMatch("john", "jane")
	m.Status = model.StatusComplete
	m.Winner = "john"

	summary := s.service.Summarize(m, time.Now())

	s.Equal(model.StatusComplete, summary.Status)
	s.Equal("john", summary.Winner)
	s.Equal(model.ModePvP, summary.Mode)
}

func (s *ServiceSuite) TestSummarizeNoShots() {
	m := s.fleetedMatch("john", "jane")

	summary := s.service.Summarize(m, time.Now())

	s.Equal(0, summary.TotalShots)
	for _, p := range summary.Participants {
		s.Equal(0, p.ShotsFired)
		s.Equal(0.0, p.Accuracy)
		s.Equal(5, p.ShipsAfloat)
	}
}

func (s *ServiceSuite) TestSummarizeSingleBoardMatch() {
	// Abandoned solo match before the first shot: only the host board
	// exists, so there is no opponent board to read shots from.
	game := model.NewGame()
	_, err := game.AddBoard("john")
	s.Require().NoError(err)

	m := &model.Match{
		ID:     "match-1",
		Mode:   model.ModeSolo,
		Status: model.StatusAbandoned,
		HostID: "john",
		Game:   game,
	}

	summary := s.service.Summarize(m, time.Now())

	s.Require().Len(summary.Participants, 1)
	s.Equal(0, summary.Participants[0].ShotsFired)
	s.Equal(0, summary.TotalShots)
}

func (s *ServiceSuite) TestSummarizeNilGame() {
	m := &model.Match{ID: "match-1", Mode: model.ModeSolo, Status: model.StatusAbandoned}

	summary := s.service.Summarize(m, time.Now())

	s.Empty(summary.Participants)
	s.Equal(0, summary.TotalShots)
}

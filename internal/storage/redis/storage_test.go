package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.FinishedMatchTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) newMatch(id model.MatchID, mode model.MatchMode, createdAt time.Time) *model.Match {
	status := model.StatusPlacing
	if mode == model.ModePvP {
		status = model.StatusAwaitingOpponent
	}
	return &model.Match{
		ID:        id,
		Mode:      mode,
		Status:    status,
		HostID:    "host-1",
		Game:      model.NewGame(),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.storage.SavePlayer(s.ctx, guestPlayer)
	_ = s.storage.SavePlayer(s.ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Match tests

func (s *StorageSuite) TestSaveAndGetMatchRoundTripsEngineState() {
	match := s.newMatch("match-1", model.ModeSolo, time.Now().UTC())
	board, err := match.Game.AddBoard("host-1")
	s.Require().NoError(err)

	destroyer := model.Ship{Name: "Destroyer", Size: 2}
	s.Require().NoError(board.PlaceShip(destroyer, model.Coord{Row: 'A', Col: 1}, model.East))
	_, err = board.ReceiveShot(model.Coord{Row: 'A', Col: 1})
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SaveMatch(s.ctx, match))

	retrieved, err := s.storage.GetMatch(s.ctx, "match-1")
	s.Require().NoError(err)
	s.Equal(match.ID, retrieved.ID)
	s.Equal(match.Status, retrieved.Status)
	s.Equal([]string{"host-1"}, retrieved.Game.Players)

	loaded, err := retrieved.Game.Board("host-1")
	s.Require().NoError(err)
	placement, ok := loaded.Placement(destroyer)
	s.Require().True(ok)
	s.Equal([]model.Coord{{Row: 'A', Col: 1}, {Row: 'A', Col: 2}}, placement.Cells)
	s.True(loaded.HasShot(model.Coord{Row: 'A', Col: 1}))
}

func (s *StorageSuite) TestGetMatchNotFound() {
	_, err := s.storage.GetMatch(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *StorageSuite) TestDeleteMatch() {
	match := s.newMatch("match-1", model.ModePvP, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	err := s.storage.DeleteMatch(s.ctx, "match-1")
	s.Require().NoError(err)

	_, err = s.storage.GetMatch(s.ctx, "match-1")
	s.ErrorIs(err, model.ErrMatchNotFound)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open, "deleting a match drops it from the open index")
}

func (s *StorageSuite) TestLiveMatchHasNoTTL() {
	match := s.newMatch("match-1", model.ModeSolo, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	s.Equal(time.Duration(0), s.mini.TTL(matchKey(match.ID)))
}

func (s *StorageSuite) TestFinishedMatchTTL() {
	match := s.newMatch("match-1", model.ModeSolo, time.Now())
	match.Status = model.StatusComplete
	match.Winner = "host-1"
	_ = s.storage.SaveMatch(s.ctx, match)

	s.True(s.mini.TTL(matchKey(match.ID)) > 0, "Finished match should have TTL")
}

func (s *StorageSuite) TestListOpenMatchesFiltersAndOrders() {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	older := s.newMatch("match-older", model.ModePvP, base)
	newer := s.newMatch("match-newer", model.ModePvP, base.Add(time.Minute))
	solo := s.newMatch("match-solo", model.ModeSolo, base)

	for _, m := range []*model.Match{newer, solo, older} {
		s.Require().NoError(s.storage.SaveMatch(s.ctx, m))
	}

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(open, 2)
	s.Equal(model.MatchID("match-older"), open[0].ID)
	s.Equal(model.MatchID("match-newer"), open[1].ID)
}

func (s *StorageSuite) TestSaveMatchRemovesFilledMatchFromOpenIndex() {
	match := s.newMatch("match-1", model.ModePvP, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Len(open, 1)

	match.OpponentID = "player-2"
	match.Status = model.StatusPlacing
	_ = s.storage.SaveMatch(s.ctx, match)

	open, err = s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *StorageSuite) TestListOpenMatchesSkipsExpiredEntries() {
	match := s.newMatch("match-1", model.ModePvP, time.Now())
	_ = s.storage.SaveMatch(s.ctx, match)

	// Simulate expiry: the document goes away but the index entry lingers
	s.mini.Del(matchKey(match.ID))

	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

func (s *StorageSuite) TestListOpenMatchesEmpty() {
	open, err := s.storage.ListOpenMatches(s.ctx)
	s.Require().NoError(err)
	s.Empty(open)
}

package ws

import (
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Broadcaster builds typed match events and fans them out to the match's
// watchers. Every method is a no-op when nobody is watching.
type Broadcaster struct {
	hubManager *HubManager
	clock      clock.Clock
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, clk clock.Clock, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		clock:      clk,
		logger:     logger.With(slog.String("component", "ws-broadcaster")),
	}
}

func (b *Broadcaster) event(m *model.Match, eventType model.EventType, actor string, payload any) {
	hub := b.hubManager.GetHub(m.ID)
	if hub == nil {
		return
	}
	hub.BroadcastEvent(&model.Event{
		Type:      eventType,
		MatchID:   m.ID,
		Timestamp: b.clock.Now(),
		Actor:     actor,
		Payload:   payload,
	})
}

// PlayerJoined broadcasts a second player taking the open seat
func (b *Broadcaster) PlayerJoined(m *model.Match, player *model.Player) {
	b.event(m, model.EventPlayerJoined, player.ID.ParticipantName(), model.PlayerJoinedPayload{
		PlayerID:    player.ID,
		DisplayName: player.DisplayName,
	})
}

// FleetPlaced broadcasts a participant completing their fleet placement
func (b *Broadcaster) FleetPlaced(m *model.Match, participant string) {
	b.event(m, model.EventFleetPlaced, participant, model.FleetPlacedPayload{
		Participant: participant,
	})
}

// MatchStarted broadcasts the transition to in_progress
func (b *Broadcaster) MatchStarted(m *model.Match) {
	b.event(m, model.EventMatchStarted, "", model.MatchStartedPayload{
		Participants: m.Game.Players,
		Turn:         m.Game.TurnHolder(),
	})
}

// ShotFired broadcasts one resolved shot, plus a ship_sunk event when the
// shot sank a ship. Coordinates cross the wire in text form.
func (b *Broadcaster) ShotFired(m *model.Match, shooter string, result *model.ShotResult) {
	b.event(m, model.EventShotFired, shooter, model.ShotFiredPayload{
		Shooter:     shooter,
		Target:      result.Target,
		Coord:       result.Coord.String(),
		Hit:         result.Hit,
		AfloatCount: len(result.Afloat),
		NextTurn:    m.Game.TurnHolder(),
	})
	if result.Sunk != nil {
		b.event(m, model.EventShipSunk, shooter, model.ShipSunkPayload{
			Target: result.Target,
			Ship:   result.Sunk.Name,
			Size:   result.Sunk.Size,
		})
	}
}

// MatchComplete broadcasts the end of the match
func (b *Broadcaster) MatchComplete(m *model.Match) {
	b.event(m, model.EventMatchComplete, "", model.MatchCompletePayload{
		Winner: m.Winner,
	})
}

// MatchAbandoned broadcasts a resignation
func (b *Broadcaster) MatchAbandoned(m *model.Match, by model.PlayerID) {
	b.event(m, model.EventMatchAbandoned, by.ParticipantName(), model.MatchAbandonedPayload{
		By:     by.ParticipantName(),
		Winner: m.Winner,
	})
}

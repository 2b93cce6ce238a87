package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Match lifecycle events
	EventPlayerJoined   EventType = "player_joined"
	EventFleetPlaced    EventType = "fleet_placed"
	EventMatchStarted   EventType = "match_started"
	EventMatchComplete  EventType = "match_complete"
	EventMatchAbandoned EventType = "match_abandoned"

	// Shot events
	EventShotFired EventType = "shot_fired"
	EventShipSunk  EventType = "ship_sunk"
)

// Event is the envelope broadcast to match watchers. Events cross the wire
// as JSON, so fields carry tags.
type Event struct {
	Type      EventType `json:"type"`
	MatchID   MatchID   `json:"match_id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor,omitempty"` // engine participant name that caused the event
	Payload   any       `json:"payload,omitempty"`
}

// PlayerJoinedPayload contains data for player joined events
type PlayerJoinedPayload struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
}

// FleetPlacedPayload reports a participant completing fleet placement
type FleetPlacedPayload struct {
	Participant string `json:"participant"`
}

// MatchStartedPayload contains data for match started events
type MatchStartedPayload struct {
	Participants []string `json:"participants"`
	Turn         string   `json:"turn"`
}

// ShotFiredPayload contains data for shot fired events. The coordinate is
// in text form, e.g. "B7".
type ShotFiredPayload struct {
	Shooter     string `json:"shooter"`
	Target      string `json:"target"`
	Coord       string `json:"coord"`
	Hit         bool   `json:"hit"`
	AfloatCount int    `json:"afloat_count"`
	NextTurn    string `json:"next_turn,omitempty"`
}

// ShipSunkPayload contains data for ship sunk events
type ShipSunkPayload struct {
	Target string `json:"target"`
	Ship   string `json:"ship"`
	Size   int    `json:"size"`
}

// MatchCompletePayload contains data for match complete events
type MatchCompletePayload struct {
	Winner string `json:"winner"`
}

// MatchAbandonedPayload contains data for match abandoned events
type MatchAbandonedPayload struct {
	By     string `json:"by"`
	Winner string `json:"winner,omitempty"`
}

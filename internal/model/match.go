package model

import "time"

// MatchID uniquely identifies a hosted match
type MatchID string

// MatchMode distinguishes solo play against the computer from two-player
// matches.
type MatchMode string

const (
	ModeSolo MatchMode = "solo"
	ModePvP  MatchMode = "pvp"
)

// ValidMatchModes returns the modes a match can be created with.
func ValidMatchModes() []MatchMode {
	return []MatchMode{ModeSolo, ModePvP}
}

// Valid reports whether the mode is a known one.
func (m MatchMode) Valid() bool {
	return m == ModeSolo || m == ModePvP
}

// MatchStatus represents the server-side lifecycle phase of a match
type MatchStatus string

const (
	StatusAwaitingOpponent MatchStatus = "awaiting_opponent" // pvp match with an open seat
	StatusPlacing          MatchStatus = "placing"           // seats filled, fleets incomplete
	StatusInProgress       MatchStatus = "in_progress"       // every board fields the full fleet
	StatusComplete         MatchStatus = "complete"          // one fleet fully sunk
	StatusAbandoned        MatchStatus = "abandoned"         // a participant resigned
)

// Match wraps an engine game with server bookkeeping: who hosts it, whether
// it can be joined, and how it ended.
type Match struct {
	ID         MatchID
	Mode       MatchMode
	Status     MatchStatus
	HostID     PlayerID
	OpponentID PlayerID // empty until a second player joins; always empty in solo matches

	// Winner is the engine participant name of the victor: a PlayerID, or
	// ComputerName when the computer wins a solo match. Empty while the
	// match is live or when an abandoned match has no remaining player.
	Winner string

	Game *Game

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParticipant reports whether the player occupies a seat in this match.
func (m *Match) HasParticipant(id PlayerID) bool {
	return id != "" && (m.HostID == id || m.OpponentID == id)
}

// OtherParticipant returns the player in the opposite seat, if any.
func (m *Match) OtherParticipant(id PlayerID) (PlayerID, bool) {
	if id == "" {
		return "", false
	}
	switch id {
	case m.HostID:
		if m.OpponentID != "" {
			return m.OpponentID, true
		}
	case m.OpponentID:
		return m.HostID, true
	}
	return "", false
}

// Joinable reports whether a second player can still take the open seat.
func (m *Match) Joinable() bool {
	return m.Mode == ModePvP && m.Status == StatusAwaitingOpponent && m.OpponentID == ""
}

// Over reports whether the match has finished.
func (m *Match) Over() bool {
	return m.Status == StatusComplete || m.Status == StatusAbandoned
}

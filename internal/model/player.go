package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// ParticipantName is the identity a player's board is registered under in
// the engine. Boards are keyed by player ID, never display name, so a
// display name change cannot orphan a board.
func (id PlayerID) ParticipantName() string {
	return string(id)
}

// Player represents someone who can host or join matches. Guests expire
// with their session; registered players persist.
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package response

import (
	"time"

	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/auth"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Ship identifies a fleet ship
type Ship struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ShipFromModel converts model.Ship
func ShipFromModel(s model.Ship) Ship {
	return Ship{
		Name: s.Name,
		Size: s.Size,
	}
}

// Match represents a match in API responses
type Match struct {
	ID         string    `json:"id"`
	Mode       string    `json:"mode"`
	Status     string    `json:"status"`
	HostID     string    `json:"host_id"`
	OpponentID string    `json:"opponent_id,omitempty"`
	Winner     string    `json:"winner,omitempty"`
	Turn       string    `json:"turn,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MatchFromModel converts model.Match
// Turn is only populated while the match is in progress
func MatchFromModel(m *model.Match) Match {
	resp := Match{
		ID:         string(m.ID),
		Mode:       string(m.Mode),
		Status:     string(m.Status),
		HostID:     string(m.HostID),
		OpponentID: string(m.OpponentID),
		Winner:     m.Winner,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.Status == model.StatusInProgress {
		resp.Turn = m.Game.TurnHolder()
	}
	return resp
}

// MatchList wraps a list of matches
type MatchList struct {
	Matches []Match `json:"matches"`
}

// MatchListFromModel converts a slice of model matches
func MatchListFromModel(matches []*model.Match) MatchList {
	resp := MatchList{Matches: make([]Match, len(matches))}
	for i, m := range matches {
		resp.Matches[i] = MatchFromModel(m)
	}
	return resp
}

// Shot represents a resolved shot in API responses
type Shot struct {
	Target      string `json:"target"`
	Coord       string `json:"coord"`
	Hit         bool   `json:"hit"`
	Sunk        *Ship  `json:"sunk,omitempty"`
	AfloatCount int    `json:"afloat_count"`
}

// ShotFromModel converts model.ShotResult
func ShotFromModel(r *model.ShotResult) Shot {
	shot := Shot{
		Target:      r.Target,
		Coord:       r.Coord.String(),
		Hit:         r.Hit,
		AfloatCount: len(r.Afloat),
	}
	if r.Sunk != nil {
		s := ShipFromModel(*r.Sunk)
		shot.Sunk = &s
	}
	return shot
}

// FireResponse is the response after firing a shot. Replies carries
// computer return fire in solo matches.
type FireResponse struct {
	Match   Match  `json:"match"`
	Shot    Shot   `json:"shot"`
	Replies []Shot `json:"replies,omitempty"`
}

// FireResponseFromResult converts a match.FireResult
func FireResponseFromResult(r *match.FireResult) FireResponse {
	resp := FireResponse{
		Match: MatchFromModel(r.Match),
		Shot:  ShotFromModel(r.Shot),
	}
	if len(r.Replies) > 0 {
		resp.Replies = make([]Shot, len(r.Replies))
		for i, reply := range r.Replies {
			resp.Replies[i] = ShotFromModel(reply)
		}
	}
	return resp
}

// ShipStatus reports one ship's placement and damage state. Cells only
// appears on the owner's own fleet view.
type ShipStatus struct {
	Name   string   `json:"name"`
	Size   int      `json:"size"`
	Placed bool     `json:"placed"`
	Cells  []string `json:"cells,omitempty"`
	Hits   int      `json:"hits"`
	Sunk   bool     `json:"sunk"`
}

// ShipStatusFromModel converts board.ShipStatus
func ShipStatusFromModel(s board.ShipStatus) ShipStatus {
	status := ShipStatus{
		Name:   s.Ship.Name,
		Size:   s.Ship.Size,
		Placed: s.Placed,
		Hits:   s.Hits,
		Sunk:   s.Sunk,
	}
	for _, cell := range s.Cells {
		status.Cells = append(status.Cells, cell.String())
	}
	return status
}

// FleetView is a participant's own board: ship cells plus incoming shots
type FleetView struct {
	Participant string       `json:"participant"`
	Grid        [][]string   `json:"grid"`
	Ships       []ShipStatus `json:"ships"`
}

// FleetViewFromModel converts board.FleetView
func FleetViewFromModel(v *board.FleetView) FleetView {
	grid := make([][]string, len(v.Grid))
	for i, row := range v.Grid {
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			grid[i][j] = string(cell)
		}
	}
	ships := make([]ShipStatus, len(v.Ships))
	for i, s := range v.Ships {
		ships[i] = ShipStatusFromModel(s)
	}
	return FleetView{
		Participant: v.Participant,
		Grid:        grid,
		Ships:       ships,
	}
}

// TargetView is the viewer's picture of the opponent's board: shot
// outcomes only, never ship positions
type TargetView struct {
	Participant string     `json:"participant"`
	Grid        [][]string `json:"grid"`
	ShipsAfloat int        `json:"ships_afloat"`
	ShipsSunk   []Ship     `json:"ships_sunk"`
}

// TargetViewFromModel converts board.TargetView
func TargetViewFromModel(v *board.TargetView) TargetView {
	grid := make([][]string, len(v.Grid))
	for i, row := range v.Grid {
		grid[i] = make([]string, len(row))
		for j, cell := range row {
			grid[i][j] = string(cell)
		}
	}
	sunk := make([]Ship, len(v.ShipsSunk))
	for i, s := range v.ShipsSunk {
		sunk[i] = ShipFromModel(s)
	}
	return TargetView{
		Participant: v.Participant,
		Grid:        grid,
		ShipsAfloat: v.ShipsAfloat,
		ShipsSunk:   sunk,
	}
}

// PlaceShipResponse is the response after placing a ship
type PlaceShipResponse struct {
	Match Match     `json:"match"`
	Fleet FleetView `json:"fleet"`
}

// ParticipantScore is one participant's line in a match summary
type ParticipantScore struct {
	Name        string  `json:"name"`
	ShotsFired  int     `json:"shots_fired"`
	Hits        int     `json:"hits"`
	Misses      int     `json:"misses"`
	Accuracy    float64 `json:"accuracy"`
	ShipsLost   int     `json:"ships_lost"`
	ShipsAfloat int     `json:"ships_afloat"`
}

// ParticipantScoreFromModel converts model.ParticipantScore
func ParticipantScoreFromModel(s model.ParticipantScore) ParticipantScore {
	return ParticipantScore{
		Name:        s.Name,
		ShotsFired:  s.ShotsFired,
		Hits:        s.Hits,
		Misses:      s.Misses,
		Accuracy:    s.Accuracy,
		ShipsLost:   s.ShipsLost,
		ShipsAfloat: s.ShipsAfloat,
	}
}

// MatchSummary represents a completed match in history responses
type MatchSummary struct {
	MatchID      string             `json:"match_id"`
	Mode         string             `json:"mode"`
	Status       string             `json:"status"`
	Winner       string             `json:"winner,omitempty"`
	TotalShots   int                `json:"total_shots"`
	Participants []ParticipantScore `json:"participants"`
	StartedAt    time.Time          `json:"started_at"`
	CompletedAt  time.Time          `json:"completed_at"`
}

// MatchSummaryFromModel converts model.MatchSummary
func MatchSummaryFromModel(s *model.MatchSummary) MatchSummary {
	participants := make([]ParticipantScore, len(s.Participants))
	for i, p := range s.Participants {
		participants[i] = ParticipantScoreFromModel(p)
	}
	return MatchSummary{
		MatchID:      string(s.MatchID),
		Mode:         string(s.Mode),
		Status:       string(s.Status),
		Winner:       s.Winner,
		TotalShots:   s.TotalShots,
		Participants: participants,
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
	}
}

// HistoryResponse wraps recent match summaries
type HistoryResponse struct {
	Matches []MatchSummary `json:"matches"`
}

// HistoryResponseFromModel converts a slice of summaries
func HistoryResponseFromModel(summaries []*model.MatchSummary) HistoryResponse {
	resp := HistoryResponse{Matches: make([]MatchSummary, len(summaries))}
	for i, s := range summaries {
		resp.Matches[i] = MatchSummaryFromModel(s)
	}
	return resp
}

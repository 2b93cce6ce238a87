package model

import "time"

// ParticipantScore summarizes one participant's shooting record in a match.
type ParticipantScore struct {
	Name        string
	ShotsFired  int
	Hits        int
	Misses      int
	Accuracy    float64 // hits over shots fired, 0 when no shots
	ShipsLost   int
	ShipsAfloat int
}

// MatchSummary is the final record of a finished match, built by the scoring
// service and handed to the history recorder.
type MatchSummary struct {
	MatchID      MatchID
	Mode         MatchMode
	Status       MatchStatus
	Winner       string
	TotalShots   int
	Participants []ParticipantScore
	StartedAt    time.Time
	CompletedAt  time.Time
}

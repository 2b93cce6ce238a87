package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateMatchRequest is the request body for creating a match
type CreateMatchRequest struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty,omitempty"`
}

// PlaceShipRequest is the request body for placing a ship
// Either cells or start+orientation identifies the placement
type PlaceShipRequest struct {
	Ship        string   `json:"ship"`
	Cells       []string `json:"cells,omitempty"`
	Start       string   `json:"start,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
}

// FireShotRequest is the request body for firing a shot
// Auto asks the server to pick the coordinate with the match's
// targeting strategy
type FireShotRequest struct {
	Coord string `json:"coord,omitempty"`
	Auto  bool   `json:"auto,omitempty"`
}

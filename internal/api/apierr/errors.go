package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/auth"
	"github.com/mcoot/battleshipgame-go/internal/services/bot"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCoordinate  = "INVALID_COORDINATE"
	CodeInvalidPlacement   = "INVALID_PLACEMENT"
	CodeUnknownShip        = "UNKNOWN_SHIP"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodeNotInMatch         = "NOT_IN_MATCH"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeMatchNotJoinable   = "MATCH_NOT_JOINABLE"
	CodeMatchNotInProgress = "MATCH_NOT_IN_PROGRESS"
	CodeMatchOver          = "MATCH_OVER"
	CodeAlreadyInMatch     = "ALREADY_IN_MATCH"
	CodeCellOccupied       = "CELL_OCCUPIED"
	CodeShipAlreadyPlaced  = "SHIP_ALREADY_PLACED"
	CodeAlreadyShot        = "ALREADY_SHOT"
	CodeFleetIncomplete    = "FLEET_INCOMPLETE"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeHistoryUnavailable = "HISTORY_UNAVAILABLE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrUnknownParticipant):
		return &httpError{http.StatusNotFound, APIError{CodeNotInMatch, "No board for that participant"}}
	case errors.Is(err, model.ErrMatchNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotJoinable, "Match cannot be joined"}}
	case errors.Is(err, model.ErrDuplicateParticipant):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInMatch, "Already in this match"}}
	case errors.Is(err, model.ErrGameFull):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotJoinable, "Match already has two players"}}
	case errors.Is(err, model.ErrMatchNotInProgress):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotInProgress, "Match is not in progress"}}
	case errors.Is(err, model.ErrMatchOver):
		return &httpError{http.StatusConflict, APIError{CodeMatchOver, "Match is already over"}}
	case errors.Is(err, model.ErrFleetIncomplete):
		return &httpError{http.StatusConflict, APIError{CodeFleetIncomplete, "Fleet is not fully placed"}}
	case errors.Is(err, model.ErrNotInMatch):
		return &httpError{http.StatusForbidden, APIError{CodeNotInMatch, "Not a participant in this match"}}
	case errors.Is(err, model.ErrNotPlayerTurn):
		return &httpError{http.StatusForbidden, APIError{CodeNotYourTurn, "Not your turn"}}
	case errors.Is(err, model.ErrInvalidCoordinate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCoordinate, "Coordinate must be A1 through J10"}}
	case errors.Is(err, model.ErrInvalidOrientation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Orientation must be north, east, south, or west"}}
	case errors.Is(err, model.ErrCoordinateCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlacement, "Cell count does not match ship size"}}
	case errors.Is(err, model.ErrCellsNotContiguous):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlacement, "Cells must form a straight contiguous line"}}
	case errors.Is(err, model.ErrUnknownShip):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownShip, "No such ship in the fleet"}}
	case errors.Is(err, model.ErrCellOccupied):
		return &httpError{http.StatusConflict, APIError{CodeCellOccupied, "Cell is already occupied"}}
	case errors.Is(err, model.ErrShipAlreadyPlaced):
		return &httpError{http.StatusConflict, APIError{CodeShipAlreadyPlaced, "Ship is already placed"}}
	case errors.Is(err, model.ErrAlreadyShot):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyShot, "Cell has already been shot"}}

	// Map service errors
	case errors.Is(err, match.ErrInvalidMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Mode must be solo or pvp"}}
	case errors.Is(err, bot.ErrUnknownDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Difficulty must be easy or hard"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewHistoryUnavailableError creates an error for when match history is not configured
func NewHistoryUnavailableError() error {
	return &httpError{http.StatusServiceUnavailable, APIError{CodeHistoryUnavailable, "Match history is not enabled on this server"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

package handler

import (
	"net/http"

	"github.com/mcoot/battleshipgame-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest     = apierr.CodeInvalidRequest
	CodeInvalidCoordinate  = apierr.CodeInvalidCoordinate
	CodeInvalidPlacement   = apierr.CodeInvalidPlacement
	CodeUnknownShip        = apierr.CodeUnknownShip
	CodeUnauthorized       = apierr.CodeUnauthorized
	CodeNotYourTurn        = apierr.CodeNotYourTurn
	CodeNotInMatch         = apierr.CodeNotInMatch
	CodePlayerNotFound     = apierr.CodePlayerNotFound
	CodeMatchNotFound      = apierr.CodeMatchNotFound
	CodeMatchNotJoinable   = apierr.CodeMatchNotJoinable
	CodeMatchNotInProgress = apierr.CodeMatchNotInProgress
	CodeMatchOver          = apierr.CodeMatchOver
	CodeAlreadyInMatch     = apierr.CodeAlreadyInMatch
	CodeCellOccupied       = apierr.CodeCellOccupied
	CodeShipAlreadyPlaced  = apierr.CodeShipAlreadyPlaced
	CodeAlreadyShot        = apierr.CodeAlreadyShot
	CodeFleetIncomplete    = apierr.CodeFleetIncomplete
	CodeUsernameExists     = apierr.CodeUsernameExists
	CodeInvalidCredentials = apierr.CodeInvalidCredentials
	CodeHistoryUnavailable = apierr.CodeHistoryUnavailable
	CodeInternalError      = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewHistoryUnavailableError creates an error for a disabled history store
func NewHistoryUnavailableError() error {
	return apierr.NewHistoryUnavailableError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}

package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleshipgame-go/internal/api/middleware"
	"github.com/mcoot/battleshipgame-go/internal/api/request"
	"github.com/mcoot/battleshipgame-go/internal/api/response"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
	"github.com/mcoot/battleshipgame-go/internal/services/bot"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
	"github.com/mcoot/battleshipgame-go/internal/ws"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	matchController *match.Controller
	boardService    *board.Service
	broadcaster     *ws.Broadcaster
}

// NewMatchHandler creates a new match handler. A nil broadcaster disables
// event publication.
func NewMatchHandler(
	matchController *match.Controller,
	boardService *board.Service,
	broadcaster *ws.Broadcaster,
) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
		boardService:    boardService,
		broadcaster:     broadcaster,
	}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Mode == "" {
		WriteError(w, NewInvalidRequestError("mode is required"))
		return
	}

	m, err := h.matchController.CreateMatch(r.Context(), player.ID, model.MatchMode(req.Mode), bot.Difficulty(req.Difficulty))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m))
}

// ListOpen handles GET /api/v1/matches/open
func (h *MatchHandler) ListOpen(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchController.ListOpenMatches(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchListFromModel(matches))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// Join handles POST /api/v1/matches/{id}/join
func (h *MatchHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.JoinMatch(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.broadcaster; b != nil {
		b.PlayerJoined(m, player)
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// PlaceShip handles POST /api/v1/matches/{id}/ships
func (h *MatchHandler) PlaceShip(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.PlaceShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Ship == "" {
		WriteError(w, NewInvalidRequestError("ship is required"))
		return
	}

	var m *model.Match
	var err error
	switch {
	case len(req.Cells) > 0:
		cells := make([]model.Coord, len(req.Cells))
		for i, raw := range req.Cells {
			c, parseErr := model.ParseCoord(raw)
			if parseErr != nil {
				WriteError(w, parseErr)
				return
			}
			cells[i] = c
		}
		m, err = h.matchController.PlaceShip(r.Context(), id, player.ID, req.Ship, cells)
	case req.Start != "":
		start, parseErr := model.ParseCoord(req.Start)
		if parseErr != nil {
			WriteError(w, parseErr)
			return
		}
		orientation, parseErr := model.ParseOrientation(req.Orientation)
		if parseErr != nil {
			WriteError(w, parseErr)
			return
		}
		m, err = h.matchController.PlaceShipAt(r.Context(), id, player.ID, req.Ship, start, orientation)
	default:
		WriteError(w, NewInvalidRequestError("either cells or start and orientation are required"))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	fleet, err := h.boardService.FleetView(m, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.broadcaster; b != nil {
		if fleetComplete(fleet) {
			b.FleetPlaced(m, player.ID.ParticipantName())
		}
		if m.Status == model.StatusInProgress {
			b.MatchStarted(m)
		}
	}

	resp := response.PlaceShipResponse{
		Match: response.MatchFromModel(m),
		Fleet: response.FleetViewFromModel(fleet),
	}
	response.JSON(w, http.StatusOK, resp)
}

// Fire handles POST /api/v1/matches/{id}/shots
func (h *MatchHandler) Fire(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	var req request.FireShotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var result *match.FireResult
	var err error
	switch {
	case req.Coord != "":
		coord, parseErr := model.ParseCoord(req.Coord)
		if parseErr != nil {
			WriteError(w, parseErr)
			return
		}
		result, err = h.matchController.FireShot(r.Context(), id, player.ID, coord)
	case req.Auto:
		result, err = h.matchController.FireShotAuto(r.Context(), id, player.ID)
	default:
		WriteError(w, NewInvalidRequestError("coord is required unless auto is set"))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.broadcaster; b != nil {
		b.ShotFired(result.Match, player.ID.ParticipantName(), result.Shot)
		for _, reply := range result.Replies {
			b.ShotFired(result.Match, model.ComputerName, reply)
		}
		if result.Match.Status == model.StatusComplete {
			b.MatchComplete(result.Match)
		}
	}

	response.JSON(w, http.StatusOK, response.FireResponseFromResult(result))
}

// Board handles GET /api/v1/matches/{id}/board
// Returns the caller's own board with ship positions
func (h *MatchHandler) Board(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.boardService.FleetView(m, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FleetViewFromModel(view))
}

// Target handles GET /api/v1/matches/{id}/target
// Returns the caller's view of the opposing board, shot outcomes only
func (h *MatchHandler) Target(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.boardService.TargetView(m, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TargetViewFromModel(view))
}

// Abandon handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.Abandon(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	if b := h.broadcaster; b != nil && m.Status == model.StatusAbandoned {
		b.MatchAbandoned(m, player.ID)
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m))
}

// fleetComplete reports whether every fleet ship has been placed
func fleetComplete(v *board.FleetView) bool {
	for _, s := range v.Ships {
		if !s.Placed {
			return false
		}
	}
	return true
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/mcoot/battleshipgame-go/internal/api/middleware"
	"github.com/mcoot/battleshipgame-go/internal/model"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
	"github.com/mcoot/battleshipgame-go/internal/ws"
)

// EventsHandler upgrades match participants to WebSocket event streams
type EventsHandler struct {
	matchController *match.Controller
	hubManager      *ws.HubManager
	upgrader        websocket.Upgrader
	logger          *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(matchController *match.Controller, hubManager *ws.HubManager, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		matchController: matchController,
		hubManager:      hubManager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// Watch handles GET /api/v1/matches/{id}/events
// Blocks serving events until the client disconnects
func (h *EventsHandler) Watch(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	if !m.HasParticipant(player.ID) {
		WriteError(w, model.ErrNotInMatch)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		h.logger.Warn("websocket upgrade failed",
			slog.String("match_id", string(id)),
			slog.Any("error", err),
		)
		return
	}

	hub := h.hubManager.GetOrCreateHub(m.ID)
	client := ws.NewClient(hub, conn, player.ID)
	client.Serve()
}

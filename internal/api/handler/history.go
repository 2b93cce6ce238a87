package handler

import (
	"net/http"
	"strconv"

	"github.com/mcoot/battleshipgame-go/internal/api/response"
	"github.com/mcoot/battleshipgame-go/internal/services/history"
)

// HistoryHandler handles match history endpoints
type HistoryHandler struct {
	store *history.Store
}

// NewHistoryHandler creates a new history handler. A nil store means
// history is not configured and the endpoint reports unavailable.
func NewHistoryHandler(store *history.Store) *HistoryHandler {
	return &HistoryHandler{store: store}
}

// Recent handles GET /api/v1/history
func (h *HistoryHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		WriteError(w, NewHistoryUnavailableError())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			WriteError(w, NewInvalidRequestError("limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	summaries, err := h.store.RecentMatches(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HistoryResponseFromModel(summaries))
}

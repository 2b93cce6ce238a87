package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleshipgame-go/internal/api/handler"
	"github.com/mcoot/battleshipgame-go/internal/api/middleware"
	"github.com/mcoot/battleshipgame-go/internal/services/auth"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
	"github.com/mcoot/battleshipgame-go/internal/services/history"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
	"github.com/mcoot/battleshipgame-go/internal/ws"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	MatchController *match.Controller
	BoardService    *board.Service
	HubManager      *ws.HubManager
	Broadcaster     *ws.Broadcaster
	HistoryStore    *history.Store // nil disables the history endpoint
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	matchHandler := handler.NewMatchHandler(cfg.MatchController, cfg.BoardService, cfg.Broadcaster)
	historyHandler := handler.NewHistoryHandler(cfg.HistoryStore)
	eventsHandler := handler.NewEventsHandler(cfg.MatchController, cfg.HubManager, cfg.Logger)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Match routes (all require auth)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("/open", matchHandler.ListOpen).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.Abandon).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/join", matchHandler.Join).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/ships", matchHandler.PlaceShip).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/shots", matchHandler.Fire).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/board", matchHandler.Board).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/target", matchHandler.Target).Methods(http.MethodGet)
	matches.HandleFunc("/{id}/events", eventsHandler.Watch).Methods(http.MethodGet)

	// Match history (auth required; 503 when no store is configured)
	historyRoutes := api.PathPrefix("/history").Subrouter()
	historyRoutes.Use(authMiddleware)
	historyRoutes.HandleFunc("", historyHandler.Recent).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

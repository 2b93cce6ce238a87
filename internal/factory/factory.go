package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/battleshipgame-go/internal/dependencies/clock"
	"github.com/mcoot/battleshipgame-go/internal/dependencies/random"
	"github.com/mcoot/battleshipgame-go/internal/services/auth"
	"github.com/mcoot/battleshipgame-go/internal/services/board"
	"github.com/mcoot/battleshipgame-go/internal/services/bot"
	"github.com/mcoot/battleshipgame-go/internal/services/history"
	"github.com/mcoot/battleshipgame-go/internal/services/match"
	"github.com/mcoot/battleshipgame-go/internal/services/scoring"
	"github.com/mcoot/battleshipgame-go/internal/storage"
	"github.com/mcoot/battleshipgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/battleshipgame-go/internal/storage/redis"
	"github.com/mcoot/battleshipgame-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	BotService      *bot.Service
	BoardService    *board.Service
	ScoringService  *scoring.Service
	MatchController *match.Controller
	AuthService     *auth.Service
	HistoryStore    *history.Store // nil when history is disabled
	HubManager      *ws.HubManager
	Broadcaster     *ws.Broadcaster
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// HistoryConfig configures the Postgres match history store
	// An empty DatabaseURL disables history
	HistoryConfig history.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Open and migrate the history store when configured
	var historyStore *history.Store
	clk := clock.New()
	if cfg.HistoryConfig.Enabled() {
		hs, err := history.Open(cfg.HistoryConfig, clk, logger)
		if err != nil {
			return nil, err
		}
		if err := hs.Migrate(); err != nil {
			return nil, err
		}
		historyStore = hs
	}

	// Create external dependencies
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, historyStore, clk, rnd, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	historyStore *history.Store,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	logger *slog.Logger,
) *App {
	// Create services
	botService := bot.NewService(logger)
	boardService := board.New()
	scoringService := scoring.New()

	// A nil *history.Store must stay a nil Recorder interface
	var recorder match.Recorder
	if historyStore != nil {
		recorder = historyStore
	}

	matchController := match.NewController(store, botService, scoringService, recorder, clk, rnd, logger)
	authService := auth.New(store, clk, rnd, authCfg)
	hubManager := ws.NewHubManager(logger)
	broadcaster := ws.NewBroadcaster(hubManager, clk, logger)

	return &App{
		Storage:         store,
		Clock:           clk,
		Random:          rnd,
		BotService:      botService,
		BoardService:    boardService,
		ScoringService:  scoringService,
		MatchController: matchController,
		AuthService:     authService,
		HistoryStore:    historyStore,
		HubManager:      hubManager,
		Broadcaster:     broadcaster,
	}
}

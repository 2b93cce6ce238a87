package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mcoot/battleshipgame-go/internal/api"
	"github.com/mcoot/battleshipgame-go/internal/factory"
	"github.com/mcoot/battleshipgame-go/internal/services/auth"
	"github.com/mcoot/battleshipgame-go/internal/services/history"
	redisstorage "github.com/mcoot/battleshipgame-go/internal/storage/redis"
)

// serverEnv is the server's environment configuration
type serverEnv struct {
	Host            string        `env:"BSGAME_HOST"`
	Port            int           `env:"BSGAME_PORT" envDefault:"8080"`
	LogLevel        slog.Level    `env:"BSGAME_LOG_LEVEL" envDefault:"info"`
	StorageType     string        `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL        string        `env:"REDIS_URL"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	SessionDuration time.Duration `env:"SESSION_DURATION" envDefault:"24h"`
}

func main() {
	// Load .env outside production
	if os.Getenv("STAGE") != "prod" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			slog.Error("failed to load .env", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	var envCfg serverEnv
	if err := env.Parse(&envCfg); err != nil {
		slog.Error("failed to parse environment", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: envCfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	historyCfg := history.DefaultConfig()
	historyCfg.DatabaseURL = envCfg.DatabaseURL

	cfg := factory.Config{
		Logger:        logger,
		StorageType:   envCfg.StorageType,
		AuthConfig:    auth.Config{SessionDuration: envCfg.SessionDuration},
		HistoryConfig: historyCfg,
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if envCfg.RedisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = envCfg.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if app.HistoryStore != nil {
		logger.Info("match history enabled")
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		MatchController: app.MatchController,
		BoardService:    app.BoardService,
		HubManager:      app.HubManager,
		Broadcaster:     app.Broadcaster,
		HistoryStore:    app.HistoryStore,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = envCfg.Host
	serverConfig.Port = envCfg.Port
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Periodic maintenance: expired sessions and event hubs with no watchers
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.AuthService.CleanExpiredSessions()
				app.HubManager.CleanupEmptyHubs()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

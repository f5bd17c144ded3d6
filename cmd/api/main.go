package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nayanchoudhary31/raffle-service/api/routes"
	"github.com/nayanchoudhary31/raffle-service/internal/config"
	"github.com/nayanchoudhary31/raffle-service/internal/events"
	"github.com/nayanchoudhary31/raffle-service/internal/handlers"
	"github.com/nayanchoudhary31/raffle-service/internal/keeper"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories"
	memrepo "github.com/nayanchoudhary31/raffle-service/internal/repositories/memory"
	mongorepo "github.com/nayanchoudhary31/raffle-service/internal/repositories/mongodb"
	"github.com/nayanchoudhary31/raffle-service/internal/services"
	"github.com/nayanchoudhary31/raffle-service/pkg/jwt"
	"github.com/nayanchoudhary31/raffle-service/pkg/mongodb"
	"github.com/nayanchoudhary31/raffle-service/pkg/treasury"
	"github.com/nayanchoudhary31/raffle-service/pkg/vrf"
)

func main() {
	// Load .env if present, real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg)

	if !config.GetEnvAsBool("GIN_DEBUG", false) {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize repositories, MongoDB when enabled and in-memory otherwise
	var eventRepo repositories.RaffleEventRepository
	var winnerRepo repositories.WinnerRepository
	var mongoClient *mongodb.Client
	if cfg.MongoDB.Enabled {
		mongoClient, err = mongodb.NewClient(context.Background(), cfg.MongoDB.URI)
		if err != nil {
			slog.Error("failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		db := mongoClient.Database(cfg.MongoDB.Database)
		eventRepo = mongorepo.NewRaffleEventRepository(db)
		winnerRepo = mongorepo.NewWinnerRepository(db)
	} else {
		slog.Warn("MongoDB disabled, journal and winner archive are in-memory only")
		eventRepo = memrepo.NewRaffleEventRepository()
		winnerRepo = memrepo.NewWinnerRepository()
	}

	// Event journal and websocket fanout
	hub := events.NewHub()
	eventService := services.NewEventService(eventRepo, winnerRepo, hub)

	// Settlement rail
	var treas treasury.Treasury
	if cfg.Treasury.Mock {
		slog.Warn("using in-memory treasury, payouts are not real")
		treas = treasury.NewMemoryTreasury()
	} else {
		treas = treasury.NewHTTPTreasury(cfg)
	}

	// Randomness coordinator
	var coordinator vrf.Coordinator
	var mockCoordinator *vrf.MockCoordinator
	if cfg.VRF.Mock {
		slog.Warn("using mock randomness coordinator")
		mockCoordinator = vrf.NewMockCoordinator(cfg.VRF.MockFulfillDelay)
		coordinator = mockCoordinator
	} else {
		coordinator = vrf.NewHTTPCoordinator(cfg)
	}

	// Initialize services
	raffleService := services.NewRaffleService(cfg, coordinator, treas, eventService)

	// The mock delivers fulfillments in-process instead of through the
	// callback route, so it needs the service handed back to it.
	if mockCoordinator != nil {
		mockCoordinator.SetFulfiller(vrf.FulfillerFunc(func(ctx context.Context, requestID string, randomWords []uint64) error {
			_, err := raffleService.FulfillRandomness(ctx, requestID, randomWords)
			return err
		}))
	}

	tokenService := jwt.NewTokenService(cfg)
	authService := services.NewAuthService(cfg, tokenService)

	// Initialize handlers
	handlerDeps := &routes.HandlerDependencies{
		RaffleHandler: handlers.NewRaffleHandler(raffleService),
		VRFHandler:    handlers.NewVRFHandler(raffleService),
		EventHandler:  handlers.NewEventHandler(eventService, hub),
		AuthHandler:   handlers.NewAuthHandler(authService),
		AdminHandler:  handlers.NewAdminHandler(raffleService),
	}

	// Setup router
	router := routes.SetupRouter(cfg, handlerDeps)

	// Start the automation trigger
	var kpr *keeper.Keeper
	if cfg.Keeper.Enabled {
		kpr = keeper.New(raffleService, cfg.Keeper.PollInterval)
		if err := kpr.Start(context.Background()); err != nil {
			slog.Error("failed to start keeper", "error", err)
			os.Exit(1)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("server starting",
		"port", cfg.Server.Port,
		"stakeAmount", cfg.Raffle.StakeAmount,
		"drawInterval", cfg.Raffle.DrawInterval.String(),
	)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	// Stop the trigger before the event pipeline so no new draw starts
	// during teardown
	if kpr != nil {
		kpr.Stop()
	}
	eventService.Close()

	if mongoClient != nil {
		if err := mongoClient.Disconnect(ctx); err != nil {
			slog.Error("error disconnecting from MongoDB", "error", err)
		}
	}

	slog.Info("server exiting")
}

// setupLogger installs the process-wide slog handler from the Log config.
func setupLogger(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var out io.Writer = os.Stdout
	if cfg.Log.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
		}
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.ToLower(cfg.Log.Format) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}

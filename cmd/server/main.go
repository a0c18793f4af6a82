package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"stevensfit/fitness-api/internal/api"
	"stevensfit/fitness-api/internal/app"
	"stevensfit/fitness-api/internal/config"
	"stevensfit/fitness-api/internal/logging"
)

// Idle rate-limiter entries are dropped after this long.
const limiterTTL = 10 * time.Minute

// @title Stevens Fit API
// @version 1.0
// @description API for the exercise library, users and friendships, workouts and workout logs.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("could not load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(logger)
	logger.Info("starting fitness api server", slog.String("backend", cfg.Database.Backend))

	ctx := logging.WithLogger(context.Background(), logger)

	// --- Database Connection + Indexes ---
	repos, closeDB, err := app.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("could not open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		logger.Info("disconnecting database")
		if err := closeDB(); err != nil {
			logger.Error("failed to disconnect database", slog.Any("error", err))
		}
	}()

	// --- Initialize Services ---
	services := repos.Services(cfg.Security.BcryptCost)

	// --- Initialize Gin Engine ---
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(logger))

	// --- Setup Routes ---
	limiter := api.NewIPRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window, cfg.RateLimit.Burst, limiterTTL)
	api.SetupRoutes(router, limiter, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("shutting down server", slog.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server stopped unexpectedly", slog.Any("error", err))
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", slog.Any("error", err))
	}

	logger.Info("server exiting")
}

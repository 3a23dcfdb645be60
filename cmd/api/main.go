// Package main is the entry point for the Tour Planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/tour-planner/backend/internal/config"
	"github.com/pkordes/tour-planner/backend/internal/handler"
	"github.com/pkordes/tour-planner/backend/internal/llm"
	"github.com/pkordes/tour-planner/backend/internal/middleware"
	"github.com/pkordes/tour-planner/backend/internal/service"
	"github.com/pkordes/tour-planner/backend/internal/suggestion"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if missing := cfg.MissingSecrets(); len(missing) > 0 {
		slog.Warn("required secrets not set", "missing", missing)
	}

	ctx := context.Background()

	// --- Store ------------------------------------------------------------
	plans, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open plan store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- AI backend -------------------------------------------------------
	// Built once and shared by every request. A client that cannot be built
	// is replaced by one that always fails, so plans are still accepted with
	// a placeholder suggestion.
	var completer suggestion.Completer
	aiClient, err := llm.New(ctx, llm.Config{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
		BaseURL:  cfg.AIBaseURL,
	})
	if err != nil {
		slog.Warn("ai backend unavailable; plans will carry a placeholder suggestion", "error", err)
		completer = llm.Unavailable{Reason: err}
	} else {
		slog.Info("ai backend configured", "provider", aiClient.Provider())
		completer = aiClient
	}

	planService := service.NewPlanService(plans, suggestion.NewGenerator(completer, logger), logger)

	// --- Router -----------------------------------------------------------
	// RequestID → RealIP → SlogLogger → Recoverer → CORS → MaxBodySize.
	// Recoverer turns panics into HTTP 500 instead of crashing the process.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", handler.Handler(handler.NewServer(planService)))

	// --- HTTP Server ------------------------------------------------------
	// WriteTimeout leaves room for a slow AI backend on POST /plans.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	// Give in-flight submissions up to 15 seconds to finish.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

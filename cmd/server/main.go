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

	"github.com/dgallion1/zix/internal/api"
	"github.com/dgallion1/zix/internal/app"
	"github.com/dgallion1/zix/internal/config"
	"github.com/dgallion1/zix/internal/logger"
	"github.com/dgallion1/zix/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	if err := a.Annotator.Ping(pingCtx); err != nil {
		log.Warn("annotation service not reachable yet", "url", cfg.Annotator.URL, "error", err)
	}
	pingCancel()

	if cfg.Server.APIKey == "" {
		log.Warn("ZIX_API_KEY not set, API authentication disabled")
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg.Pipeline, a.Analyzer, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, a.Stats, a.Cache(), log, cfg.Server)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      srv,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("http shutdown", "error", err)
		}

		orch.Stop()
	}()

	log.Info("starting zix",
		"version", app.BuildVersion(),
		"port", cfg.Server.Port,
		"model_version", a.Scorer.ModelVersion(),
		"annotator", cfg.Annotator.URL)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	<-done
}

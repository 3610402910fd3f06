package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/pdfoutline/internal/api"
	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/history"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	hcfg, err := config.LoadHeuristics(cfg.HeuristicsFile)
	if err != nil {
		log.Error("invalid heuristics file", "error", err)
		os.Exit(1)
	}
	cfg.Heuristics = hcfg

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional run history.
	var hist *history.Store
	if cfg.HistoryDB != "" {
		hist, err = history.Open(cfg.HistoryDB)
		if err != nil {
			log.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, hist, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, hist, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if hist != nil {
			hist.Close()
		}
	}()

	log.Info("starting pdfoutline", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

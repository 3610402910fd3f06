// Command outline extracts title + heading outlines from every PDF in an
// input directory and writes one JSON file per document.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dgallion1/pdfoutline/internal/config"
	"github.com/dgallion1/pdfoutline/internal/extract"
	"github.com/dgallion1/pdfoutline/internal/history"
	"github.com/dgallion1/pdfoutline/internal/pipeline"
)

func main() {
	cfg := config.Load()

	inputDir := flag.String("in", cfg.InputDir, "directory with input PDFs")
	outputDir := flag.String("out", cfg.OutputDir, "directory for JSON outputs")
	workers := flag.Int("workers", cfg.WorkerCount, "number of concurrent documents")
	heuristicsFile := flag.String("config", cfg.HeuristicsFile, "optional YAML heuristics file")
	historyDB := flag.String("history", cfg.HistoryDB, "optional SQLite run history path")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	hcfg, err := config.LoadHeuristics(*heuristicsFile)
	if err != nil {
		log.Error("invalid heuristics file", "error", err)
		os.Exit(1)
	}

	var hist *history.Store
	if *historyDB != "" {
		hist, err = history.Open(*historyDB)
		if err != nil {
			log.Error("failed to open history store", "error", err)
			os.Exit(1)
		}
		defer hist.Close()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	w := pipeline.NewWorker(extract.Backends(), hcfg, log, cfg.DocTimeout).WithHistory(hist)

	summary, err := pipeline.RunBatch(ctx, w, *inputDir, *outputDir, *workers, log)
	if err != nil {
		log.Error("batch failed", "error", err)
		os.Exit(1)
	}
	log.Info("batch complete", "processed", summary.Processed, "failed", summary.Failed)
}

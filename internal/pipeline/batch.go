package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// BatchSummary reports what a directory run did.
type BatchSummary struct {
	Processed int
	Failed    int
}

// RunBatch discovers every *.pdf under inputDir, extracts an outline from
// each, and writes one JSON file per input into outputDir. A document
// failure is logged and skipped; the batch always continues. Documents run
// concurrently on a bounded pool, the per-document pipeline stays
// sequential.
func RunBatch(ctx context.Context, w *Worker, inputDir, outputDir string, workers int, log *slog.Logger) (BatchSummary, error) {
	var summary BatchSummary

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return summary, fmt.Errorf("read input dir: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return summary, fmt.Errorf("create output dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		log.Warn("no pdf files found", "dir", inputDir)
		return summary, nil
	}

	if workers <= 0 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range files {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			defer func() { <-sem }()

			res := w.ProcessFile(ctx, filepath.Join(inputDir, name), name)
			if res.Err == nil {
				outPath := filepath.Join(outputDir, strings.TrimSuffix(name, filepath.Ext(name))+".json")
				if err := writeOutlineJSON(outPath, res); err != nil {
					res.Err = err
				}
			}

			mu.Lock()
			defer mu.Unlock()
			if res.Err != nil {
				summary.Failed++
				log.Error("document failed", "file", name, "error", res.Err)
				return
			}
			summary.Processed++
			log.Info("document processed",
				"file", name,
				"entries", len(res.Outline.Entries),
				"duration_ms", res.Duration.Milliseconds(),
			)
		}(name)
	}
	wg.Wait()

	return summary, nil
}

func writeOutlineJSON(path string, res Result) error {
	data, err := json.MarshalIndent(res.Outline, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal outline: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

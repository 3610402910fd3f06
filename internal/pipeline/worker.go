package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgallion1/pdfoutline/internal/classify"
	"github.com/dgallion1/pdfoutline/internal/extract"
	"github.com/dgallion1/pdfoutline/internal/history"
	"github.com/dgallion1/pdfoutline/internal/merge"
	"github.com/dgallion1/pdfoutline/internal/outline"
)

// Result is the per-document outcome. A failed document carries Err and no
// outline; failures never abort the surrounding batch.
type Result struct {
	Filename string
	Outline  *outline.Outline
	Quality  extract.Quality
	Duration time.Duration
	Err      error
}

// Worker processes one document at a time: both extraction backends, the
// cross-validation merge, then classification. Everything a document needs
// is built fresh per call; nothing leaks between documents.
type Worker struct {
	backends []extract.Backend
	hcfg     classify.Config
	log      *slog.Logger
	timeout  time.Duration

	history *history.Store // optional
	stats   *RunStats      // optional
}

func NewWorker(backends []extract.Backend, hcfg classify.Config, log *slog.Logger, timeout time.Duration) *Worker {
	if len(backends) == 0 {
		backends = extract.Backends()
	}
	return &Worker{
		backends: backends,
		hcfg:     hcfg,
		log:      log,
		timeout:  timeout,
	}
}

// WithHistory attaches a run history store.
func (w *Worker) WithHistory(h *history.Store) *Worker {
	w.history = h
	return w
}

// WithStats attaches a processing stats tracker.
func (w *Worker) WithStats(s *RunStats) *Worker {
	w.stats = s
	return w
}

// ProcessFile runs the full extraction pipeline for one PDF on disk.
func (w *Worker) ProcessFile(ctx context.Context, path, filename string) Result {
	start := time.Now()
	if w.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	res := w.process(ctx, path, filename)
	res.Duration = time.Since(start)
	w.record(res)
	return res
}

func (w *Worker) process(ctx context.Context, path, filename string) Result {
	log := w.log.With("file", filename)
	res := Result{Filename: filename}

	// Phase 1: extract with every backend. One backend failing is tolerated
	// as long as another produced lines; all failing is a corrupt document.
	lineSets := make([][]outline.TextLine, 0, len(w.backends))
	var firstErr error
	for _, b := range w.backends {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		lines, err := b.Extract(path)
		if err != nil {
			log.Warn("backend failed", "backend", b.Name(), "error", err)
			if firstErr == nil {
				firstErr = err
			}
			lines = nil
		}
		lineSets = append(lineSets, lines)
	}
	allEmpty := true
	for _, ls := range lineSets {
		if len(ls) > 0 {
			allEmpty = false
			break
		}
	}
	if allEmpty && firstErr != nil {
		res.Err = fmt.Errorf("extract %s: %w", filename, firstErr)
		return res
	}

	// Phase 2: cross-validation merge. With a single surviving backend this
	// degrades to its lines unchanged.
	var primary, secondary []outline.TextLine
	if len(lineSets) > 0 {
		primary = lineSets[0]
	}
	if len(lineSets) > 1 {
		secondary = lineSets[1]
	}
	merged := merge.Reconcile(primary, secondary, w.hcfg.MergeYTolerance)

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	res.Quality = extract.Measure(merged)

	// Phase 3: classify. An empty document yields an empty outline, which
	// is a success, not an error.
	res.Outline = classify.BuildOutline(merged, w.hcfg)
	log.Info("outline extracted",
		"lines", len(merged),
		"entries", len(res.Outline.Entries),
		"title", res.Outline.Title != "",
	)
	return res
}

// ProcessJob runs an uploaded document: the bytes go to a temp file because
// the char-level backend needs a seekable file.
func (w *Worker) ProcessJob(ctx context.Context, job *Job) {
	job.SetStatus(StatusExtracting)

	tmp, err := os.CreateTemp("", "pdfoutline-*.pdf")
	if err != nil {
		job.SetResult(nil, fmt.Errorf("create temp file: %w", err))
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(job.FileData()); err != nil {
		tmp.Close()
		job.SetResult(nil, fmt.Errorf("write temp file: %w", err))
		return
	}
	tmp.Close()

	res := w.ProcessFile(ctx, tmpPath, job.Filename)
	job.SetResult(res.Outline, res.Err)
}

func (w *Worker) record(res Result) {
	if w.stats != nil {
		w.stats.Record(res.Duration.Milliseconds(), res.Err == nil)
	}
	if w.history == nil {
		return
	}
	rec := &history.Record{
		Filename:   res.Filename,
		DurationMs: res.Duration.Milliseconds(),
		Timestamp:  time.Now(),
	}
	if res.Err != nil {
		rec.Error = res.Err.Error()
	} else {
		rec.Title = res.Outline.Title
		rec.Entries = len(res.Outline.Entries)
	}
	w.history.RecordAsync(rec)
}

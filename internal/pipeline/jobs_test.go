package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/pdfoutline/internal/outline"
)

func TestJobSetResult(t *testing.T) {
	job := &Job{ID: "abc", Filename: "doc.pdf", Status: StatusQueued}

	out := outline.New()
	out.Title = "A Title"
	job.SetResult(out, nil)
	if job.Snapshot().Status != StatusCompleted {
		t.Errorf("expected completed, got %s", job.Snapshot().Status)
	}
	if job.Snapshot().Outline.Title != "A Title" {
		t.Errorf("expected outline attached, got %+v", job.Snapshot().Outline)
	}

	failed := &Job{ID: "def", Filename: "bad.pdf", Status: StatusQueued}
	failed.SetResult(nil, errors.New("corrupt document"))
	snap := failed.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected failed, got %s", snap.Status)
	}
	if snap.ErrMsg != "corrupt document" {
		t.Errorf("expected error message, got %q", snap.ErrMsg)
	}
	if snap.Outline != nil {
		t.Error("failed job must not carry an outline")
	}
}

func TestJobStoreCleanupEvictsExpired(t *testing.T) {
	store := NewJobStore(10 * time.Millisecond)

	fresh := &Job{ID: "fresh", UpdatedAt: time.Now()}
	stale := &Job{ID: "stale", UpdatedAt: time.Now().Add(-time.Minute)}
	store.Put(fresh)
	store.Put(stale)

	store.Cleanup()

	if store.Get("fresh") == nil {
		t.Error("fresh job evicted")
	}
	if store.Get("stale") != nil {
		t.Error("stale job not evicted")
	}
}

func TestNewJobIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewJobID("same-file.pdf")
		if len(id) != 20 {
			t.Fatalf("expected 20 hex chars, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate job ID %q", id)
		}
		seen[id] = true
	}
}

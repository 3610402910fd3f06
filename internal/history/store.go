// Package history persists one row per processed document to SQLite, so
// operators can see what a batch or the server did after the fact. Writes
// are asynchronous and batched; the store never blocks document processing.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Schema for the runs table, applied on Open.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	filename TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	entries INTEGER NOT NULL DEFAULT 0,
	duration_ms INTEGER NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp);
`

// Record is one processed document.
type Record struct {
	Filename   string    `json:"filename"`
	Title      string    `json:"title,omitempty"`
	Entries    int       `json:"entries"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Store persists run records asynchronously.
type Store struct {
	db   *sql.DB
	ch   chan *Record
	done chan struct{}
	once sync.Once
}

// Open creates (or opens) the SQLite database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	s := &Store{
		db:   db,
		ch:   make(chan *Record, 1024),
		done: make(chan struct{}),
	}
	go s.flushLoop()
	return s, nil
}

// RecordAsync queues a record for persistence. Non-blocking; drops if the
// buffer is full so history never backpressures extraction.
func (s *Store) RecordAsync(r *Record) {
	select {
	case s.ch <- r:
	default:
	}
}

// Recent returns the most recent records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT filename, title, entries, duration_ms, error, timestamp
		 FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var ts int64
		if err := rows.Scan(&r.Filename, &r.Title, &r.Entries, &r.DurationMs, &r.Error, &ts); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		r.Timestamp = time.UnixMilli(ts)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close drains the buffer and stops the flush goroutine.
func (s *Store) Close() error {
	s.once.Do(func() {
		close(s.ch)
		<-s.done
	})
	return s.db.Close()
}

func (s *Store) flushLoop() {
	defer close(s.done)

	batch := make([]*Record, 0, 64)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case r, ok := <-s.ch:
			if !ok {
				s.flushBatch(batch)
				return
			}
			batch = append(batch, r)
			if len(batch) >= 64 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (s *Store) flushBatch(batch []*Record) {
	if len(batch) == 0 {
		return
	}

	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("history store: begin tx", "error", err)
		return
	}
	stmt, err := tx.Prepare(
		`INSERT INTO runs (filename, title, entries, duration_ms, error, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		slog.Error("history store: prepare", "error", err)
		tx.Rollback()
		return
	}
	for _, r := range batch {
		if _, err := stmt.Exec(r.Filename, r.Title, r.Entries, r.DurationMs, r.Error, r.Timestamp.UnixMilli()); err != nil {
			slog.Error("history store: insert", "error", err)
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		slog.Error("history store: commit", "error", err)
	}
}

// Package history keeps an append-only SQLite log of refresh attempts.
// It is an audit trail only; the cached table is never restored from it.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RahulNewbie/rest-app/internal/catalog"
	"github.com/RahulNewbie/rest-app/internal/migrations"
)

// Entry is a persisted refresh attempt.
type Entry struct {
	ID int64
	catalog.Attempt
	CreatedAt time.Time
}

// Store persists refresh attempts.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One writer; SQLite serializes anyway and this avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the schema.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewStore creates a history store on an open database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record appends an attempt. It implements catalog.Recorder.
func (s *Store) Record(ctx context.Context, a catalog.Attempt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO refresh_attempts (started_at, finished_at, movies, people, skipped, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.StartedAt.UTC(), a.FinishedAt.UTC(), a.Movies, a.People, a.Skipped, a.Err,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, movies, people, skipped, error, created_at
		FROM refresh_attempts
		ORDER BY id DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.StartedAt, &e.FinishedAt, &e.Movies, &e.People, &e.Skipped, &e.Err, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// LastSuccess returns the most recent attempt that merged fresh data.
func (s *Store) LastSuccess(ctx context.Context) (*Entry, error) {
	var e Entry
	err := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, movies, people, skipped, error, created_at
		FROM refresh_attempts
		WHERE error = ''
		ORDER BY id DESC
		LIMIT 1`,
	).Scan(&e.ID, &e.StartedAt, &e.FinishedAt, &e.Movies, &e.People, &e.Skipped, &e.Err, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query last success: %w", err)
	}
	return &e, nil
}

// Prune deletes attempts that started before cutoff and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM refresh_attempts WHERE started_at < ?", cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune attempts: %w", err)
	}
	return result.RowsAffected()
}

var _ catalog.Recorder = (*Store)(nil)

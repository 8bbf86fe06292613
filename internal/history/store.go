// Package history keeps an audit log of served predictions in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"cardiod/pkg/types"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS predictions (
    id TEXT PRIMARY KEY,
    endpoint TEXT NOT NULL CHECK (endpoint IN ('mlp', 'ecg', 'combined')),
    verdict TEXT NOT NULL,
    probability REAL NOT NULL,
    confidence REAL NOT NULL,
    driver TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at DESC);
`

// DefaultLimit caps Recent when the caller asks for zero or fewer rows.
const DefaultLimit = 50

// MaxLimit caps Recent regardless of the caller.
const MaxLimit = 1000

// Store records predictions.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	// A single writer keeps SQLite free of SQLITE_BUSY under concurrent requests.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(migrationsSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Record stores e with a fresh id and timestamp and returns the stored entry.
func (s *Store) Record(ctx context.Context, e types.HistoryEntry) (types.HistoryEntry, error) {
	e.ID = uuid.New().String()
	e.CreatedUnix = s.now().Unix()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO predictions (id, endpoint, verdict, probability, confidence, driver, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Endpoint, e.Verdict, e.Probability, e.Confidence, e.Driver, e.CreatedUnix)
	if err != nil {
		return types.HistoryEntry{}, fmt.Errorf("record prediction: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, endpoint, verdict, probability, confidence, driver, created_at
		 FROM predictions ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query predictions: %w", err)
	}
	defer rows.Close()
	out := make([]types.HistoryEntry, 0, limit)
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Endpoint, &e.Verdict, &e.Probability, &e.Confidence, &e.Driver, &e.CreatedUnix); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

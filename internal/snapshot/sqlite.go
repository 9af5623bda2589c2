package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// WAL keeps concurrent readers cheap.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "snapshot-store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates the snapshots table.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	_, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			state      TEXT NOT NULL
		)`)
	return err
}

// Save persists one snapshot as a JSON document.
func (s *SQLiteStore) Save(ctx context.Context, state map[string]any) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.logger.Debug("sql", "op", "insert", "table", "snapshots", "bytes", len(raw))
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshots (created_at, state) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), string(raw),
	)
	return err
}

// LoadLatest returns the most recent snapshot, or nil if the table is
// empty.
func (s *SQLiteStore) LoadLatest(ctx context.Context) (map[string]any, error) {
	s.logger.Debug("sql", "op", "select", "table", "snapshots")

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var state map[string]any
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return state, nil
}

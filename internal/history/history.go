// Package history keeps a local log of completed study sessions in SQLite.
// It stores raw completion records only; known/unknown counts live with the
// decks themselves.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Record is one completed session.
type Record struct {
	SessionID  string
	DeckID     int64
	DeckTitle  string
	Total      int
	Rounds     int
	Duration   time.Duration
	FinishedAt time.Time
}

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database and applies migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			deck_id INTEGER NOT NULL,
			deck_title TEXT NOT NULL,
			total_cards INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			finished_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_deck_id ON sessions(deck_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_finished_at ON sessions(finished_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append stores a completed session. Re-appending the same session id is a
// no-op, so a retried write cannot duplicate a record.
func (s *Store) Append(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions
			(session_id, deck_id, deck_title, total_cards, rounds, duration_ms, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID, r.DeckID, r.DeckTitle, r.Total, r.Rounds,
		r.Duration.Milliseconds(), r.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

// Recent returns the most recently finished sessions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, deck_id, deck_title, total_cards, rounds, duration_ms, finished_at
		 FROM sessions ORDER BY finished_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var durMs int64
		var finished string
		if err := rows.Scan(&r.SessionID, &r.DeckID, &r.DeckTitle, &r.Total, &r.Rounds, &durMs, &finished); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		r.Duration = time.Duration(durMs) * time.Millisecond
		if t, err := time.Parse(time.RFC3339, finished); err == nil {
			r.FinishedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountForDeck returns how many sessions have been completed for a deck.
func (s *Store) CountForDeck(ctx context.Context, deckID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE deck_id = ?`, deckID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

// Package history keeps a local ledger of every command round trip in a
// SQLite file: what was sent, whether the host accepted it, and how long
// it took. The ledger exists for replay and postmortem inspection of
// automation sessions — after a timeout leaves remote state unknown, the
// ledger is the record of what was actually issued.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS commands (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	at          INTEGER NOT NULL,
	cmd         TEXT    NOT NULL,
	args        TEXT    NOT NULL DEFAULT '{}',
	ok          INTEGER NOT NULL,
	error       TEXT    NOT NULL DEFAULT '',
	duration_ms REAL    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_commands_at ON commands(at);
`

// Entry is one recorded round trip.
type Entry struct {
	ID         int64
	At         time.Time
	Cmd        string
	Args       string
	OK         bool
	Error      string
	DurationMS float64
}

// Store records command round trips in a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a history store at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history: store path is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// toMillis normalizes timestamps into millisecond precision for storage.
func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// fromMillis restores millisecond precision and keeps UTC normalization.
func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Record appends one round trip to the ledger.
func (s *Store) Record(ctx context.Context, e Entry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}
	args := e.Args
	if args == "" {
		args = "{}"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO commands (at, cmd, args, ok, error, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		toMillis(at), e.Cmd, args, boolToInt(e.OK), e.Error, e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("history: record %q: %w", e.Cmd, err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, cmd, args, ok, error, duration_ms FROM commands ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("history: query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at int64
		var ok int
		if err := rows.Scan(&e.ID, &at, &e.Cmd, &e.Args, &ok, &e.Error, &e.DurationMS); err != nil {
			return nil, fmt.Errorf("history: scan entry: %w", err)
		}
		e.At = fromMillis(at)
		e.OK = ok != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count reports how many round trips the ledger holds.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM commands`).Scan(&n); err != nil {
		return 0, fmt.Errorf("history: count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

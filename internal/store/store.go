// Package store persists the service's event log in SQLite. Two append-only
// tables back it: one row per LLM API call and one row per content
// generation request. The CLI reads them for inspection and usage
// accounting.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for optimal single-writer performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS llm_request_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			provider       TEXT NOT NULL,
			model          TEXT NOT NULL,
			purpose        TEXT NOT NULL,
			input_tokens   INTEGER NOT NULL DEFAULT 0,
			output_tokens  INTEGER NOT NULL DEFAULT 0,
			latency_ms     INTEGER NOT NULL DEFAULT 0,
			success        INTEGER NOT NULL DEFAULT 0,
			error_message  TEXT NOT NULL DEFAULT '',
			request_body   TEXT NOT NULL DEFAULT '',
			response_body  TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_llm_events_purpose ON llm_request_events (purpose)`,
		`CREATE TABLE IF NOT EXISTS generation_events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			endpoint       TEXT NOT NULL,
			topic          TEXT NOT NULL DEFAULT '',
			difficulty     TEXT NOT NULL DEFAULT '',
			success        INTEGER NOT NULL DEFAULT 0,
			defaults_used  INTEGER NOT NULL DEFAULT 0,
			duration_ms    INTEGER NOT NULL DEFAULT 0,
			error_message  TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_generation_events_endpoint ON generation_events (endpoint)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. COURSEFORGE_DB environment variable
// 2. $XDG_DATA_HOME/courseforge/courseforge.db
// 3. ~/.local/share/courseforge/courseforge.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("COURSEFORGE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "courseforge", "courseforge.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

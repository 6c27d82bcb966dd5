// Package cache provides the sqlite-backed local store: cached items, the
// notification configuration row, recent searches, the restoration flag and
// the cached credential. It is a cache, not a system of record — the remote
// document store owns the data, and the teardown workflows purge this store
// wholesale.
package cache

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// schema is applied on every Open; all statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS cached_items (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	deadline INTEGER NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	note TEXT NOT NULL DEFAULT '',
	image_ref TEXT NOT NULL DEFAULT '',
	pinned INTEGER NOT NULL DEFAULT 0,
	created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS notification_config (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	lead_days INTEGER NOT NULL,
	hour INTEGER NOT NULL,
	minute INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS recent_searches (
	query TEXT PRIMARY KEY,
	searched_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS app_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS credentials (
	user_id TEXT PRIMARY KEY,
	token TEXT NOT NULL,
	stored_at INTEGER NOT NULL
);
`

// DB wraps the sql.DB with the local-store configuration.
type DB struct {
	*sql.DB
}

// Open opens the local sqlite store under dataDir, creating the directory,
// enabling WAL mode and foreign keys, and applying the schema.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "reminders.db")

	// modernc.org/sqlite: pure Go, no CGO
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}

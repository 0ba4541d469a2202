// Package store is the shortcut collaborator: it owns the persisted
// shortcut and action definitions and the trigger history. The engine
// core never reads it directly; it only consumes the ShortcutDef and
// Action values handed over at reload and resolve time.
package store

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

type DB struct {
	conn *sql.DB
}

// Open opens the database and initializes the schema. An empty database
// is seeded with a pair of example shortcuts.
func Open(dir string) (*DB, error) {
	dbPath := filepath.Join(dir, "hotphrase.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL keeps the hook-adjacent reads from blocking on web writes
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := db.seedDefaults(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to seed defaults: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shortcuts (
		name TEXT PRIMARY KEY,
		trigger_kind TEXT NOT NULL,
		trigger_value TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT 1,
		action_kind TEXT NOT NULL,
		action_payload TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS trigger_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		name TEXT NOT NULL,
		trigger_kind TEXT NOT NULL,
		action_kind TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON trigger_history(timestamp);
	CREATE INDEX IF NOT EXISTS idx_history_name ON trigger_history(name);
	`

	_, err := db.conn.Exec(schema)
	return err
}

func (db *DB) seedDefaults() error {
	var count int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM shortcuts").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Shortcut{
		{
			Name:          "insert-date",
			TriggerKind:   "phrase",
			TriggerValue:  ";date",
			Enabled:       true,
			ActionKind:    "paste_text",
			ActionPayload: "{date}",
			Position:      0,
		},
		{
			Name:          "open-dashboard",
			TriggerKind:   "combo",
			TriggerValue:  "ctrl+alt+h",
			Enabled:       false,
			ActionKind:    "run_shell",
			ActionPayload: "start http://localhost:8790",
			Position:      1,
		},
	}
	for _, s := range defaults {
		if err := db.SaveShortcut(s); err != nil {
			return err
		}
	}
	return nil
}

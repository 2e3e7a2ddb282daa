// Package sqlite provides SQLite-based persistent storage for Touchwood.
// Uses WAL mode for concurrent reads and crash-safe writes. Engines keep
// scalar state in the `state` key-value table and row data in typed tables;
// everything is recomputable from the completion log except the log itself.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// SchemaVersion is written to the state table on open so future releases can
// migrate old data files instead of misreading them.
const SchemaVersion = "1"

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// SQLite is single-writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := d.SetState("schema_version", SchemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("write schema version: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Key-value store for engine state (streak, today count, totals,
		// refresh days, event progress fractions, share counts, xp).
		`CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Append-only ritual completion log — the only source of truth
		// that must never be lost.
		`CREATE TABLE IF NOT EXISTS completions (
			id        TEXT PRIMARY KEY,
			ritual_id TEXT NOT NULL,
			category  TEXT NOT NULL DEFAULT '',
			day       TEXT NOT NULL,
			timestamp INTEGER NOT NULL,
			mood      INTEGER NOT NULL DEFAULT 0,
			note      TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_completions_ts ON completions(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_completions_day ON completions(day)`,

		// Daily challenge instances. Uncompleted instances from prior days
		// are discarded on refresh; completed ones are kept as history.
		`CREATE TABLE IF NOT EXISTS daily_challenges (
			id            TEXT PRIMARY KEY,
			type          TEXT NOT NULL,
			window        TEXT NOT NULL DEFAULT '',
			description   TEXT NOT NULL,
			target        INTEGER NOT NULL,
			progress      INTEGER NOT NULL DEFAULT 0,
			reward_xp     INTEGER NOT NULL,
			reward_points INTEGER NOT NULL,
			day           TEXT NOT NULL,
			completed     BOOLEAN NOT NULL DEFAULT 0,
			completed_at  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_challenges_day ON daily_challenges(day)`,

		// Unlocked achievements
		`CREATE TABLE IF NOT EXISTS achievements (
			id          TEXT PRIMARY KEY,
			unlocked_at INTEGER NOT NULL,
			notified    BOOLEAN NOT NULL DEFAULT 0
		)`,

		// Per-event challenge progress (definitions live in code, keyed by id)
		`CREATE TABLE IF NOT EXISTS event_challenges (
			id           TEXT PRIMARY KEY,
			event_id     TEXT NOT NULL,
			progress     INTEGER NOT NULL DEFAULT 0,
			completed    BOOLEAN NOT NULL DEFAULT 0,
			completed_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_event_challenges_event ON event_challenges(event_id)`,

		// Unlocked special rituals (monotonic) with usage counters
		`CREATE TABLE IF NOT EXISTS unlocked_rituals (
			ritual_id   TEXT PRIMARY KEY,
			event_id    TEXT NOT NULL,
			unlocked_at INTEGER NOT NULL,
			usage_count INTEGER NOT NULL DEFAULT 0
		)`,

		// User-defined rituals
		`CREATE TABLE IF NOT EXISTS custom_rituals (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			category    TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL
		)`,

		// Append-only mood log
		`CREATE TABLE IF NOT EXISTS mood_entries (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			ritual_id   TEXT NOT NULL,
			ritual_name TEXT NOT NULL,
			mood        INTEGER NOT NULL,
			note        TEXT NOT NULL DEFAULT '',
			timestamp   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_ts ON mood_entries(timestamp)`,

		// Notification queue
		`CREATE TABLE IF NOT EXISTS notifications (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			type       TEXT NOT NULL,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			shown      BOOLEAN NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notif_created ON notifications(created_at)`,

		// Share log (feeds achievement and unlock checks)
		`CREATE TABLE IF NOT EXISTS shares (
			id         TEXT PRIMARY KEY,
			kind       TEXT NOT NULL,
			message    TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── State Key-Value ────────────────────────────────────────────────────────

// SetState stores a state key-value pair.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves a state value by key. Returns "" if key not found.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY SQLITE?
// A waitlist is a low-volume mailing list — an embedded single-file database
// is plenty, and there's no separate server to provision. We use
// modernc.org/sqlite (a pure Go translation of SQLite) rather than
// mattn/go-sqlite3 so the binary builds without CGo and cross-compiles
// anywhere Go does.
//
// SCHEMA:
// The logical model is Signup 1—N Selection. Earlier iterations of the
// product stored the challenge list as a JSON array column and later as one
// boolean column per challenge; both shapes made the analytics queries
// awkward, so the schema here is the normalized join table. The services
// never see the physical shape — only the SignupRepository interface.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
// Pass ":memory:" for an in-memory database (tests).
//
// sql.Open only creates the pool manager; Ping forces a real connection so a
// bad path surfaces here rather than on the first request.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — the dashboard's
	// full scan must not block a concurrent signup insert.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite; the join table references
	// signups(id), so turn them on.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent — safe to run on every startup.
func (db *DB) migrate() error {
	// One row per submitted form. The UNIQUE index on email is what turns a
	// concurrent duplicate submission into exactly one winner — duplicate
	// detection is never re-implemented in application code.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS signups (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL UNIQUE,
			country_code TEXT,
			phone        TEXT,
			subject      TEXT NOT NULL,
			stay_in_loop INTEGER NOT NULL DEFAULT 0,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_signups_created_at ON signups(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating signups table: %w", err)
	}

	// The join table. challenge holds a catalog slug; other_description is
	// non-NULL only on the sentinel row. The composite primary key makes a
	// repeated (signup, challenge) pair impossible at the storage level.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS signup_challenges (
			signup_id         TEXT NOT NULL REFERENCES signups(id) ON DELETE CASCADE,
			challenge         TEXT NOT NULL,
			other_description TEXT,
			PRIMARY KEY (signup_id, challenge)
		);
		CREATE INDEX IF NOT EXISTS idx_signup_challenges_challenge
			ON signup_challenges(challenge);
	`)
	if err != nil {
		return fmt.Errorf("creating signup_challenges table: %w", err)
	}

	return nil
}

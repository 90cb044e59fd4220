package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps sql.DB with the run history operations
type DB struct {
	*sql.DB
}

// New opens the history database at path
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("database open failed: %w", err)
	}

	// SQLite allows one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	db.Exec("PRAGMA synchronous=NORMAL")

	return &DB{db}, nil
}

// Open opens the database and makes sure the schema exists
func Open(path string) (*DB, error) {
	db, err := New(path)
	if err != nil {
		return nil, err
	}
	if err := db.InitSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitSchema creates all necessary tables
func (db *DB) InitSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        started_at INTEGER NOT NULL, -- unix milliseconds, UTC
        duration_ms INTEGER NOT NULL,
        probe_count INTEGER NOT NULL,
        tier TEXT NOT NULL,
        closest_target TEXT,
        closest_location TEXT,
        closest_rtt_ms REAL,
        closest_loss_percent REAL
    );

    CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);

    CREATE TABLE IF NOT EXISTS probe_outcomes (
        run_id TEXT NOT NULL,
        ordinal INTEGER NOT NULL,
        target TEXT NOT NULL,
        address TEXT NOT NULL,
        location TEXT NOT NULL,
        status TEXT NOT NULL,
        avg_rtt_ms REAL, -- NULL when unreachable
        loss_percent REAL NOT NULL,
        probes_sent INTEGER NOT NULL,
        probes_lost INTEGER NOT NULL,
        detail TEXT,
        PRIMARY KEY (run_id, ordinal)
    );

    CREATE INDEX IF NOT EXISTS idx_outcomes_target ON probe_outcomes(target);
    `

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}

	return nil
}

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent, so
// Migrate is safe to run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE,
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`ALTER TABLE trips ADD COLUMN destination TEXT NOT NULL DEFAULT ''`,

	`CREATE INDEX IF NOT EXISTS idx_trips_start ON trips(start_date)`,

	// kv mirrors the per-trip key/value store of the browser app: one
	// namespace per trip, JSON values.
	`CREATE TABLE IF NOT EXISTS kv (
		namespace   TEXT NOT NULL REFERENCES trips(id) ON DELETE CASCADE,
		key         TEXT NOT NULL,
		value       TEXT NOT NULL,
		updated_at  TEXT NOT NULL,
		PRIMARY KEY (namespace, key)
	)`,
}

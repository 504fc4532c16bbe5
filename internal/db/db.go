// Package db persists the report run log in a local SQLite database.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the run-log database handle.
type DB struct {
	*sql.DB
}

// New opens (creating if necessary) the run-log database at path and
// applies any pending migrations.
func New(path string) (*DB, error) {
	handle, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run-log database: %w", err)
	}

	db := &DB{handle}
	if err := db.MigrateUp(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

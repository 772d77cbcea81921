package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema. Collections are stored as JSON
// blobs under well-known keys, one row per collection, so the layout
// matches the original key/value storage model.
const schema = `
CREATE TABLE IF NOT EXISTS storage (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// EnsureSchema creates all tables if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// internal/data/models.go
package data

import (
	"database/sql"
	_ "embed"
	"errors"
)

// ErrRecordNotFound is returned when a query finds no matching row.
var ErrRecordNotFound = errors.New("record not found")

// Models is a top-level container that groups all database model types together.
// It is passed around the application via applicationDependencies so every handler
// has access to the database without importing sql directly.
type Models struct {
	Movies MovieModel // Handles all database operations for the movies table
}

// NewModels constructs a Models value wired up to the given database connection pool.
// Call this once during application startup and store the result in applicationDependencies.
func NewModels(db *sql.DB) Models {
	return Models{
		Movies: MovieModel{DB: db},
	}
}

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the movies table if it does not already exist.
// This is the only migration the service carries; there is no separate
// migration tooling for a single table.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}

// Package gallery stores user accounts and saved sketches in SQLite and
// serves the REST API around them.
package gallery

import (
	"database/sql"
	"fmt"

	"github.com/Harsh-Thanki/SketchScript-2.0/pkg/logger"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database connection shared by the user and sketch
// operations.
type Store struct {
	db *sql.DB
}

// InitDB opens the SQLite database at dbPath, ensures the schema exists and
// returns the store.
func InitDB(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ensure the database is accessible
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.CreateTables(); err != nil {
		return nil, err
	}

	logger.DatabaseInfo("Gallery database opened at %s", dbPath)
	return store, nil
}

// CreateTables ensures all required tables exist in the database.
func (s *Store) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			last_login INTEGER,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sketches (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			title TEXT NOT NULL,
			program TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (username) REFERENCES users(username)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sketches_username ON sketches(username)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

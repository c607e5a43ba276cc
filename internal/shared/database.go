package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// NewDatabase opens a connection to a SQLite database at the specified path, creating the file
// and its parent directory when missing.
// The path can be ":memory:" for an in-memory database, or a "file:" URI.
// Returns an open database connection or an error if connection fails.
func NewDatabase(path string) (*sqlx.DB, error) {
	if !IsMemoryPath(path) && !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// IsMemoryPath reports whether path names an in-memory database, either ":memory:" or a
// "file:" URI with mode=memory. Such a database lives only as long as its connection.
func IsMemoryPath(path string) bool {
	if path == ":memory:" {
		return true
	}
	if !strings.HasPrefix(path, "file:") {
		return false
	}
	name, query, _ := strings.Cut(strings.TrimPrefix(path, "file:"), "?")
	if name == ":memory:" {
		return true
	}
	for _, param := range strings.Split(query, "&") {
		if param == "mode=memory" {
			return true
		}
	}
	return false
}

// ConfigureDatabase pins the pool to a single connection and applies pragmas.
//
// Every transaction goes through one handle; an in-memory database would otherwise be
// a different database per pooled connection.
func ConfigureDatabase(db *sqlx.DB) error {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// journal_mode is not supported for in-memory databases.
	_, _ = db.Exec("PRAGMA journal_mode=WAL")
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	return nil
}

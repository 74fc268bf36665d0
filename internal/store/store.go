// Package store owns the embedded SQLite database and the change hub
// that backs every reactive query in the app. The store is opened once
// by the process entry point and handed to the repositories; nothing
// in here is a lazy global.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound reports that a row with the requested identity does not
// exist. Optional-returning queries map it to a nil result instead.
var ErrNotFound = errors.New("not found")

// Store bundles the database handle with the change hub so that
// repositories created from the same Store observe each other's writes.
type Store struct {
	DB  *sql.DB
	Hub *Hub
}

func appDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	base := filepath.Join(home, ".local", "share", "stratizen")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return "", err
	}
	return base, nil
}

// DefaultPath returns the on-disk location of the database, creating
// the parent directory if needed.
func DefaultPath() (string, error) {
	dir, err := appDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "stratizen.db"), nil
}

// Open opens (or creates) the database at path and applies the schema.
// An empty path selects DefaultPath.
func Open(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
		path,
	)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{DB: db, Hub: NewHub()}, nil
}

// Close releases the database handle and wakes any hub subscribers.
func (s *Store) Close() error {
	s.Hub.Close()
	return s.DB.Close()
}

func migrate(db *sql.DB) error {
	b, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	if _, err := db.Exec(string(b)); err != nil {
		return errors.Join(fmt.Errorf("schema apply failed"), err)
	}
	return nil
}

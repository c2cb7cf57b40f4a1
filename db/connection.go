// Package db manages the embedded SQLite student database.
//
// Design decisions:
//   - The Store holds only the file path. Every operation opens the file,
//     does its work and closes it again; there is no pool.
//   - modernc.org/sqlite is used so the binary stays cgo-free.
//   - Errors are returned, never logged or printed.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// Store is a file-backed student database.
type Store struct {
	path string
}

// NewStore returns a store for the SQLite file at path. The file is
// created on first use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// open opens a fresh connection to the database file.
func (s *Store) open(ctx context.Context) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", s.path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open database %s: %w", s.path, err)
	}
	return conn, nil
}

package store

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a referenced entity doesn't exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a delete is blocked by existing
	// references (historical orders, categorized products).
	ErrConflict = errors.New("conflict: still referenced")
)

// Store is the data layer. Every handler receives one explicitly; no
// package-level connection state.
type Store struct {
	db *sql.DB
}

// New wraps an open connection pool.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying pool for middleware that needs direct
// lookups (role checks).
func (s *Store) DB() *sql.DB {
	return s.db
}

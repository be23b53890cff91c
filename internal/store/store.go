// Package store persists identities in a single-file SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"commitas/internal/identity"
)

// ConflictMode controls what Add does when the key already exists.
type ConflictMode string

const (
	// ConflictAllow inserts unconditionally; duplicate keys coexist and
	// GetByKey returns the earliest one.
	ConflictAllow ConflictMode = "allow"
	// ConflictReject fails the insert if the key already exists.
	ConflictReject ConflictMode = "reject"
	// ConflictReplace removes existing rows for the key before inserting.
	ConflictReplace ConflictMode = "replace"
)

// ParseConflictMode validates a configured conflict mode string.
func ParseConflictMode(s string) (ConflictMode, error) {
	switch ConflictMode(s) {
	case ConflictAllow, ConflictReject, ConflictReplace:
		return ConflictMode(s), nil
	case "":
		return ConflictAllow, nil
	}
	return "", fmt.Errorf("unknown conflict mode %q (want allow, reject, or replace)", s)
}

// ErrKeyExists is returned by Add in reject mode when the key is taken.
type ErrKeyExists struct {
	Key string
}

func (e *ErrKeyExists) Error() string {
	return fmt.Sprintf("identity with key %q already exists", e.Key)
}

// Store is a durable mapping from key to identity, with the numeric id as a
// secondary access path. A single connection, opened for the lifetime of one
// invocation and closed by the caller via defer.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open opens (creating if needed) the identity database at path and ensures
// the schema exists. The parent directory is created if absent.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logger.Debug("failed to set sqlite busy_timeout", zap.Error(err))
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logger.Debug("failed to set sqlite journal_mode=WAL", zap.Error(err))
	}

	s := &Store{db: db, path: path, logger: logger}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("identity store opened", zap.String("path", path))
	return s, nil
}

// ensureSchema idempotently creates the identities table and its key index.
func (s *Store) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS identities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT NOT NULL,
		name TEXT NOT NULL,
		email_address TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_identities_key ON identities(key);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.logger.Debug("closing identity store")
	return s.db.Close()
}

// Add inserts a new identity. How an existing key is treated depends on mode:
// allow inserts a duplicate, reject returns *ErrKeyExists, replace deletes
// the existing rows first.
func (s *Store) Add(key, name, email string, mode ConflictMode) error {
	switch mode {
	case ConflictReject:
		existing, err := s.GetByKey(key)
		if err != nil {
			return err
		}
		if existing != nil {
			return &ErrKeyExists{Key: key}
		}
	case ConflictReplace:
		if _, err := s.DeleteByKey(key); err != nil {
			return err
		}
	}

	_, err := s.db.Exec(
		"INSERT INTO identities (key, name, email_address) VALUES (?, ?, ?)",
		key, name, email,
	)
	if err != nil {
		return fmt.Errorf("failed to insert identity: %w", err)
	}
	s.logger.Debug("identity added", zap.String("key", key))
	return nil
}

// GetByKey returns the earliest stored identity with the given key, or nil
// if none exists.
func (s *Store) GetByKey(key string) (*identity.Identity, error) {
	row := s.db.QueryRow(
		"SELECT id, key, name, email_address FROM identities WHERE key = ? ORDER BY id LIMIT 1",
		key,
	)
	return scanIdentity(row)
}

// GetByID returns the identity with the given id, or nil if none exists.
func (s *Store) GetByID(id int64) (*identity.Identity, error) {
	row := s.db.QueryRow(
		"SELECT id, key, name, email_address FROM identities WHERE id = ?",
		id,
	)
	return scanIdentity(row)
}

// DeleteByKey removes every identity with the given key and reports how many
// rows were removed.
func (s *Store) DeleteByKey(key string) (int64, error) {
	res, err := s.db.Exec("DELETE FROM identities WHERE key = ?", key)
	if err != nil {
		return 0, fmt.Errorf("failed to delete identities: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted identities: %w", err)
	}
	s.logger.Debug("identities deleted", zap.String("key", key), zap.Int64("count", n))
	return n, nil
}

// DeleteByID removes the single identity with the given id.
func (s *Store) DeleteByID(id int64) error {
	if _, err := s.db.Exec("DELETE FROM identities WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}

// ListAll returns every stored identity in insertion (id) order.
func (s *Store) ListAll() ([]identity.Identity, error) {
	rows, err := s.db.Query("SELECT id, key, name, email_address FROM identities ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list identities: %w", err)
	}
	defer rows.Close()

	var out []identity.Identity
	for rows.Next() {
		var id identity.Identity
		if err := rows.Scan(&id.ID, &id.Key, &id.Name, &id.Email); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read identities: %w", err)
	}
	return out, nil
}

func scanIdentity(row *sql.Row) (*identity.Identity, error) {
	var id identity.Identity
	err := row.Scan(&id.ID, &id.Key, &id.Name, &id.Email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan identity: %w", err)
	}
	return &id, nil
}

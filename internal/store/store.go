// Package store persists the vocabulary tables and a cache of scoring
// results in SQLite.
package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNoVocabulary = errors.New("no vocabulary imported")
)

const schema = `
CREATE TABLE IF NOT EXISTS vocab_levels (
	lemma TEXT NOT NULL,
	level TEXT NOT NULL,
	PRIMARY KEY (lemma, level)
);
CREATE TABLE IF NOT EXISTS word_scores (
	lemma TEXT PRIMARY KEY,
	score REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS score_results (
	content_hash  TEXT NOT NULL,
	model_version TEXT NOT NULL,
	zix           REAL NOT NULL,
	level         TEXT NOT NULL,
	features_json TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	PRIMARY KEY (content_hash, model_version)
);
`

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas and creates
// missing tables. File paths get their parent directory created.
func Open(dsn string) (*Store, error) {
	if isFilePath(dsn) {
		if err := ensureDir(dsn); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// ContentHash keys cached results: SHA-256 of the normalized text, hex
// encoded.
func ContentHash(normalized string) string {
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

func isFilePath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

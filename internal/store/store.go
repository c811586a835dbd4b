// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists training examples, mined patterns, and user
// feedback in SQLite. The extraction engine itself never touches it:
// the CLI injects store methods as the engine's corpus-fetch and
// pattern-persist collaborators.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/bloodlink/donor-engine/pkg/types"
)

const dbFile = "donor.db"

// Store manages the donor-engine SQLite database.
type Store struct {
	db         *sql.DB
	dataDir    string
	maxResults int

	// mu serializes pattern upsert passes. Concurrent mining runs
	// would otherwise interleave per-key writes and lose updates.
	mu sync.Mutex
}

// Open opens or creates the database at dataDir/donor.db, creating
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 50
	}

	s := &Store{db: db, dataDir: cfg.DataDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS training_examples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			raw_text TEXT NOT NULL,
			expected TEXT NOT NULL,
			parsed TEXT NOT NULL,
			confidence REAL NOT NULL,
			is_correct INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_examples_correct ON training_examples(is_correct)`,
		`CREATE TABLE IF NOT EXISTS learned_patterns (
			pattern_type TEXT NOT NULL,
			pattern TEXT NOT NULL,
			field TEXT NOT NULL,
			confidence REAL NOT NULL,
			usage_count INTEGER NOT NULL,
			is_enabled INTEGER NOT NULL,
			manual_override INTEGER,
			last_mined_at TEXT NOT NULL,
			PRIMARY KEY (pattern_type, pattern, field)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_patterns_field ON learned_patterns(field)`,
		`CREATE TABLE IF NOT EXISTS feedback (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			raw_text TEXT NOT NULL,
			expected TEXT NOT NULL,
			reviewed INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

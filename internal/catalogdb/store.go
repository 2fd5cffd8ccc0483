// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalogdb is the offline object catalog: a SQLite database of
// named sky objects with their aliases and positions, filled from YAML
// catalog files and queried by the search orchestrator as its local source.
package catalogdb

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/pkg/types"
)

// DefaultPath is the database file used when the config leaves it empty.
const DefaultPath = "catalog.db"

// Store manages the catalog database.
type Store struct {
	db   *sql.DB
	path string
	log  *zap.Logger
}

// Open opens or creates the catalog database at cfg.Path and creates the
// schema if it does not exist. log may be nil.
func Open(cfg types.CatalogConfig, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating catalog directory")
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog database")
	}

	s := &Store{db: db, path: path, log: log}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating schema")
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS objects (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name_key TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			canonical_id TEXT NOT NULL,
			type TEXT,
			category TEXT,
			ra REAL,
			dec REAL,
			magnitude REAL,
			size TEXT,
			source_file TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS aliases (
			object_id INTEGER NOT NULL REFERENCES objects(id) ON DELETE CASCADE,
			alias TEXT NOT NULL,
			alias_key TEXT NOT NULL,
			PRIMARY KEY (object_id, alias_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_aliases_key ON aliases(alias_key)`,
		`CREATE INDEX IF NOT EXISTS idx_objects_dec ON objects(dec)`,
		`CREATE INDEX IF NOT EXISTS idx_objects_source ON objects(source_file)`,
		`CREATE TABLE IF NOT EXISTS import_status (
			source_file TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.Wrap(err, "executing schema statement")
		}
	}
	return nil
}

// Count returns the number of objects in the catalog.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM objects`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting objects")
	}
	return n, nil
}

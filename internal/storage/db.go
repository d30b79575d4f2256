// Package storage persists run results in a SQLite database under
// .etlmap/etlmap.db. Raw documents are zstd-compressed at rest.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"etlmap/internal/logging"
)

// DB represents a database connection with transaction helpers
type DB struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// Open opens or creates the SQLite database at <root>/.etlmap/etlmap.db,
// initializing the schema on first use.
func Open(root string, logger *logging.Logger) (*DB, error) {
	dir := filepath.Join(root, ".etlmap")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .etlmap directory: %w", err)
	}

	dbPath := filepath.Join(dir, "etlmap.db")
	dbExists := fileExists(dbPath)

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set pragmas for performance and reliability
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	db := &DB{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if !dbExists {
		logger.Info("Creating new database", logging.Fields{
			"path": dbPath,
		})
	}
	if err := db.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// Conn returns the underlying sql.DB connection
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// WithTx executes a function within a transaction, rolling back on
// error or panic.
func (db *DB) WithTx(fn func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// initializeSchema creates all tables if they do not exist.
func (db *DB) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS runs (
			session_id TEXT PRIMARY KEY,
			repository_name TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			source_count INTEGER NOT NULL,
			target_count INTEGER NOT NULL,
			transformation_count INTEGER NOT NULL,
			mapping_count INTEGER NOT NULL,
			error_count INTEGER NOT NULL,
			result_json TEXT NOT NULL,
			document_zstd BLOB,
			completed_at TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_completed ON runs(completed_at);

		CREATE TABLE IF NOT EXISTS api_tokens (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			token_hash TEXT NOT NULL,
			token_prefix TEXT NOT NULL,
			created_at TEXT NOT NULL,
			revoked INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_api_tokens_prefix ON api_tokens(token_prefix);
	`

	return db.WithTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(schema); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (1)"); err != nil {
				return err
			}
		}
		return nil
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

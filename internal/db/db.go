package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hpungsan/shelf/internal/config"
	_ "modernc.org/sqlite"
)

// DefaultFileName is the database file created inside the base directory.
const DefaultFileName = config.DefaultDBFile

// CurrentSchemaVersion is the latest schema version.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/shelf.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.shelf.
func Init(baseDir string) (*sql.DB, error) {
	return Open(filepath.Join(baseDir, DefaultFileName))
}

// Open opens (creating if needed) the SQLite database at dbPath and ensures
// the item schema exists.
func Open(dbPath string) (*sql.DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Pragmas in the connection string apply to every pooled connection
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	// Best-effort: the file exists once the schema has been written
	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
		db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	}
}

// migrate creates the schema on first use, tracked by user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS items (
		  id    INTEGER PRIMARY KEY,
		  name  TEXT    NOT NULL CHECK (length(name) > 0),
		  price INTEGER NOT NULL CHECK (price >= 0),
		  stock INTEGER NOT NULL CHECK (stock >= 0)
		);

		CREATE TABLE IF NOT EXISTS deleted_items (
		  id      INTEGER PRIMARY KEY,
		  name    TEXT    NOT NULL CHECK (length(name) > 0),
		  price   INTEGER NOT NULL CHECK (price >= 0),
		  stock   INTEGER NOT NULL CHECK (stock >= 0),
		  comment TEXT
		);

		CREATE TABLE IF NOT EXISTS item_sequence (
		  id      INTEGER PRIMARY KEY CHECK (id = 1),
		  next_id INTEGER NOT NULL
		);

		INSERT OR IGNORE INTO item_sequence (id, next_id) VALUES (1, 1);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("schema creation failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

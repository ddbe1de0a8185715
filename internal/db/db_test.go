package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hpungsan/shelf/internal/config"
)

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	dbPath := filepath.Join(tmpDir, DefaultFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}

	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		t.Fatalf("failed to query journal_mode: %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}

	for _, table := range []string{"items", "deleted_items", "item_sequence"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	var nextID int64
	if err := db.QueryRow("SELECT next_id FROM item_sequence WHERE id = 1").Scan(&nextID); err != nil {
		t.Fatalf("sequence row missing: %v", err)
	}
	if nextID != 1 {
		t.Errorf("next_id = %d, want 1", nextID)
	}
}

func TestOpen_CreatesDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "path", "custom.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

func TestOpen_Unwritable(t *testing.T) {
	tmpDir := t.TempDir()
	blocker := filepath.Join(tmpDir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	// A regular file where a directory is expected
	if _, err := Open(filepath.Join(blocker, "shelf.db")); err == nil {
		t.Fatal("Open() expected error when the parent is a file")
	}
}

func TestUserVersion(t *testing.T) {
	tmpDir := t.TempDir()

	db, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	version, err := GetUserVersion(db)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version after Init = %d, want %d", version, CurrentSchemaVersion)
	}

	if err := SetUserVersion(db, 99); err != nil {
		t.Fatalf("SetUserVersion() error = %v", err)
	}
	version, err = GetUserVersion(db)
	if err != nil {
		t.Fatalf("GetUserVersion() error = %v", err)
	}
	if version != 99 {
		t.Errorf("user_version = %d, want 99", version)
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	db1, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init() error = %v", err)
	}
	if _, err := db1.Exec("UPDATE item_sequence SET next_id = 42 WHERE id = 1"); err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	db1.Close()

	db2, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	defer db2.Close()

	// Reopening must not reset the sequence
	var nextID int64
	if err := db2.QueryRow("SELECT next_id FROM item_sequence WHERE id = 1").Scan(&nextID); err != nil {
		t.Fatalf("QueryRow() error = %v", err)
	}
	if nextID != 42 {
		t.Errorf("next_id = %d, want 42", nextID)
	}
}

func TestInit_CheckConstraints(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	bad := []string{
		"INSERT INTO items (id, name, price, stock) VALUES (1, 'a', -1, 0)",
		"INSERT INTO items (id, name, price, stock) VALUES (1, 'a', 0, -1)",
		"INSERT INTO items (id, name, price, stock) VALUES (1, '', 0, 0)",
		"INSERT INTO deleted_items (id, name, price, stock) VALUES (1, 'a', -5, 0)",
		"INSERT INTO item_sequence (id, next_id) VALUES (2, 1)",
	}
	for _, stmt := range bad {
		if _, err := db.Exec(stmt); err == nil {
			t.Errorf("expected constraint failure for %q", stmt)
		}
	}
}

func TestConfigurePool(t *testing.T) {
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer db.Close()

	ConfigurePool(db, nil)
	ConfigurePool(db, &config.Config{DBMaxOpenConns: 1})

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("MaxOpenConnections = %d, want 1", got)
	}
}

package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateStoreFile creates an on-disk SQLite keyed store with an empty
// conversations table and returns its path.
func CreateStoreFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "data.sqlite3")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to create store database: %v", err)
	}
	defer db.Close()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS conversations (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create conversations table: %v", err)
	}

	return path
}

// InsertConversation inserts a record into the keyed store at path
func InsertConversation(t *testing.T, path, key, value string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open store database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT INTO conversations (key, value) VALUES (?, ?)", key, value); err != nil {
		t.Fatalf("Failed to insert conversation %s: %v", key, err)
	}
}

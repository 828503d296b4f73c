package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CreateTempDir creates a temporary directory for testing
func CreateTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "q-history-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(dir) })
	return dir
}

// WriteHistoryFile writes an auxiliary chat-history file into dir and sets
// its modification time.
func WriteHistoryFile(t *testing.T, dir, conversationID, content string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, "chat-history-"+conversationID+".json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write history file %s: %v", path, err)
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(path, modTime, modTime); err != nil {
			t.Fatalf("Failed to set mtime on %s: %v", path, err)
		}
	}
	return path
}

package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mibeco/q-history-mcp-server/testutil"
)

func storeEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	dir := testutil.CreateTempDir(t)
	dbPath := testutil.CreateStoreFile(t, dir)
	return NewEngine(StorageLocations{DatabasePath: dbPath}), dbPath
}

func TestEngineListOrdering(t *testing.T) {
	engine, dbPath := storeEngine(t)

	// Insert order determines rowid, and higher rowids estimate newer
	testutil.InsertConversation(t, dbPath, "/work/alpha|conv-alpha", testutil.PairedRecord(t, [2]string{"first question", "first answer"}))
	testutil.InsertConversation(t, dbPath, "/work/beta|conv-beta", testutil.PairedRecord(t, [2]string{"second question", "second answer"}))

	summaries, err := engine.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("List() returned %d summaries, want 2", len(summaries))
	}
	if summaries[0].ID != "conv-beta" {
		t.Errorf("newest summary ID = %q, want conv-beta", summaries[0].ID)
	}
	if summaries[1].ID != "conv-alpha" {
		t.Errorf("oldest summary ID = %q, want conv-alpha", summaries[1].ID)
	}
	if summaries[0].Workspace != "beta" {
		t.Errorf("Workspace = %q, want beta", summaries[0].Workspace)
	}
}

func TestEngineListLimit(t *testing.T) {
	engine, dbPath := storeEngine(t)
	for _, key := range []string{"/w|a", "/w|b", "/w|c"} {
		testutil.InsertConversation(t, dbPath, key, testutil.PairedRecord(t, [2]string{"hello", "hi"}))
	}

	summaries, err := engine.List(2)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("List(2) returned %d summaries, want 2", len(summaries))
	}
}

func TestEngineListSkipsEmptyConversations(t *testing.T) {
	engine, dbPath := storeEngine(t)
	testutil.InsertConversation(t, dbPath, "/w|keep", testutil.PairedRecord(t, [2]string{"hello", "hi"}))
	testutil.InsertConversation(t, dbPath, "/w|empty", `{"history": []}`)
	testutil.InsertConversation(t, dbPath, "/w|garbage", `not json at all`)

	summaries, err := engine.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "keep" {
		t.Errorf("List() = %v, want only the keep conversation", summaries)
	}
}

func TestEngineSearch(t *testing.T) {
	engine, dbPath := storeEngine(t)
	testutil.InsertConversation(t, dbPath, "/w|deploy", testutil.PairedRecord(t, [2]string{"how do I deploy to Kubernetes", "use kubectl"}))
	testutil.InsertConversation(t, dbPath, "/w|other", testutil.PairedRecord(t, [2]string{"explain goroutines", "they are lightweight"}))

	tests := []struct {
		name    string
		query   string
		wantIDs []string
	}{
		{"exact term", "kubectl", []string{"deploy"}},
		{"case insensitive", "KUBERNETES", []string{"deploy"}},
		{"no match", "terraform", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Search(tt.query, 0)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("Search(%q) returned %d results, want %d", tt.query, len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id {
					t.Errorf("result[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestEngineGetDetail(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := testutil.CreateStoreFile(t, dir)
	testutil.InsertConversation(t, dbPath, "/work/project|abc123def", testutil.PairedRecord(t, [2]string{"fix the bug", "done"}))

	historyDir := filepath.Join(dir, "history")
	if err := os.Mkdir(historyDir, 0o755); err != nil {
		t.Fatalf("Failed to create history dir: %v", err)
	}
	testutil.WriteHistoryFile(t, historyDir, "hist-1", testutil.PairedRecord(t, [2]string{"from history", "ok"}), time.Now())

	engine := NewEngine(StorageLocations{DatabasePath: dbPath, HistoryDir: historyDir})

	t.Run("exact id", func(t *testing.T) {
		detail, err := engine.GetDetail("abc123def")
		if err != nil {
			t.Fatalf("GetDetail() error = %v", err)
		}
		if len(detail.Messages) != 2 {
			t.Fatalf("detail has %d messages, want 2", len(detail.Messages))
		}
		if detail.Messages[0].Body != "fix the bug" {
			t.Errorf("first message = %q, want fix the bug", detail.Messages[0].Body)
		}
	})

	t.Run("substring on store key", func(t *testing.T) {
		detail, err := engine.GetDetail("abc123")
		if err != nil {
			t.Fatalf("GetDetail() error = %v", err)
		}
		if detail.ID != "abc123def" {
			t.Errorf("detail.ID = %q, want abc123def", detail.ID)
		}
	})

	t.Run("history file id", func(t *testing.T) {
		detail, err := engine.GetDetail("hist-1")
		if err != nil {
			t.Fatalf("GetDetail() error = %v", err)
		}
		if detail.Messages[0].Body != "from history" {
			t.Errorf("first message = %q, want from history", detail.Messages[0].Body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := engine.GetDetail("does-not-exist")
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Errorf("error = %v, want NotFoundError", err)
		}
	})
}

func TestEngineUnreadableStoreFallsBackToHistory(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	dbPath := filepath.Join(dir, "data.sqlite3")
	if err := os.WriteFile(dbPath, []byte("this is not a database"), 0o644); err != nil {
		t.Fatalf("Failed to write garbage db: %v", err)
	}
	historyDir := filepath.Join(dir, "history")
	if err := os.Mkdir(historyDir, 0o755); err != nil {
		t.Fatalf("Failed to create history dir: %v", err)
	}
	testutil.WriteHistoryFile(t, historyDir, "survivor", testutil.PairedRecord(t, [2]string{"still here", "yes"}), time.Now())

	engine := NewEngine(StorageLocations{DatabasePath: dbPath, HistoryDir: historyDir})
	summaries, err := engine.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 1 || summaries[0].ID != "survivor" {
		t.Errorf("List() = %v, want only the history conversation", summaries)
	}
}

func TestEngineHistoryTimestampFromMtime(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	historyDir := filepath.Join(dir, "history")
	if err := os.Mkdir(historyDir, 0o755); err != nil {
		t.Fatalf("Failed to create history dir: %v", err)
	}
	want := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	testutil.WriteHistoryFile(t, historyDir, "dated", testutil.PairedRecord(t, [2]string{"when", "then"}), want)

	engine := NewEngine(StorageLocations{HistoryDir: historyDir})
	summaries, err := engine.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("List() returned %d summaries, want 1", len(summaries))
	}
	if diff := summaries[0].CreatedAt.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("CreatedAt = %v, want within 1s of %v", summaries[0].CreatedAt, want)
	}
}

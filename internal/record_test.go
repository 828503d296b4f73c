package internal

import "testing"

func TestParseStoreKey(t *testing.T) {
	tests := []struct {
		key           string
		wantWorkspace string
		wantID        string
	}{
		{
			key:           "/home/user/project|4108aad0-a795-49b2-8ef0-1f8b99b83f67",
			wantWorkspace: "/home/user/project",
			wantID:        "4108aad0-a795-49b2-8ef0-1f8b99b83f67",
		},
		{
			key:           "/home/user/project",
			wantWorkspace: "/home/user/project",
			wantID:        "/home/user/project",
		},
		{
			key:           "/path/with|two|pipes",
			wantWorkspace: "/path/with",
			wantID:        "two|pipes",
		},
		{
			key:           "",
			wantWorkspace: "",
			wantID:        "",
		},
	}

	for _, tt := range tests {
		workspace, id := ParseStoreKey(tt.key)
		if workspace != tt.wantWorkspace {
			t.Errorf("ParseStoreKey(%q) workspace = %q, want %q", tt.key, workspace, tt.wantWorkspace)
		}
		if id != tt.wantID {
			t.Errorf("ParseStoreKey(%q) id = %q, want %q", tt.key, id, tt.wantID)
		}
	}
}

func TestWorkspaceName(t *testing.T) {
	tests := []struct {
		workspace string
		want      string
	}{
		{"/home/user/project", "project"},
		{"/project", "project"},
		{"", "unknown"},
	}

	for _, tt := range tests {
		if got := WorkspaceName(tt.workspace); got != tt.want {
			t.Errorf("WorkspaceName(%q) = %q, want %q", tt.workspace, got, tt.want)
		}
	}
}

func TestHistoryFileID(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/tmp/history/chat-history-abc123.json", "abc123"},
		{"chat-history-4108aad0.json", "4108aad0"},
		{"/tmp/history/other-file.json", ""},
		{"/tmp/history/chat-history-abc123.txt", ""},
	}

	for _, tt := range tests {
		if got := HistoryFileID(tt.path); got != tt.want {
			t.Errorf("HistoryFileID(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

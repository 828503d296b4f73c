package internal

import (
	"path/filepath"
	"strings"
	"time"
)

// RecordSource identifies which storage location a record came from
type RecordSource string

const (
	SourceStore   RecordSource = "store"
	SourceHistory RecordSource = "history"
)

// HistoryFilePrefix is the filename prefix for auxiliary conversation files
const HistoryFilePrefix = "chat-history-"

// RawRecord is one conversation's raw serialized storage entry, read once per
// query and discarded after normalization.
type RawRecord struct {
	Key       string // store key, or file path for history files
	ID        string // conversation identifier extracted from the key/filename
	Workspace string // workspace path encoded in the store key, "" if unknown
	Content   []byte
	Ordinal   int64     // rowid within the keyed store, 0 for history files
	ModTime   time.Time // file modification time, zero for store rows
	Source    RecordSource
}

// ParseStoreKey splits a keyed-store key into its workspace path and
// conversation id. Keys are either "<workspace>|<conversation-id>" or a bare
// workspace path; in the bare form the key itself serves as the identifier.
func ParseStoreKey(key string) (workspace, conversationID string) {
	if idx := strings.Index(key, "|"); idx >= 0 {
		return key[:idx], key[idx+1:]
	}
	return key, key
}

// WorkspaceName returns the display name for a workspace path
func WorkspaceName(workspace string) string {
	if workspace == "" {
		return "unknown"
	}
	return filepath.Base(workspace)
}

// HistoryFileID extracts the conversation id from an auxiliary file path,
// e.g. ".../chat-history-<id>.json" yields "<id>". Returns "" if the filename
// does not match the expected pattern.
func HistoryFileID(path string) string {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, HistoryFilePrefix) || !strings.HasSuffix(name, ".json") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(name, HistoryFilePrefix), ".json")
}

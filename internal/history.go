package internal

import (
	"errors"
	"os"
	"path/filepath"
)

// HistoryDir reads auxiliary per-conversation files. Each file is named
// chat-history-<conversation-id>.json and holds a NestedCollection document;
// its modification time is the conversation's timestamp.
type HistoryDir struct {
	path string
}

// NewHistoryDir creates a HistoryDir for the given directory
func NewHistoryDir(path string) *HistoryDir {
	return &HistoryDir{path: path}
}

// Path returns the directory backing this reader
func (h *HistoryDir) Path() string {
	return h.path
}

// LoadRecords reads every auxiliary conversation file. Files that cannot be
// read are logged and skipped; a missing directory yields no records rather
// than an error, since the keyed store may still serve the query.
func (h *HistoryDir) LoadRecords() ([]*RawRecord, error) {
	pattern := filepath.Join(h.path, HistoryFilePrefix+"*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var records []*RawRecord
	for _, path := range matches {
		rec, err := h.loadFile(path)
		if err != nil {
			LogDebug("Skipping unreadable record: %v", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadRecord reads the auxiliary file for a single conversation id. A missing
// file is NotFoundError; a file that exists but cannot be read is RecordError.
func (h *HistoryDir) LoadRecord(id string) (*RawRecord, error) {
	path := filepath.Join(h.path, HistoryFilePrefix+id+".json")
	rec, err := h.loadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Resource: "conversation", ID: id}
		}
		return nil, err
	}
	return rec, nil
}

func (h *HistoryDir) loadFile(path string) (*RawRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &RecordError{Key: path, Err: err}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &RecordError{Key: path, Err: err}
	}
	return &RawRecord{
		Key:     path,
		ID:      HistoryFileID(path),
		Content: content,
		ModTime: info.ModTime(),
		Source:  SourceHistory,
	}, nil
}

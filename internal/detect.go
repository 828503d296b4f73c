package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StorageLocations holds the resolved paths for the Q CLI conversation
// archive. Resolved once at startup and immutable afterwards; an empty field
// means that location does not exist on this machine.
type StorageLocations struct {
	DatabasePath string // keyed store (data.sqlite3)
	HistoryDir   string // auxiliary chat-history-*.json directory
}

// HasDatabase reports whether the keyed store was found
func (sl StorageLocations) HasDatabase() bool {
	return sl.DatabasePath != ""
}

// HasHistoryDir reports whether the auxiliary history directory was found
func (sl StorageLocations) HasHistoryDir() bool {
	return sl.HistoryDir != ""
}

// CandidateDatabasePaths returns the ordered per-OS candidate locations for
// the keyed store.
func CandidateDatabasePaths(home string) ([]string, error) {
	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(home, "Library/Application Support/amazon-q/data.sqlite3"),
		}, nil
	case "linux":
		return []string{
			filepath.Join(home, ".local/share/amazon-q/data.sqlite3"),
			filepath.Join(home, ".config/amazon-q/data.sqlite3"),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported OS: %s (only macOS and Linux are supported)", runtime.GOOS)
	}
}

// CandidateHistoryDirs returns the ordered candidate locations for the
// auxiliary history directory. The Q CLI writes these under ~/.aws on every
// supported platform.
func CandidateHistoryDirs(home string) []string {
	return []string{
		filepath.Join(home, ".aws/amazonq/history"),
	}
}

// ResolveStorageLocations determines the storage paths for this machine.
// Explicit paths win; otherwise candidates are probed in order and the first
// existing one is taken. Purely advisory: nothing is ever created. Fails with
// NotFoundError when neither location exists, since a reader with no storage
// at all cannot serve any query.
func ResolveStorageLocations(explicitDB, explicitHistory string) (StorageLocations, error) {
	var loc StorageLocations

	if explicitDB != "" {
		if !fileExists(explicitDB) {
			return StorageLocations{}, &NotFoundError{Resource: "database", ID: explicitDB}
		}
		loc.DatabasePath = explicitDB
	}
	if explicitHistory != "" {
		if !dirExists(explicitHistory) {
			return StorageLocations{}, &NotFoundError{Resource: "history directory", ID: explicitHistory}
		}
		loc.HistoryDir = explicitHistory
	}
	if loc.HasDatabase() && loc.HasHistoryDir() {
		return loc, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return StorageLocations{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	if !loc.HasDatabase() {
		candidates, err := CandidateDatabasePaths(home)
		if err != nil {
			return StorageLocations{}, err
		}
		for _, candidate := range candidates {
			if fileExists(candidate) {
				loc.DatabasePath = candidate
				break
			}
		}
	}

	if !loc.HasHistoryDir() {
		for _, candidate := range CandidateHistoryDirs(home) {
			if dirExists(candidate) {
				loc.HistoryDir = candidate
				break
			}
		}
	}

	if !loc.HasDatabase() && !loc.HasHistoryDir() {
		return StorageLocations{}, &NotFoundError{Resource: "storage"}
	}

	return loc, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

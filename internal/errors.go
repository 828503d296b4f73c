package internal

import "fmt"

// NotFoundError reports a missing storage location or a missing conversation
type NotFoundError struct {
	Resource string // "storage", "conversation"
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// StoreError represents a connection-level failure against the keyed store
type StoreError struct {
	Path string
	Op   string // "open", "query"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// RecordError represents a single record that could not be read. During
// enumeration these are logged and skipped; single-record lookups surface
// them directly.
type RecordError struct {
	Key string // storage key or file path
	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record error [%s]: %v", e.Key, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mibeco/q-history-mcp-server/internal"
)

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(detail *internal.ConversationDetail, w io.Writer) error
	Extension() string
}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, jsonl, yaml)", format)
	}
}

// WriteFile renders a conversation to path in the given format, appending
// the format's default extension when the path has none and creating
// intermediate directories as needed. Returns the path actually written.
func WriteFile(detail *internal.ConversationDetail, path, format string) (string, error) {
	exporter, err := NewExporter(format)
	if err != nil {
		return "", err
	}

	if filepath.Ext(path) == "" {
		path += "." + exporter.Extension()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", &internal.ExportError{Format: format, Path: path, Err: err}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := exporter.Export(detail, f); err != nil {
		return "", &internal.ExportError{Format: format, Path: path, Err: err}
	}
	return path, nil
}

package export

import (
	"encoding/json"
	"io"

	"github.com/mibeco/q-history-mcp-server/internal"
)

// JSONExporter exports conversations in JSON format (pretty-printed)
type JSONExporter struct{}

// Export exports a conversation to JSON format
func (e *JSONExporter) Export(detail *internal.ConversationDetail, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(detail)
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}

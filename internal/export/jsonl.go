package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mibeco/q-history-mcp-server/internal"
)

// JSONLExporter exports conversations in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a conversation to JSONL format
func (e *JSONLExporter) Export(detail *internal.ConversationDetail, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range detail.Messages {
		obj := map[string]interface{}{
			"role": msg.Role,
			"body": msg.Body,
		}
		if msg.Timestamp != "" {
			obj["timestamp"] = msg.Timestamp
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}

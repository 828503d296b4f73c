package internal

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	previewMaxLen   = 100
	previewEllipsis = "..."

	// PreviewNoContent is reported when a record yields no messages at all.
	PreviewNoContent = "No content"
	// PreviewNoReadableContent is reported when messages exist but none of the
	// scanned ones is a non-empty user prompt.
	PreviewNoReadableContent = "No readable content"
)

// nestedCollection is the top-level element of a NestedCollection document:
// a JSON array of collections, each with a data array whose first element
// holds the conversation message list.
type nestedCollection struct {
	Data []nestedData `json:"data"`
}

type nestedData struct {
	Conversation []nestedMessage `json:"conversation"`
}

type nestedMessage struct {
	Type      string `json:"type"` // "prompt" or "answer"
	Body      string `json:"body"`
	Timestamp string `json:"timestamp,omitempty"`
}

// pairedEntry is one turn of a PairedTurn history: an optional user half and
// an optional assistant half.
type pairedEntry struct {
	User      *pairedUser      `json:"user"`
	Assistant *pairedAssistant `json:"assistant"`
}

type pairedUser struct {
	Content           *userContent `json:"content"`
	AdditionalContext string       `json:"additional_context,omitempty"`
}

type userContent struct {
	Prompt *promptPayload `json:"Prompt"`
}

type promptPayload struct {
	Prompt string `json:"prompt"`
}

// pairedAssistant carries its text either directly in content (a plain JSON
// string) or nested under a Response object. First non-empty wins.
type pairedAssistant struct {
	Content  json.RawMessage  `json:"content"`
	Response *responsePayload `json:"Response"`
}

type responsePayload struct {
	Content string `json:"content"`
}

func (a *pairedAssistant) text() string {
	if len(a.Content) > 0 {
		var s string
		if err := json.Unmarshal(a.Content, &s); err == nil && s != "" {
			return s
		}
	}
	if a.Response != nil {
		return a.Response.Content
	}
	return ""
}

// flatElement is one message object inside a FlatTurnList inner list.
type flatElement struct {
	Content           *flatContent `json:"content"`
	AdditionalContext string       `json:"additional_context,omitempty"`
}

type flatContent struct {
	Prompt         *promptPayload  `json:"Prompt"`
	ToolUseResults json.RawMessage `json:"ToolUseResults"`
	ToolUse        json.RawMessage `json:"ToolUse"`
}

func (c *flatContent) toolPayload() json.RawMessage {
	if len(c.ToolUseResults) > 0 {
		return c.ToolUseResults
	}
	if len(c.ToolUse) > 0 {
		return c.ToolUse
	}
	return nil
}

// Normalize extracts the canonical summary and detail projections from a raw
// record of a known variant. Structural anomalies inside the record collapse
// to an empty message stream rather than an error, so a broken record reports
// MessageCount 0 and never aborts a wider enumeration.
//
// MessageCount counts conversational units, which differ by variant:
// NestedCollection counts emitted messages, PairedTurn counts history entries
// that contributed at least one message, FlatTurnList counts elements that
// are a non-empty prompt or a tool invocation. The detail stream for
// FlatTurnList can therefore be longer than MessageCount.
func Normalize(rec *RawRecord, variant SchemaVariant, createdAt time.Time) (ConversationSummary, *ConversationDetail) {
	var (
		msgs          []Message
		count         int
		previewWindow int
		prompts       []string
		contexts      []string
	)
	agent := AgentUnknown

	switch variant {
	case VariantNestedCollection:
		msgs, count = normalizeNested(rec.Content)
		previewWindow = 3
	case VariantPairedTurn:
		msgs, count, prompts, contexts = normalizePaired(rec.Content)
		previewWindow = 3
		agent = ExtractAgentLabel(prompts, contexts)
	case VariantFlatTurnList:
		msgs, count, prompts, contexts = normalizeFlat(rec.Content)
		previewWindow = 5
		agent = ExtractAgentLabel(prompts, contexts)
	}

	fullPath := rec.Workspace
	if fullPath == "" {
		fullPath = rec.Key
	}

	summary := ConversationSummary{
		ID:           rec.ID,
		MessageCount: count,
		Preview:      previewFromMessages(msgs, previewWindow),
		CreatedAt:    createdAt,
		Workspace:    WorkspaceName(rec.Workspace),
		FullPath:     fullPath,
		Agent:        agent,
	}

	return summary, &ConversationDetail{ID: rec.ID, Messages: msgs}
}

// normalizeNested unwraps the fixed three-level nesting: collection array,
// first collection's data, first data element's conversation.
func normalizeNested(content []byte) ([]Message, int) {
	var collections []nestedCollection
	if err := json.Unmarshal(content, &collections); err != nil {
		return nil, 0
	}
	if len(collections) == 0 || len(collections[0].Data) == 0 {
		return nil, 0
	}

	var msgs []Message
	for _, nm := range collections[0].Data[0].Conversation {
		if nm.Body == "" {
			continue
		}
		role := RoleUser
		if nm.Type == "answer" {
			role = RoleAssistant
		}
		msgs = append(msgs, Message{Role: role, Body: nm.Body, Timestamp: nm.Timestamp})
	}
	return msgs, len(msgs)
}

// normalizePaired emits at most one user and one assistant message per
// history entry; entries contributing neither are skipped silently.
func normalizePaired(content []byte) ([]Message, int, []string, []string) {
	var record struct {
		History []pairedEntry `json:"history"`
	}
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, 0, nil, nil
	}

	var (
		msgs     []Message
		count    int
		prompts  []string
		contexts []string
	)
	for _, entry := range record.History {
		contributed := false
		if entry.User != nil {
			if entry.User.AdditionalContext != "" {
				contexts = append(contexts, entry.User.AdditionalContext)
			}
			if entry.User.Content != nil && entry.User.Content.Prompt != nil {
				if p := entry.User.Content.Prompt.Prompt; p != "" {
					msgs = append(msgs, Message{Role: RoleUser, Body: p})
					prompts = append(prompts, p)
					contributed = true
				}
			}
		}
		if entry.Assistant != nil {
			if body := entry.Assistant.text(); body != "" {
				msgs = append(msgs, Message{Role: RoleAssistant, Body: body})
				contributed = true
			}
		}
		if contributed {
			count++
		}
	}
	return msgs, count, prompts, contexts
}

// normalizeFlat walks each inner list of a FlatTurnList history. Elements
// carrying a prompt become user messages; elements carrying tool-invocation
// content become assistant messages with the tool payload as body.
func normalizeFlat(content []byte) ([]Message, int, []string, []string) {
	var record struct {
		History [][]flatElement `json:"history"`
	}
	if err := json.Unmarshal(content, &record); err != nil {
		return nil, 0, nil, nil
	}

	var (
		msgs     []Message
		count    int
		prompts  []string
		contexts []string
	)
	for _, turn := range record.History {
		for _, el := range turn {
			if el.AdditionalContext != "" {
				contexts = append(contexts, el.AdditionalContext)
			}
			if el.Content == nil {
				continue
			}
			if el.Content.Prompt != nil && el.Content.Prompt.Prompt != "" {
				msgs = append(msgs, Message{Role: RoleUser, Body: el.Content.Prompt.Prompt})
				prompts = append(prompts, el.Content.Prompt.Prompt)
				count++
				continue
			}
			if tool := el.Content.toolPayload(); tool != nil {
				msgs = append(msgs, Message{Role: RoleAssistant, Body: compactJSON(tool)})
				count++
			}
		}
	}
	return msgs, count, prompts, contexts
}

// previewFromMessages scans the first window messages of the normalized
// stream for the first non-empty user body.
func previewFromMessages(msgs []Message, window int) string {
	if len(msgs) == 0 {
		return PreviewNoContent
	}
	if window > len(msgs) {
		window = len(msgs)
	}
	for _, m := range msgs[:window] {
		if m.Role == RoleUser && m.Body != "" {
			return truncatePreview(m.Body)
		}
	}
	return PreviewNoReadableContent
}

// truncatePreview caps the preview at previewMaxLen characters. The cut is on
// rune boundaries so multibyte prompts stay valid UTF-8.
func truncatePreview(s string) string {
	runes := []rune(s)
	if len(runes) > previewMaxLen {
		return string(runes[:previewMaxLen]) + previewEllipsis
	}
	return s
}

func compactJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

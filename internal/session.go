package internal

import "time"

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a normalized conversation message
type Message struct {
	Role      Role   `json:"role"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ConversationSummary is the listing/search projection of one conversation.
// MessageCount counts conversational units per schema variant (see Normalize);
// a count of zero always pairs with the "No content" preview.
type ConversationSummary struct {
	ID           string    `json:"id"`
	MessageCount int       `json:"message_count"`
	Preview      string    `json:"preview"`
	CreatedAt    time.Time `json:"created_at"`
	Workspace    string    `json:"workspace"`
	FullPath     string    `json:"full_path"`
	Agent        string    `json:"agent"`
}

// ConversationDetail is the full projection: messages in exact source order,
// never reordered or deduplicated.
type ConversationDetail struct {
	ID       string    `json:"id"`
	Messages []Message `json:"messages"`
}

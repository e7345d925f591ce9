package domain

import "time"

// Role identifies the author of a conversation message.
type Role string

// Valid message roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether the role is a known value.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// Message is a single entry in a document's conversation log.
// Messages are append-only: never edited, only appended, or removed
// together when the whole log is cleared.
type Message struct {
	// ID is the unique identifier for the message.
	ID string `json:"id"`

	// Role is the message author, user or assistant.
	Role Role `json:"role"`

	// Content is the message text.
	Content string `json:"content"`

	// Timestamp is when the message was appended.
	Timestamp time.Time `json:"timestamp"`

	// Metadata holds free-form attributes such as cited sources
	// and answer confidence.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Conversation is the ordered message log for one document.
type Conversation struct {
	// Messages in insertion order.
	Messages []Message `json:"messages"`

	// CreatedAt is when the first message was appended.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the last message was appended.
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationStats summarises a document's conversation log.
type ConversationStats struct {
	// MessageCount is the total number of messages.
	MessageCount int

	// FirstMessageTime is when the log was created.
	// Zero when the log is empty.
	FirstMessageTime time.Time

	// LastMessageTime is when the log was last appended to.
	// Zero when the log is empty.
	LastMessageTime time.Time
}

// ExportFormat selects a conversation export encoding.
type ExportFormat string

// Supported export formats.
const (
	ExportJSON ExportFormat = "json"
	ExportCSV  ExportFormat = "csv"
)

package domain

import (
	"context"
	"time"
)

// MessageRole represents the sender of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// RedactedPayload replaces attachment bytes before a message is persisted,
// so the history collection never stores raw file content.
const RedactedPayload = "<base64_content_omitted>"

// Attachment is a file sent alongside a chat message. Data is base64 on the
// wire; persisted copies carry RedactedPayload instead of the payload.
type Attachment struct {
	Filename    string `json:"filename" bson:"filename" validate:"required"`
	ContentType string `json:"content_type" bson:"content_type" validate:"required"`
	Data        string `json:"data" bson:"data" validate:"required"`
}

// Redacted returns a copy of the attachment that is safe to persist.
func (a Attachment) Redacted() Attachment {
	return Attachment{
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Data:        RedactedPayload,
	}
}

// ChatMessage is one turn in a conversation. Messages are immutable once
// stored and never deleted. Attachments is nil for assistant turns and for
// documents written before the field existed.
type ChatMessage struct {
	Role        MessageRole  `json:"role" bson:"role"`
	Content     string       `json:"content" bson:"content"`
	Timestamp   time.Time    `json:"timestamp" bson:"timestamp"`
	SessionID   string       `json:"session_id" bson:"session_id"`
	Attachments []Attachment `json:"attachments,omitempty" bson:"attachments,omitempty"`
}

// SessionGroup is one row of the grouped session aggregation: a session id
// together with its earliest message timestamp and the content of the first
// inserted message.
type SessionGroup struct {
	SessionID    string    `bson:"_id"`
	CreatedAt    time.Time `bson:"created_at"`
	FirstMessage string    `bson:"first_message"`
}

// MessageRepository defines the interface for message storage
type MessageRepository interface {
	Append(ctx context.Context, message *ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]ChatMessage, error)
	GroupBySession(ctx context.Context) ([]SessionGroup, error)
}

package domain

import (
	"context"
	"time"
)

// DefaultSessionTitle labels sessions that have no title override and whose
// first message carries no content.
const DefaultSessionTitle = "New Chat"

// Session is a read-time projection over the message collection. CreatedAt
// is the earliest message timestamp; Title resolves as override >
// derived-from-first-message > default, never the reverse.
type Session struct {
	SessionID string    `json:"session_id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
}

// SessionRepository stores title overrides keyed by session id. An override
// persists independently of message history, so a rename can precede or
// outlive the messages it names.
type SessionRepository interface {
	UpsertTitle(ctx context.Context, sessionID, title string) error
	ListTitles(ctx context.Context) (map[string]string, error)
}

package domain

// ChatRequest is the inbound chat payload. An empty SessionID asks the
// orchestrator to start a fresh session. Message may be empty when the
// request carries only attachments.
type ChatRequest struct {
	Message     string       `json:"message"`
	SessionID   string       `json:"session_id"`
	Attachments []Attachment `json:"attachments" validate:"omitempty,dive"`
}

// ChatResponse echoes the session id alongside the assistant's reply.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// HistoryResponse wraps a session's messages in ascending timestamp order.
type HistoryResponse struct {
	Chats []ChatMessage `json:"chats"`
}

// SessionUpdate is the rename payload.
type SessionUpdate struct {
	Title string `json:"title" validate:"required"`
}

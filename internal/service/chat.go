package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aldisaputra17/chatbot-backend/internal/attachment"
	"github.com/aldisaputra17/chatbot-backend/internal/domain"
	"github.com/aldisaputra17/chatbot-backend/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// GenerationError marks a failed LLM invocation so handlers can map it onto
// an upstream error status with the provider's detail text.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return e.Err.Error()
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ChatService ties together the attachment normalizer, the LLM provider and
// the conversation store.
type ChatService struct {
	messageRepo domain.MessageRepository
	sessionRepo domain.SessionRepository
	provider    llm.Provider
	normalizer  *attachment.Normalizer
}

// NewChatService creates a new chat service
func NewChatService(
	messageRepo domain.MessageRepository,
	sessionRepo domain.SessionRepository,
	provider llm.Provider,
	normalizer *attachment.Normalizer,
) *ChatService {
	return &ChatService{
		messageRepo: messageRepo,
		sessionRepo: sessionRepo,
		provider:    provider,
		normalizer:  normalizer,
	}
}

// Send handles one chat exchange: resolve the session id, normalize
// attachments, persist the user turn, invoke the model, persist the
// assistant turn. The user turn is written before the model call so it
// survives a generation failure; it is not rolled back afterwards.
func (s *ChatService) Send(ctx context.Context, req domain.ChatRequest) (*domain.ChatResponse, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	fragments, redacted := s.normalizer.Normalize(req.Message, req.Attachments)

	// The stored user turn keeps the original text plus an attachment-count
	// suffix; inlined attachment content goes only to the model.
	content := req.Message
	if n := len(req.Attachments); n > 0 {
		content = fmt.Sprintf("%s [Attached %d file(s)]", content, n)
	}

	userMsg := &domain.ChatMessage{
		Role:        domain.RoleUser,
		Content:     content,
		Timestamp:   time.Now(),
		SessionID:   sessionID,
		Attachments: redacted,
	}
	if err := s.messageRepo.Append(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save user message: %w", err)
	}

	reply, err := s.provider.Invoke(ctx, fragments)
	if err != nil {
		// The user turn above stays persisted. An orphaned user turn with
		// no assistant reply is an accepted, observable state.
		log.Error().Err(err).Str("session_id", sessionID).Str("provider", s.provider.Name()).Msg("LLM invocation failed")
		return nil, &GenerationError{Err: err}
	}
	answer := reply.Normalize()

	assistantMsg := &domain.ChatMessage{
		Role:      domain.RoleAssistant,
		Content:   answer,
		Timestamp: time.Now(),
		SessionID: sessionID,
	}
	if err := s.messageRepo.Append(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save assistant message: %w", err)
	}

	return &domain.ChatResponse{Response: answer, SessionID: sessionID}, nil
}

// ListSessions derives the session list from the grouped message
// aggregation, newest session first, overlaying title overrides. Sessions
// that have an override but no messages are not listed.
func (s *ChatService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	groups, err := s.messageRepo.GroupBySession(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sessions: %w", err)
	}

	titles, err := s.sessionRepo.ListTitles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load session titles: %w", err)
	}

	sessions := make([]domain.Session, 0, len(groups))
	for _, g := range groups {
		// Legacy messages stored without a session id group under the
		// empty key; they belong to no listable session.
		if g.SessionID == "" {
			continue
		}
		sessions = append(sessions, domain.Session{
			SessionID: g.SessionID,
			CreatedAt: g.CreatedAt,
			Title:     resolveTitle(titles[g.SessionID], g.FirstMessage),
		})
	}
	return sessions, nil
}

// History returns a session's messages oldest first.
func (s *ChatService) History(ctx context.Context, sessionID string) (*domain.HistoryResponse, error) {
	messages, err := s.messageRepo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if messages == nil {
		messages = []domain.ChatMessage{}
	}
	return &domain.HistoryResponse{Chats: messages}, nil
}

// Rename upserts the title override for a session. The returned created_at
// is synthesized as now; it is a confirmation echo, not a read of the
// session's true creation time.
func (s *ChatService) Rename(ctx context.Context, sessionID, title string) (*domain.Session, error) {
	if err := s.sessionRepo.UpsertTitle(ctx, sessionID, title); err != nil {
		return nil, fmt.Errorf("failed to update session title: %w", err)
	}

	return &domain.Session{
		SessionID: sessionID,
		Title:     title,
		CreatedAt: time.Now(),
	}, nil
}

// resolveTitle applies the override > first-message > default order. A
// derived title is the first 30 characters of the first message, ellipsized
// only when the message is longer than that.
func resolveTitle(override, firstMessage string) string {
	if override != "" {
		return override
	}
	if firstMessage == "" {
		return domain.DefaultSessionTitle
	}
	if runes := []rune(firstMessage); len(runes) > 30 {
		return string(runes[:30]) + "..."
	}
	return firstMessage
}

package service

import (
	"context"

	"github.com/aldisaputra17/chatbot-backend/internal/domain"
	"github.com/aldisaputra17/chatbot-backend/internal/llm"
	"github.com/stretchr/testify/mock"
)

// MockMessageRepository mocks the MessageRepository interface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Append(ctx context.Context, message *domain.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChatMessage), args.Error(1)
}

func (m *MockMessageRepository) GroupBySession(ctx context.Context) ([]domain.SessionGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SessionGroup), args.Error(1)
}

// MockSessionRepository mocks the SessionRepository interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) UpsertTitle(ctx context.Context, sessionID, title string) error {
	args := m.Called(ctx, sessionID, title)
	return args.Error(0)
}

func (m *MockSessionRepository) ListTitles(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

// MockProvider mocks the llm.Provider interface
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) Name() string {
	return "mock"
}

func (m *MockProvider) Invoke(ctx context.Context, fragments []llm.Fragment) (llm.Reply, error) {
	args := m.Called(ctx, fragments)
	return args.Get(0).(llm.Reply), args.Error(1)
}

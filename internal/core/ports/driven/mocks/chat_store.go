package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockChatStore implements ChatStore
var _ driven.ChatStore = (*MockChatStore)(nil)

// MockChatStore is a mock implementation of ChatStore for testing
type MockChatStore struct {
	mu       sync.RWMutex
	chats    map[string]*domain.Chat
	messages map[string][]*domain.ChatMessage // by chat ID
}

// NewMockChatStore creates a new MockChatStore
func NewMockChatStore() *MockChatStore {
	return &MockChatStore{
		chats:    make(map[string]*domain.Chat),
		messages: make(map[string][]*domain.ChatMessage),
	}
}

func (m *MockChatStore) SaveChat(ctx context.Context, chat *domain.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[chat.ID] = chat
	return nil
}

func (m *MockChatStore) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chat, ok := m.chats[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return chat, nil
}

func (m *MockChatStore) ListChatsByProject(ctx context.Context, projectID string) ([]*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var chats []*domain.Chat
	for _, chat := range m.chats {
		if chat.ProjectID == projectID {
			chats = append(chats, chat)
		}
	}
	return chats, nil
}

func (m *MockChatStore) DeleteChat(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.chats[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.chats, id)
	delete(m.messages, id)
	return nil
}

func (m *MockChatStore) SaveMessage(ctx context.Context, message *domain.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[message.ChatID] = append(m.messages[message.ChatID], message)
	return nil
}

func (m *MockChatStore) ListMessages(ctx context.Context, chatID string) ([]*domain.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	msgs := append([]*domain.ChatMessage(nil), m.messages[chatID]...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
	return msgs, nil
}

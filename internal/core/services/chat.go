package services

import (
	"context"
	"strings"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

// chatService implements the ChatService interface
type chatService struct {
	chatStore    driven.ChatStore
	projectStore driven.ProjectStore
}

// NewChatService creates a new ChatService
func NewChatService(
	chatStore driven.ChatStore,
	projectStore driven.ProjectStore,
) driving.ChatService {
	return &chatService{
		chatStore:    chatStore,
		projectStore: projectStore,
	}
}

// Create creates a chat within a project the user owns
func (s *chatService) Create(ctx context.Context, userID string, req driving.CreateChatRequest) (*domain.Chat, error) {
	if userID == "" || req.ProjectID == "" {
		return nil, domain.ErrInvalidInput
	}

	project, err := s.projectStore.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = "New Chat"
	}

	chat := &domain.Chat{
		ID:        generateID(),
		ProjectID: req.ProjectID,
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now(),
	}

	if err := s.chatStore.SaveChat(ctx, chat); err != nil {
		return nil, err
	}

	return chat, nil
}

// Get retrieves a chat the user owns
func (s *chatService) Get(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	chat, err := s.chatStore.GetChat(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if chat.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return chat, nil
}

// ListMessages retrieves the message history of a chat
func (s *chatService) ListMessages(ctx context.Context, userID, chatID string) ([]*domain.ChatMessage, error) {
	if _, err := s.Get(ctx, userID, chatID); err != nil {
		return nil, err
	}
	return s.chatStore.ListMessages(ctx, chatID)
}

// Delete deletes a chat the user owns, along with its messages
func (s *chatService) Delete(ctx context.Context, userID, chatID string) (*domain.Chat, error) {
	chat, err := s.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}

	if err := s.chatStore.DeleteChat(ctx, chatID); err != nil {
		return nil, err
	}

	return chat, nil
}

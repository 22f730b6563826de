package driving

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// CreateChatRequest represents a chat creation request
type CreateChatRequest struct {
	Title     string `json:"title"`
	ProjectID string `json:"project_id"`
}

// ChatService manages project chats and their message history
type ChatService interface {
	// Create creates a chat within a project
	Create(ctx context.Context, userID string, req CreateChatRequest) (*domain.Chat, error)

	// Get retrieves a chat by ID
	Get(ctx context.Context, userID, chatID string) (*domain.Chat, error)

	// ListMessages retrieves the message history of a chat
	ListMessages(ctx context.Context, userID, chatID string) ([]*domain.ChatMessage, error)

	// Delete deletes a chat the user owns
	Delete(ctx context.Context, userID, chatID string) (*domain.Chat, error)
}

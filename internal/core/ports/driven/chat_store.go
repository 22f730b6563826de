package driven

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// ChatStore handles chat and message persistence (PostgreSQL)
type ChatStore interface {
	// SaveChat creates or updates a chat
	SaveChat(ctx context.Context, chat *domain.Chat) error

	// GetChat retrieves a chat by ID
	GetChat(ctx context.Context, id string) (*domain.Chat, error)

	// ListChatsByProject retrieves all chats for a project
	ListChatsByProject(ctx context.Context, projectID string) ([]*domain.Chat, error)

	// DeleteChat deletes a chat and its messages
	DeleteChat(ctx context.Context, id string) error

	// SaveMessage appends a message to a chat
	SaveMessage(ctx context.Context, message *domain.ChatMessage) error

	// ListMessages retrieves all messages for a chat in creation order
	ListMessages(ctx context.Context, chatID string) ([]*domain.ChatMessage, error)
}

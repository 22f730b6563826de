package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore implements driven.ChatStore using PostgreSQL.
// Message citations are stored as JSONB alongside the content.
type ChatStore struct {
	db *DB
}

// NewChatStore creates a new ChatStore
func NewChatStore(db *DB) *ChatStore {
	return &ChatStore{db: db}
}

// SaveChat creates or updates a chat
func (s *ChatStore) SaveChat(ctx context.Context, chat *domain.Chat) error {
	query := `
		INSERT INTO chats (id, project_id, user_id, title, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title
	`

	_, err := s.db.ExecContext(ctx, query,
		chat.ID,
		chat.ProjectID,
		chat.UserID,
		chat.Title,
		chat.CreatedAt,
	)
	return err
}

// GetChat retrieves a chat by ID
func (s *ChatStore) GetChat(ctx context.Context, id string) (*domain.Chat, error) {
	query := `
		SELECT id, project_id, user_id, title, created_at
		FROM chats
		WHERE id = $1
	`

	var chat domain.Chat
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&chat.ID,
		&chat.ProjectID,
		&chat.UserID,
		&chat.Title,
		&chat.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &chat, nil
}

// ListChatsByProject retrieves all chats for a project, newest first
func (s *ChatStore) ListChatsByProject(ctx context.Context, projectID string) ([]*domain.Chat, error) {
	query := `
		SELECT id, project_id, user_id, title, created_at
		FROM chats
		WHERE project_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []*domain.Chat
	for rows.Next() {
		var chat domain.Chat
		err := rows.Scan(
			&chat.ID,
			&chat.ProjectID,
			&chat.UserID,
			&chat.Title,
			&chat.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		chats = append(chats, &chat)
	}

	return chats, rows.Err()
}

// DeleteChat deletes a chat; messages follow via foreign key
func (s *ChatStore) DeleteChat(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM chats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SaveMessage appends a message to a chat
func (s *ChatStore) SaveMessage(ctx context.Context, message *domain.ChatMessage) error {
	citations := message.Citations
	if citations == nil {
		citations = []*domain.Citation{}
	}
	encoded, err := json.Marshal(citations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chat_messages (id, chat_id, role, content, citations, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.db.ExecContext(ctx, query,
		message.ID,
		message.ChatID,
		string(message.Role),
		message.Content,
		encoded,
		message.CreatedAt,
	)
	return err
}

// ListMessages retrieves all messages for a chat in creation order
func (s *ChatStore) ListMessages(ctx context.Context, chatID string) ([]*domain.ChatMessage, error) {
	query := `
		SELECT id, chat_id, role, content, citations, created_at
		FROM chat_messages
		WHERE chat_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*domain.ChatMessage
	for rows.Next() {
		var message domain.ChatMessage
		var role string
		var citations []byte

		err := rows.Scan(
			&message.ID,
			&message.ChatID,
			&role,
			&message.Content,
			&citations,
			&message.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		message.Role = domain.MessageRole(role)
		if err := json.Unmarshal(citations, &message.Citations); err != nil {
			return nil, err
		}

		messages = append(messages, &message)
	}

	return messages, rows.Err()
}

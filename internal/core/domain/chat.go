package domain

import "time"

// Chat is a conversation scoped to a project
type Chat struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageRole identifies who produced a chat message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one persisted turn in a chat. Assistant messages carry
// the citations resolved for the answer; user messages carry none.
type ChatMessage struct {
	ID        string      `json:"id"`
	ChatID    string      `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Citations []*Citation `json:"citations,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven/mocks"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
)

func newChatFixture(t *testing.T) (*mocks.MockChatStore, driving.ChatService) {
	t.Helper()
	chatStore := mocks.NewMockChatStore()
	projectStore := mocks.NewMockProjectStore()
	err := projectStore.Save(context.Background(), &domain.Project{
		ID:     "proj-1",
		UserID: "user-1",
		Name:   "chats",
	})
	if err != nil {
		t.Fatalf("seeding project: %v", err)
	}
	return chatStore, NewChatService(chatStore, projectStore)
}

func TestChatService_Create(t *testing.T) {
	_, svc := newChatFixture(t)
	ctx := context.Background()

	chat, err := svc.Create(ctx, "user-1", driving.CreateChatRequest{
		ProjectID: "proj-1",
		Title:     "quarterly numbers",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chat.Title != "quarterly numbers" || chat.ProjectID != "proj-1" || chat.UserID != "user-1" {
		t.Errorf("unexpected chat %+v", chat)
	}

	// Blank title gets a default
	chat2, err := svc.Create(ctx, "user-1", driving.CreateChatRequest{ProjectID: "proj-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chat2.Title != "New Chat" {
		t.Errorf("expected default title, got %q", chat2.Title)
	}
}

func TestChatService_Create_Authorization(t *testing.T) {
	_, svc := newChatFixture(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "intruder", driving.CreateChatRequest{ProjectID: "proj-1"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", driving.CreateChatRequest{ProjectID: "ghost"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, "user-1", driving.CreateChatRequest{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestChatService_ListMessages(t *testing.T) {
	chatStore, svc := newChatFixture(t)
	ctx := context.Background()

	chat, _ := svc.Create(ctx, "user-1", driving.CreateChatRequest{ProjectID: "proj-1"})

	_ = chatStore.SaveMessage(ctx, &domain.ChatMessage{
		ID: "m1", ChatID: chat.ID, Role: domain.RoleUser, Content: "q",
	})
	_ = chatStore.SaveMessage(ctx, &domain.ChatMessage{
		ID: "m2", ChatID: chat.ID, Role: domain.RoleAssistant, Content: "a",
	})

	messages, err := svc.ListMessages(ctx, "user-1", chat.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Role != domain.RoleUser || messages[1].Role != domain.RoleAssistant {
		t.Error("expected messages in creation order")
	}

	if _, err := svc.ListMessages(ctx, "intruder", chat.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestChatService_Delete(t *testing.T) {
	chatStore, svc := newChatFixture(t)
	ctx := context.Background()

	chat, _ := svc.Create(ctx, "user-1", driving.CreateChatRequest{ProjectID: "proj-1"})

	if _, err := svc.Delete(ctx, "intruder", chat.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}

	if _, err := svc.Delete(ctx, "user-1", chat.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := chatStore.GetChat(ctx, chat.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Error("expected chat removed")
	}
}

package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

func TestNewOpenAIChat_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIChat("", "gpt-4o", "")
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewOpenAIChat_Defaults(t *testing.T) {
	svc, err := NewOpenAIChat("sk-test", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Model() != "gpt-4o" {
		t.Errorf("expected default model gpt-4o, got %s", svc.Model())
	}
}

func TestOpenAIChat_Generate_TextOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Error("expected Authorization header")
		}

		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		messages, ok := req["messages"].([]interface{})
		if !ok || len(messages) != 2 {
			t.Fatalf("expected 2 messages, got %v", req["messages"])
		}

		system := messages[0].(map[string]interface{})
		if system["role"] != "system" {
			t.Errorf("expected system role first, got %v", system["role"])
		}

		user := messages[1].(map[string]interface{})
		// Text-only payloads send content as a bare string
		if _, ok := user["content"].(string); !ok {
			t.Errorf("expected string content for text-only payload, got %T", user["content"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"the answer"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	svc, err := NewOpenAIChat("sk-test", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := &domain.GenerationPayload{
		SystemPrompt: "You are helpful.",
		UserText:     "What is the capital of France?",
	}

	answer, err := svc.Generate(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "the answer" {
		t.Errorf("unexpected answer: %s", answer)
	}
}

func TestOpenAIChat_Generate_MultiModal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		messages := req["messages"].([]interface{})
		user := messages[1].(map[string]interface{})

		// Image payloads send content as a part array
		parts, ok := user["content"].([]interface{})
		if !ok {
			t.Fatalf("expected content array for image payload, got %T", user["content"])
		}
		if len(parts) != 3 {
			t.Fatalf("expected 3 content parts, got %d", len(parts))
		}

		first := parts[0].(map[string]interface{})
		if first["type"] != "text" {
			t.Errorf("expected text part first, got %v", first["type"])
		}

		second := parts[1].(map[string]interface{})
		if second["type"] != "image_url" {
			t.Errorf("expected image_url part, got %v", second["type"])
		}
		imageURL := second["image_url"].(map[string]interface{})
		if !strings.HasPrefix(imageURL["url"].(string), "data:image/jpeg;base64,") {
			t.Errorf("expected data URI, got %v", imageURL["url"])
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"described"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	svc, err := NewOpenAIChat("sk-test", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := &domain.GenerationPayload{
		SystemPrompt: "You are helpful.",
		UserText:     "Describe the figures.",
		Images: []string{
			"data:image/jpeg;base64,aGVsbG8=",
			"data:image/jpeg;base64,d29ybGQ=",
		},
	}

	answer, err := svc.Generate(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if answer != "described" {
		t.Errorf("unexpected answer: %s", answer)
	}
}

func TestOpenAIChat_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error","code":"invalid_api_key"}}`))
	}))
	defer server.Close()

	svc, err := NewOpenAIChat("sk-bad", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Generate(context.Background(), &domain.GenerationPayload{UserText: "hi"})
	if err == nil {
		t.Error("expected error for API failure")
	}
	if !strings.Contains(err.Error(), "bad key") {
		t.Errorf("expected API error message, got %v", err)
	}
}

func TestOpenAIChat_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	svc, err := NewOpenAIChat("sk-test", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Generate(context.Background(), &domain.GenerationPayload{UserText: "hi"})
	if err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestOpenAIChat_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Errorf("expected /models, got %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc, err := NewOpenAIChat("sk-test", "gpt-4o", server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
}

func TestOpenAIChat_Close(t *testing.T) {
	svc, err := NewOpenAIChat("sk-test", "gpt-4o", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Errorf("unexpected close error: %v", err)
	}
}

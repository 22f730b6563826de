package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure OpenAIChat implements GenerationService
var _ driven.GenerationService = (*OpenAIChat)(nil)

// OpenAIChat implements GenerationService using OpenAI's chat completions API
type OpenAIChat struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIChat creates a new OpenAI chat generation service
func NewOpenAIChat(apiKey, model, baseURL string) (driven.GenerationService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if model == "" {
		model = "gpt-4o"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIChat{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// chatMessage is one message in a chat completion request. Content is
// a plain string for text-only payloads and a content-part array when
// images are attached.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type contentPart struct {
	Type     string         `json:"type"`
	Text     string         `json:"text,omitempty"`
	ImageURL *imageURLBlock `json:"image_url,omitempty"`
}

type imageURLBlock struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// Generate produces an answer for the composed payload
func (c *OpenAIChat) Generate(ctx context.Context, payload *domain.GenerationPayload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("payload is required")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: payload.SystemPrompt},
			{Role: "user", Content: userContent(payload)},
		},
	}

	resp, err := c.doRequest(ctx, reqBody)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return resp.Choices[0].Message.Content, nil
}

// userContent shapes the user message: a bare string for text-only
// payloads, a content-part array when images are attached.
func userContent(payload *domain.GenerationPayload) interface{} {
	if !payload.IsMultiModal() {
		return payload.UserText
	}

	parts := []contentPart{
		{Type: "text", Text: payload.UserText},
	}
	for _, image := range payload.Images {
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURLBlock{URL: image},
		})
	}
	return parts
}

// Model returns the model name being used
func (c *OpenAIChat) Model() string {
	return c.model
}

// Ping verifies the generation service is available
func (c *OpenAIChat) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources held by the generation service
func (c *OpenAIChat) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// doRequest makes a request to the OpenAI chat completions API
func (c *OpenAIChat) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return nil, fmt.Errorf("OpenAI API error: %s (type: %s, code: %s)",
			chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI API returned status %d", resp.StatusCode)
	}

	return &chatResp, nil
}

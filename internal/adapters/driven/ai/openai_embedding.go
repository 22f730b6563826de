package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure OpenAIEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*OpenAIEmbedding)(nil)

// defaultEmbeddingModel matches the retrieval settings default, so a
// project that never touched its settings embeds with the same model
// the settings screen reports.
const defaultEmbeddingModel = "text-embedding-large"

// embeddingDimensions maps the model aliases used in retrieval
// settings, plus the upstream OpenAI names, to their vector width.
// The chunk index schema is sized for 1536; wider models are only
// usable once the index migrates.
var embeddingDimensions = map[string]int{
	"text-embedding-large":   1536,
	"text-embedding-small":   1536,
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedding talks to an OpenAI-compatible /embeddings endpoint.
// Ollama and other compatible backends work by pointing baseURL at
// them.
type OpenAIEmbedding struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAIEmbedding creates a new OpenAI embedding service
func NewOpenAIEmbedding(apiKey, model, baseURL string) (driven.EmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = defaultEmbeddingModel
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAIEmbedding{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Embed generates embeddings for a batch of chunk texts. The result
// is ordered to match the input regardless of response order.
func (e *OpenAIEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	data, err := e.call(ctx, texts)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(texts))
	for _, item := range data {
		if item.Index < 0 || item.Index >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range for batch of %d", item.Index, len(texts))
		}
		out[item.Index] = item.Embedding
	}
	return out, nil
}

// EmbedQuery generates an embedding for a search query
func (e *OpenAIEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := e.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || vectors[0] == nil {
		return nil, fmt.Errorf("no embedding returned for query")
	}
	return vectors[0], nil
}

// Dimensions returns the vector width the model produces
func (e *OpenAIEmbedding) Dimensions() int {
	if d, ok := embeddingDimensions[e.model]; ok {
		return d
	}
	return embeddingDimensions[defaultEmbeddingModel]
}

// Model returns the model name being used
func (e *OpenAIEmbedding) Model() string {
	return e.model
}

// HealthCheck verifies the embedding endpoint responds
func (e *OpenAIEmbedding) HealthCheck(ctx context.Context) error {
	_, err := e.EmbedQuery(ctx, "health check")
	return err
}

// Close releases resources held by the embedding service
func (e *OpenAIEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}

type embeddingItem struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

// call posts the batch to /embeddings and returns the raw items
func (e *OpenAIEmbedding) call(ctx context.Context, texts []string) ([]embeddingItem, error) {
	body, err := json.Marshal(map[string]any{
		"input":           texts,
		"model":           e.model,
		"encoding_format": "float",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed struct {
		Data  []embeddingItem `json:"data"`
		Error *struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("embedding API error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned status %d", resp.StatusCode)
	}
	return parsed.Data, nil
}

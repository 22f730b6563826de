package ai

import (
	"fmt"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateEmbeddingService creates an embedding service from config.
// Returns nil, nil when the config is absent or incomplete.
func (f *Factory) CreateEmbeddingService(config *domain.EmbeddingConfig) (driven.EmbeddingService, error) {
	if config == nil || !config.IsConfigured() {
		return nil, nil
	}

	switch config.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIEmbedding(config.APIKey, config.Model, config.BaseURL)
	case domain.AIProviderOllama:
		// Ollama exposes an OpenAI-compatible API; the key is unused
		return NewOpenAIEmbedding("ollama", config.Model, config.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, config.Provider)
	}
}

// CreateGenerationService creates a generation service from config.
// Returns nil, nil when the config is absent or incomplete.
func (f *Factory) CreateGenerationService(config *domain.GenerationConfig) (driven.GenerationService, error) {
	if config == nil || !config.IsConfigured() {
		return nil, nil
	}

	switch config.Provider {
	case domain.AIProviderOpenAI:
		return NewOpenAIChat(config.APIKey, config.Model, config.BaseURL)
	case domain.AIProviderOllama:
		return NewOpenAIChat("ollama", config.Model, config.BaseURL)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, config.Provider)
	}
}

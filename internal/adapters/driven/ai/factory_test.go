package ai

import (
	"errors"
	"testing"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

func TestNewFactory(t *testing.T) {
	factory := NewFactory()
	if factory == nil {
		t.Fatal("expected factory, got nil")
	}
}

func TestFactory_CreateEmbeddingService_NilConfig(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateEmbeddingService(nil)
	if err != nil {
		t.Errorf("expected no error for nil config, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for nil config")
	}
}

func TestFactory_CreateEmbeddingService_NotConfigured(t *testing.T) {
	factory := NewFactory()

	config := &domain.EmbeddingConfig{
		Provider: "",
		Model:    "",
		APIKey:   "",
	}

	svc, err := factory.CreateEmbeddingService(config)
	if err != nil {
		t.Errorf("expected no error for unconfigured config, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for unconfigured config")
	}
}

func TestFactory_CreateEmbeddingService_OpenAI(t *testing.T) {
	factory := NewFactory()

	config := &domain.EmbeddingConfig{
		Provider: domain.AIProviderOpenAI,
		Model:    "text-embedding-3-small",
		APIKey:   "sk-test",
	}

	svc, err := factory.CreateEmbeddingService(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service, got nil")
	}
	if svc.Model() != "text-embedding-3-small" {
		t.Errorf("unexpected model: %s", svc.Model())
	}
}

func TestFactory_CreateEmbeddingService_Ollama(t *testing.T) {
	factory := NewFactory()

	config := &domain.EmbeddingConfig{
		Provider: domain.AIProviderOllama,
		Model:    "nomic-embed-text",
		BaseURL:  "http://localhost:11434/v1",
	}

	svc, err := factory.CreateEmbeddingService(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service, got nil")
	}
}

func TestFactory_CreateEmbeddingService_InvalidProvider(t *testing.T) {
	factory := NewFactory()

	config := &domain.EmbeddingConfig{
		Provider: "acme",
		Model:    "whatever",
		APIKey:   "key",
	}

	_, err := factory.CreateEmbeddingService(config)
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestFactory_CreateGenerationService_NilConfig(t *testing.T) {
	factory := NewFactory()

	svc, err := factory.CreateGenerationService(nil)
	if err != nil {
		t.Errorf("expected no error for nil config, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for nil config")
	}
}

func TestFactory_CreateGenerationService_NotConfigured(t *testing.T) {
	factory := NewFactory()

	config := &domain.GenerationConfig{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o",
		APIKey:   "", // OpenAI requires a key
	}

	svc, err := factory.CreateGenerationService(config)
	if err != nil {
		t.Errorf("expected no error for unconfigured config, got %v", err)
	}
	if svc != nil {
		t.Error("expected nil service for unconfigured config")
	}
}

func TestFactory_CreateGenerationService_OpenAI(t *testing.T) {
	factory := NewFactory()

	config := &domain.GenerationConfig{
		Provider: domain.AIProviderOpenAI,
		Model:    "gpt-4o",
		APIKey:   "sk-test",
	}

	svc, err := factory.CreateGenerationService(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service, got nil")
	}
	if svc.Model() != "gpt-4o" {
		t.Errorf("unexpected model: %s", svc.Model())
	}
}

func TestFactory_CreateGenerationService_Ollama(t *testing.T) {
	factory := NewFactory()

	config := &domain.GenerationConfig{
		Provider: domain.AIProviderOllama,
		Model:    "llama3",
		BaseURL:  "http://localhost:11434/v1",
	}

	svc, err := factory.CreateGenerationService(config)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc == nil {
		t.Fatal("expected service, got nil")
	}
}

func TestFactory_CreateGenerationService_InvalidProvider(t *testing.T) {
	factory := NewFactory()

	config := &domain.GenerationConfig{
		Provider: "acme",
		Model:    "whatever",
		APIKey:   "key",
	}

	_, err := factory.CreateGenerationService(config)
	if !errors.Is(err, domain.ErrInvalidProvider) {
		t.Errorf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestFactory_ImplementsInterface(t *testing.T) {
	var _ driven.AIServiceFactory = NewFactory()
}

package runtime

import (
	"context"
	"sync"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Services holds references to the AI collaborators. Both are built
// once from environment configuration at startup; the registry keeps
// capability flags current so HTTP readiness and the ask pipeline can
// check what is actually available.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	embeddingService  driven.EmbeddingService
	generationService driven.GenerationService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// EmbeddingService returns the current embedding service (may be nil)
func (s *Services) EmbeddingService() driven.EmbeddingService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.embeddingService
}

// GenerationService returns the current generation service (may be nil)
func (s *Services) GenerationService() driven.GenerationService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generationService
}

// SetEmbeddingService updates the embedding service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetEmbeddingService(svc driven.EmbeddingService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
	}

	s.embeddingService = svc
	s.config.SetEmbeddingAvailable(svc != nil)
}

// SetGenerationService updates the generation service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetGenerationService(svc driven.GenerationService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generationService != nil {
		_ = s.generationService.Close()
	}

	s.generationService = svc
	s.config.SetGenerationAvailable(svc != nil)
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.embeddingService != nil {
		_ = s.embeddingService.Close()
		s.embeddingService = nil
	}
	if s.generationService != nil {
		_ = s.generationService.Close()
		s.generationService = nil
	}

	s.config.SetEmbeddingAvailable(false)
	s.config.SetGenerationAvailable(false)

	return nil
}

// ValidateAndSetEmbedding validates connectivity before setting the
// embedding service
func (s *Services) ValidateAndSetEmbedding(ctx context.Context, svc driven.EmbeddingService) error {
	if svc == nil {
		s.SetEmbeddingService(nil)
		return nil
	}

	if err := svc.HealthCheck(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetEmbeddingService(svc)
	return nil
}

// ValidateAndSetGeneration validates connectivity before setting the
// generation service
func (s *Services) ValidateAndSetGeneration(ctx context.Context, svc driven.GenerationService) error {
	if svc == nil {
		s.SetGenerationService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetGenerationService(svc)
	return nil
}

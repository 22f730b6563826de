package driven

import (
	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// AIServiceFactory creates AI collaborator clients from configuration.
// Clients are created once per process and reused across requests.
type AIServiceFactory interface {
	// CreateEmbeddingService creates an embedding service from config
	CreateEmbeddingService(config *domain.EmbeddingConfig) (EmbeddingService, error)

	// CreateGenerationService creates a generation service from config
	CreateGenerationService(config *domain.GenerationConfig) (GenerationService, error)
}

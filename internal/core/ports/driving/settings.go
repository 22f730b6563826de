package driving

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// UpdateRetrievalSettingsRequest carries partial settings updates.
// Nil fields are left unchanged.
type UpdateRetrievalSettingsRequest struct {
	EmbeddingModel      *string  `json:"embedding_model,omitempty"`
	RerankingModel      *string  `json:"reranking_model,omitempty"`
	ChunksPerSearch     *int     `json:"chunks_per_search,omitempty"`
	FinalContextSize    *int     `json:"final_context_size,omitempty"`
	SimilarityThreshold *float64 `json:"similarity_threshold,omitempty"`
	NumberOfQueries     *int     `json:"number_of_queries,omitempty"`
	RerankingEnabled    *bool    `json:"reranking_enabled,omitempty"`
	VectorWeight        *float64 `json:"vector_weight,omitempty"`
	KeywordWeight       *float64 `json:"keyword_weight,omitempty"`
}

// SettingsService manages per-project retrieval settings
type SettingsService interface {
	// Get retrieves the settings for a project.
	// Returns domain.ErrNotFound if the project has no settings record.
	Get(ctx context.Context, projectID string) (*domain.RetrievalSettings, error)

	// Update applies a partial update. The merged record is validated
	// before persisting; invalid updates return domain.ErrInvalidSettings.
	Update(ctx context.Context, projectID string, req UpdateRetrievalSettingsRequest) (*domain.RetrievalSettings, error)
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RetrievalSettingsStore = (*SettingsStore)(nil)

// SettingsStore implements driven.RetrievalSettingsStore using PostgreSQL
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// GetByProject retrieves the settings record for a project
func (s *SettingsStore) GetByProject(ctx context.Context, projectID string) (*domain.RetrievalSettings, error) {
	query := `
		SELECT project_id, embedding_model, reranking_model, rag_strategy, agent_type,
			   chunks_per_search, final_context_size, similarity_threshold,
			   number_of_queries, reranking_enabled, vector_weight, keyword_weight,
			   updated_at
		FROM retrieval_settings
		WHERE project_id = $1
	`

	var settings domain.RetrievalSettings
	err := s.db.QueryRowContext(ctx, query, projectID).Scan(
		&settings.ProjectID,
		&settings.EmbeddingModel,
		&settings.RerankingModel,
		&settings.RAGStrategy,
		&settings.AgentType,
		&settings.ChunksPerSearch,
		&settings.FinalContextSize,
		&settings.SimilarityThreshold,
		&settings.NumberOfQueries,
		&settings.RerankingEnabled,
		&settings.VectorWeight,
		&settings.KeywordWeight,
		&settings.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

// Save creates or updates the settings record for a project
func (s *SettingsStore) Save(ctx context.Context, settings *domain.RetrievalSettings) error {
	query := `
		INSERT INTO retrieval_settings (project_id, embedding_model, reranking_model, rag_strategy,
										agent_type, chunks_per_search, final_context_size,
										similarity_threshold, number_of_queries, reranking_enabled,
										vector_weight, keyword_weight, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (project_id) DO UPDATE SET
			embedding_model = EXCLUDED.embedding_model,
			reranking_model = EXCLUDED.reranking_model,
			rag_strategy = EXCLUDED.rag_strategy,
			agent_type = EXCLUDED.agent_type,
			chunks_per_search = EXCLUDED.chunks_per_search,
			final_context_size = EXCLUDED.final_context_size,
			similarity_threshold = EXCLUDED.similarity_threshold,
			number_of_queries = EXCLUDED.number_of_queries,
			reranking_enabled = EXCLUDED.reranking_enabled,
			vector_weight = EXCLUDED.vector_weight,
			keyword_weight = EXCLUDED.keyword_weight,
			updated_at = EXCLUDED.updated_at
	`

	settings.UpdatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, query,
		settings.ProjectID,
		settings.EmbeddingModel,
		settings.RerankingModel,
		string(settings.RAGStrategy),
		settings.AgentType,
		settings.ChunksPerSearch,
		settings.FinalContextSize,
		settings.SimilarityThreshold,
		settings.NumberOfQueries,
		settings.RerankingEnabled,
		settings.VectorWeight,
		settings.KeywordWeight,
		settings.UpdatedAt,
	)
	return err
}

// Delete removes the settings record for a project
func (s *SettingsStore) Delete(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM retrieval_settings WHERE project_id = $1`, projectID)
	return err
}

package services

import (
	"context"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
)

// Ensure settingsService implements SettingsService
var _ driving.SettingsService = (*settingsService)(nil)

// settingsService implements the SettingsService interface
type settingsService struct {
	settingsStore driven.RetrievalSettingsStore
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsStore driven.RetrievalSettingsStore) driving.SettingsService {
	return &settingsService{
		settingsStore: settingsStore,
	}
}

// Get retrieves the retrieval settings for a project
func (s *settingsService) Get(ctx context.Context, projectID string) (*domain.RetrievalSettings, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.settingsStore.GetByProject(ctx, projectID)
}

// Update applies a partial update to a project's retrieval settings.
// The merged record is validated before persisting; the stored record
// is left untouched when validation fails.
func (s *settingsService) Update(ctx context.Context, projectID string, req driving.UpdateRetrievalSettingsRequest) (*domain.RetrievalSettings, error) {
	if projectID == "" {
		return nil, domain.ErrInvalidInput
	}

	settings, err := s.settingsStore.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if req.EmbeddingModel != nil {
		settings.EmbeddingModel = *req.EmbeddingModel
	}
	if req.RerankingModel != nil {
		settings.RerankingModel = *req.RerankingModel
	}
	if req.ChunksPerSearch != nil {
		settings.ChunksPerSearch = *req.ChunksPerSearch
	}
	if req.FinalContextSize != nil {
		settings.FinalContextSize = *req.FinalContextSize
	}
	if req.SimilarityThreshold != nil {
		settings.SimilarityThreshold = *req.SimilarityThreshold
	}
	if req.NumberOfQueries != nil {
		settings.NumberOfQueries = *req.NumberOfQueries
	}
	if req.RerankingEnabled != nil {
		settings.RerankingEnabled = *req.RerankingEnabled
	}
	if req.VectorWeight != nil {
		settings.VectorWeight = *req.VectorWeight
	}
	if req.KeywordWeight != nil {
		settings.KeywordWeight = *req.KeywordWeight
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	settings.UpdatedAt = time.Now()

	if err := s.settingsStore.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

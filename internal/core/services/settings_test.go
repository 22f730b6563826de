package services

import (
	"context"
	"testing"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven/mocks"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
func boolPtr(v bool) *bool          { return &v }
func strPtr(v string) *string       { return &v }

func TestSettingsService_Get(t *testing.T) {
	store := mocks.NewMockRetrievalSettingsStore()
	svc := NewSettingsService(store)
	ctx := context.Background()

	_ = store.Save(ctx, domain.DefaultRetrievalSettings("proj-1"))

	settings, err := svc.Get(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 10, settings.ChunksPerSearch)

	_, err = svc.Get(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_Update(t *testing.T) {
	store := mocks.NewMockRetrievalSettingsStore()
	svc := NewSettingsService(store)
	ctx := context.Background()

	_ = store.Save(ctx, domain.DefaultRetrievalSettings("proj-1"))

	updated, err := svc.Update(ctx, "proj-1", driving.UpdateRetrievalSettingsRequest{
		ChunksPerSearch:     intPtr(20),
		SimilarityThreshold: float64Ptr(0.5),
		RerankingEnabled:    boolPtr(false),
		EmbeddingModel:      strPtr("text-embedding-small"),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.ChunksPerSearch)
	assert.Equal(t, 0.5, updated.SimilarityThreshold)
	assert.False(t, updated.RerankingEnabled)
	assert.Equal(t, "text-embedding-small", updated.EmbeddingModel)

	// Fields not in the request keep their values
	assert.Equal(t, 5, updated.FinalContextSize)

	// Update persisted
	stored, err := store.GetByProject(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 20, stored.ChunksPerSearch)
}

func TestSettingsService_Update_ValidatesMergedRecord(t *testing.T) {
	store := mocks.NewMockRetrievalSettingsStore()
	svc := NewSettingsService(store)
	ctx := context.Background()

	_ = store.Save(ctx, domain.DefaultRetrievalSettings("proj-1"))

	tests := []struct {
		name string
		req  driving.UpdateRetrievalSettingsRequest
	}{
		{
			name: "threshold out of range",
			req:  driving.UpdateRetrievalSettingsRequest{SimilarityThreshold: float64Ptr(1.5)},
		},
		{
			name: "non-positive chunk count",
			req:  driving.UpdateRetrievalSettingsRequest{ChunksPerSearch: intPtr(0)},
		},
		{
			name: "weights do not sum to one",
			req:  driving.UpdateRetrievalSettingsRequest{VectorWeight: float64Ptr(0.9)},
		},
		{
			name: "negative weight",
			req: driving.UpdateRetrievalSettingsRequest{
				VectorWeight:  float64Ptr(-0.2),
				KeywordWeight: float64Ptr(1.2),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, "proj-1", tt.req)
			assert.ErrorIs(t, err, domain.ErrInvalidSettings)
		})
	}

	// Stored record is untouched after failed updates
	stored, err := store.GetByProject(ctx, "proj-1")
	require.NoError(t, err)
	assert.Equal(t, 0.3, stored.SimilarityThreshold)
	assert.Equal(t, 0.7, stored.VectorWeight)
}

func TestSettingsService_Update_AdjustingBothWeights(t *testing.T) {
	store := mocks.NewMockRetrievalSettingsStore()
	svc := NewSettingsService(store)
	ctx := context.Background()

	_ = store.Save(ctx, domain.DefaultRetrievalSettings("proj-1"))

	updated, err := svc.Update(ctx, "proj-1", driving.UpdateRetrievalSettingsRequest{
		VectorWeight:  float64Ptr(0.5),
		KeywordWeight: float64Ptr(0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, updated.VectorWeight)
	assert.Equal(t, 0.5, updated.KeywordWeight)
}

func TestSettingsService_Update_MissingRecord(t *testing.T) {
	store := mocks.NewMockRetrievalSettingsStore()
	svc := NewSettingsService(store)

	_, err := svc.Update(context.Background(), "ghost", driving.UpdateRetrievalSettingsRequest{
		ChunksPerSearch: intPtr(3),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

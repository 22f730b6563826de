package domain

import (
	"errors"
	"testing"
)

func TestDefaultRetrievalSettings(t *testing.T) {
	projectID := "proj-123"
	settings := DefaultRetrievalSettings(projectID)

	if settings.ProjectID != projectID {
		t.Errorf("expected ProjectID %s, got %s", projectID, settings.ProjectID)
	}
	if settings.ChunksPerSearch != 10 {
		t.Errorf("expected ChunksPerSearch 10, got %d", settings.ChunksPerSearch)
	}
	if settings.FinalContextSize != 5 {
		t.Errorf("expected FinalContextSize 5, got %d", settings.FinalContextSize)
	}
	if settings.SimilarityThreshold != 0.3 {
		t.Errorf("expected SimilarityThreshold 0.3, got %f", settings.SimilarityThreshold)
	}
	if settings.NumberOfQueries != 5 {
		t.Errorf("expected NumberOfQueries 5, got %d", settings.NumberOfQueries)
	}
	if !settings.RerankingEnabled {
		t.Error("expected RerankingEnabled to be true")
	}
	if settings.VectorWeight != 0.7 || settings.KeywordWeight != 0.3 {
		t.Errorf("expected weights 0.7/0.3, got %f/%f", settings.VectorWeight, settings.KeywordWeight)
	}
	if settings.RAGStrategy != RAGStrategyBasic {
		t.Errorf("expected strategy basic, got %s", settings.RAGStrategy)
	}
	if settings.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}

	if err := settings.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestRetrievalSettings_Validate(t *testing.T) {
	valid := func() *RetrievalSettings {
		return DefaultRetrievalSettings("proj-123")
	}

	tests := []struct {
		name   string
		mutate func(*RetrievalSettings)
	}{
		{"missing project id", func(s *RetrievalSettings) { s.ProjectID = "" }},
		{"zero chunks per search", func(s *RetrievalSettings) { s.ChunksPerSearch = 0 }},
		{"negative chunks per search", func(s *RetrievalSettings) { s.ChunksPerSearch = -1 }},
		{"zero context size", func(s *RetrievalSettings) { s.FinalContextSize = 0 }},
		{"zero queries", func(s *RetrievalSettings) { s.NumberOfQueries = 0 }},
		{"threshold below range", func(s *RetrievalSettings) { s.SimilarityThreshold = -0.1 }},
		{"threshold above range", func(s *RetrievalSettings) { s.SimilarityThreshold = 1.1 }},
		{"negative weight", func(s *RetrievalSettings) { s.VectorWeight = -0.2; s.KeywordWeight = 1.2 }},
		{"weights do not sum to one", func(s *RetrievalSettings) { s.VectorWeight = 0.7; s.KeywordWeight = 0.7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, ErrInvalidSettings) {
				t.Errorf("expected ErrInvalidSettings, got %v", err)
			}
		})
	}
}

func TestRetrievalSettings_Validate_WeightDrift(t *testing.T) {
	// 0.1*3 style float drift must not fail validation
	s := DefaultRetrievalSettings("proj-123")
	s.VectorWeight = 0.1 + 0.2 + 0.3
	s.KeywordWeight = 0.4
	if err := s.Validate(); err != nil {
		t.Errorf("expected float drift within tolerance to pass, got %v", err)
	}
}

package domain

import (
	"fmt"
	"math"
	"time"
)

// RAGStrategy selects how retrieved context is assembled
type RAGStrategy string

const (
	RAGStrategyBasic   RAGStrategy = "basic"
	RAGStrategyAgentic RAGStrategy = "agentic"
)

// RetrievalSettings holds per-project retrieval configuration.
// Exactly one record exists per project, created alongside the project.
type RetrievalSettings struct {
	ProjectID string `json:"project_id"`

	// Embedding / reranking models
	EmbeddingModel string `json:"embedding_model"`
	RerankingModel string `json:"reranking_model"`

	// Strategy
	RAGStrategy RAGStrategy `json:"rag_strategy"`
	AgentType   string      `json:"agent_type"`

	// Retrieval shaping
	ChunksPerSearch     int     `json:"chunks_per_search"`
	FinalContextSize    int     `json:"final_context_size"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
	NumberOfQueries     int     `json:"number_of_queries"`
	RerankingEnabled    bool    `json:"reranking_enabled"`

	// Hybrid scoring weights; must sum to 1.0
	VectorWeight  float64 `json:"vector_weight"`
	KeywordWeight float64 `json:"keyword_weight"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultRetrievalSettings returns the settings a new project starts with
func DefaultRetrievalSettings(projectID string) *RetrievalSettings {
	return &RetrievalSettings{
		ProjectID:           projectID,
		EmbeddingModel:      "text-embedding-large",
		RerankingModel:      "rerank-engine-v3.0",
		RAGStrategy:         RAGStrategyBasic,
		AgentType:           "agentic",
		ChunksPerSearch:     10,
		FinalContextSize:    5,
		SimilarityThreshold: 0.3,
		NumberOfQueries:     5,
		RerankingEnabled:    true,
		VectorWeight:        0.7,
		KeywordWeight:       0.3,
		UpdatedAt:           time.Now(),
	}
}

// weightSumTolerance absorbs float drift when checking VectorWeight + KeywordWeight
const weightSumTolerance = 1e-9

// Validate checks settings invariants. It is applied at write time only;
// a stored record that predates validation is used as-is rather than
// silently replaced with defaults.
func (s *RetrievalSettings) Validate() error {
	if s.ProjectID == "" {
		return fmt.Errorf("%w: project id is required", ErrInvalidSettings)
	}
	if s.ChunksPerSearch <= 0 {
		return fmt.Errorf("%w: chunks_per_search must be positive", ErrInvalidSettings)
	}
	if s.FinalContextSize <= 0 {
		return fmt.Errorf("%w: final_context_size must be positive", ErrInvalidSettings)
	}
	if s.NumberOfQueries <= 0 {
		return fmt.Errorf("%w: number_of_queries must be positive", ErrInvalidSettings)
	}
	if s.SimilarityThreshold < 0 || s.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold must be within [0,1]", ErrInvalidSettings)
	}
	if s.VectorWeight < 0 || s.KeywordWeight < 0 {
		return fmt.Errorf("%w: scoring weights must be non-negative", ErrInvalidSettings)
	}
	if math.Abs(s.VectorWeight+s.KeywordWeight-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: vector_weight and keyword_weight must sum to 1.0", ErrInvalidSettings)
	}
	return nil
}

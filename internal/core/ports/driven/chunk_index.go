package driven

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// ChunkIndex is the vector-search collaborator. Similarity computation
// happens inside the index; this port only shapes requests (scope,
// threshold, limit) and consumes ranked results.
type ChunkIndex interface {
	// Index stores embedded chunks for later retrieval
	Index(ctx context.Context, chunks []*domain.EmbeddedChunk) error

	// Search returns chunks ranked by descending similarity, filtered
	// to the given document scope and similarity threshold, truncated
	// to limit. An empty document scope yields no results.
	Search(ctx context.Context, embedding []float32, documentIDs []string, threshold float64, limit int) ([]*domain.DocumentChunk, error)

	// DeleteByDocument removes all indexed chunks for a document
	DeleteByDocument(ctx context.Context, documentID string) error

	// HealthCheck verifies the index is reachable
	HealthCheck(ctx context.Context) error
}

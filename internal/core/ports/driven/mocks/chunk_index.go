package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockChunkIndex implements ChunkIndex
var _ driven.ChunkIndex = (*MockChunkIndex)(nil)

// MockChunkIndex is a mock implementation of ChunkIndex for testing.
// Preloaded chunks are matched by document scope and similarity
// threshold, ranked descending, and truncated like the real index.
type MockChunkIndex struct {
	mu       sync.RWMutex
	chunks   []*domain.DocumentChunk
	indexed  map[string][]*domain.EmbeddedChunk // by document ID
	failNext bool

	// LastScope, LastThreshold, LastLimit record the most recent Search
	LastScope     []string
	LastThreshold float64
	LastLimit     int
}

// NewMockChunkIndex creates a new MockChunkIndex
func NewMockChunkIndex() *MockChunkIndex {
	return &MockChunkIndex{
		indexed: make(map[string][]*domain.EmbeddedChunk),
	}
}

// AddChunk preloads a searchable chunk
func (m *MockChunkIndex) AddChunk(chunk *domain.DocumentChunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunks = append(m.chunks, chunk)
}

// SetFailNext makes the next Search call return an error
func (m *MockChunkIndex) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockChunkIndex) Index(ctx context.Context, chunks []*domain.EmbeddedChunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, chunk := range chunks {
		m.indexed[chunk.DocumentID] = append(m.indexed[chunk.DocumentID], chunk)
	}
	return nil
}

// IndexedByDocument returns chunks indexed for a document
func (m *MockChunkIndex) IndexedByDocument(documentID string) []*domain.EmbeddedChunk {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexed[documentID]
}

func (m *MockChunkIndex) Search(ctx context.Context, embedding []float32, documentIDs []string, threshold float64, limit int) ([]*domain.DocumentChunk, error) {
	m.mu.Lock()
	m.LastScope = documentIDs
	m.LastThreshold = threshold
	m.LastLimit = limit
	fail := m.failNext
	m.failNext = false
	m.mu.Unlock()

	if fail {
		return nil, context.DeadlineExceeded
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	scope := make(map[string]bool, len(documentIDs))
	for _, id := range documentIDs {
		scope[id] = true
	}

	var results []*domain.DocumentChunk
	for _, chunk := range m.chunks {
		if !scope[chunk.DocumentID] {
			continue
		}
		if chunk.Similarity < threshold {
			continue
		}
		results = append(results, chunk)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (m *MockChunkIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.indexed, documentID)
	filtered := m.chunks[:0]
	for _, chunk := range m.chunks {
		if chunk.DocumentID != documentID {
			filtered = append(filtered, chunk)
		}
	}
	m.chunks = filtered
	return nil
}

func (m *MockChunkIndex) HealthCheck(ctx context.Context) error {
	return nil
}

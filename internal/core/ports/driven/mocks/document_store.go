package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockProjectDocumentStore implements ProjectDocumentStore
var _ driven.ProjectDocumentStore = (*MockProjectDocumentStore)(nil)

// MockProjectDocumentStore is a mock implementation of
// ProjectDocumentStore for testing. ResolveFilenames invocations are
// counted so tests can assert the batching invariant.
type MockProjectDocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*domain.ProjectDocument

	// ResolveCalls counts ResolveFilenames invocations
	ResolveCalls int
	// LastResolvedIDs records the id set of the most recent lookup
	LastResolvedIDs []string
	// OmitFromResolve lists IDs ResolveFilenames leaves out of its
	// result, simulating metadata lagging behind the chunk index
	OmitFromResolve map[string]bool
}

// NewMockProjectDocumentStore creates a new MockProjectDocumentStore
func NewMockProjectDocumentStore() *MockProjectDocumentStore {
	return &MockProjectDocumentStore{
		documents: make(map[string]*domain.ProjectDocument),
	}
}

func (m *MockProjectDocumentStore) Save(ctx context.Context, doc *domain.ProjectDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.documents[doc.ID] = doc
	return nil
}

func (m *MockProjectDocumentStore) Get(ctx context.Context, id string) (*domain.ProjectDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (m *MockProjectDocumentStore) GetByStorageKey(ctx context.Context, projectID, storageKey string) (*domain.ProjectDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, doc := range m.documents {
		if doc.ProjectID == projectID && doc.StorageKey == storageKey {
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockProjectDocumentStore) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var docs []*domain.ProjectDocument
	for _, doc := range m.documents {
		if doc.ProjectID == projectID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (m *MockProjectDocumentStore) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	docs, err := m.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.ProcessingStatus != domain.StatusReady {
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}

func (m *MockProjectDocumentStore) ResolveFilenames(ctx context.Context, ids []string) (map[string]string, error) {
	m.mu.Lock()
	m.ResolveCalls++
	m.LastResolvedIDs = append([]string(nil), ids...)
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make(map[string]string, len(ids))
	for _, id := range ids {
		if m.OmitFromResolve[id] {
			continue
		}
		if doc, ok := m.documents[id]; ok {
			result[id] = doc.Filename
		}
	}
	return result, nil
}

func (m *MockProjectDocumentStore) UpdateStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.documents[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.ProcessingStatus = status
	return nil
}

func (m *MockProjectDocumentStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.documents, id)
	return nil
}

package mocks

import (
	"context"
	"sync"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockRetrievalSettingsStore implements RetrievalSettingsStore
var _ driven.RetrievalSettingsStore = (*MockRetrievalSettingsStore)(nil)

// MockRetrievalSettingsStore is a mock implementation of
// RetrievalSettingsStore for testing
type MockRetrievalSettingsStore struct {
	mu       sync.RWMutex
	settings map[string]*domain.RetrievalSettings

	// FailSave makes Save return an error (for rollback tests)
	FailSave bool
}

// NewMockRetrievalSettingsStore creates a new MockRetrievalSettingsStore
func NewMockRetrievalSettingsStore() *MockRetrievalSettingsStore {
	return &MockRetrievalSettingsStore{
		settings: make(map[string]*domain.RetrievalSettings),
	}
}

func (m *MockRetrievalSettingsStore) GetByProject(ctx context.Context, projectID string) (*domain.RetrievalSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[projectID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *MockRetrievalSettingsStore) Save(ctx context.Context, settings *domain.RetrievalSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave {
		return context.DeadlineExceeded
	}
	m.settings[settings.ProjectID] = settings
	return nil
}

func (m *MockRetrievalSettingsStore) Delete(ctx context.Context, projectID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.settings, projectID)
	return nil
}

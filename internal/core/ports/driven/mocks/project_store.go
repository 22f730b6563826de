package mocks

import (
	"context"
	"sync"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockProjectStore implements ProjectStore
var _ driven.ProjectStore = (*MockProjectStore)(nil)

// MockProjectStore is a mock implementation of ProjectStore for testing
type MockProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project

	// FailSave makes Save return an error (for rollback tests)
	FailSave bool
}

// NewMockProjectStore creates a new MockProjectStore
func NewMockProjectStore() *MockProjectStore {
	return &MockProjectStore{
		projects: make(map[string]*domain.Project),
	}
}

func (m *MockProjectStore) Save(ctx context.Context, project *domain.Project) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave {
		return context.DeadlineExceeded
	}
	m.projects[project.ID] = project
	return nil
}

func (m *MockProjectStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *MockProjectStore) ListByUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var projects []*domain.Project
	for _, p := range m.projects {
		if p.UserID == userID {
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (m *MockProjectStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

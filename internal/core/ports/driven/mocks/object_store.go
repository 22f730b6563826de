package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockObjectStore implements ObjectStore
var _ driven.ObjectStore = (*MockObjectStore)(nil)

// MockObjectStore is a mock implementation of ObjectStore for testing
type MockObjectStore struct {
	mu sync.Mutex

	// PresignedKeys records keys passed to PresignPut
	PresignedKeys []string
	// DeletedKeys records keys passed to Delete
	DeletedKeys []string
	// FailDelete makes Delete return an error
	FailDelete bool
}

// NewMockObjectStore creates a new MockObjectStore
func NewMockObjectStore() *MockObjectStore {
	return &MockObjectStore{}
}

func (m *MockObjectStore) PresignPut(key, contentType string, expiry time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PresignedKeys = append(m.PresignedKeys, key)
	return "https://bucket.example.com/" + key + "?signed=put", nil
}

func (m *MockObjectStore) PresignGet(key string, expiry time.Duration) (string, error) {
	return "https://bucket.example.com/" + key + "?signed=get", nil
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailDelete {
		return context.DeadlineExceeded
	}
	m.DeletedKeys = append(m.DeletedKeys, key)
	return nil
}

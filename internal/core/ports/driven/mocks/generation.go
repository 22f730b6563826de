package mocks

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Ensure MockGenerationService implements GenerationService
var _ driven.GenerationService = (*MockGenerationService)(nil)

// MockGenerationService is a mock implementation of GenerationService
// for testing. It records the last payload so tests can assert on the
// composed request shape.
type MockGenerationService struct {
	response string
	failNext bool

	// LastPayload is the payload passed to the most recent Generate call
	LastPayload *domain.GenerationPayload

	// Calls counts Generate invocations
	Calls int
}

// NewMockGenerationService creates a new MockGenerationService
func NewMockGenerationService() *MockGenerationService {
	return &MockGenerationService{
		response: "mock answer",
	}
}

// SetResponse configures the answer returned by Generate
func (m *MockGenerationService) SetResponse(response string) {
	m.response = response
}

// SetFailNext makes the next Generate call return an error
func (m *MockGenerationService) SetFailNext(fail bool) {
	m.failNext = fail
}

func (m *MockGenerationService) Generate(ctx context.Context, payload *domain.GenerationPayload) (string, error) {
	m.Calls++
	m.LastPayload = payload
	if m.failNext {
		m.failNext = false
		return "", context.DeadlineExceeded
	}
	return m.response, nil
}

func (m *MockGenerationService) Model() string {
	return "mock-generation-model"
}

func (m *MockGenerationService) Ping(ctx context.Context) error {
	return nil
}

func (m *MockGenerationService) Close() error {
	return nil
}

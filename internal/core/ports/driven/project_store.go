package driven

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// ProjectStore handles project persistence (PostgreSQL)
type ProjectStore interface {
	// Save creates or updates a project
	Save(ctx context.Context, project *domain.Project) error

	// Get retrieves a project by ID
	Get(ctx context.Context, id string) (*domain.Project, error)

	// ListByUser retrieves all projects owned by a user
	ListByUser(ctx context.Context, userID string) ([]*domain.Project, error)

	// Delete deletes a project
	Delete(ctx context.Context, id string) error
}

package driving

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// CreateProjectRequest represents a project creation request
type CreateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectService manages projects and their retrieval settings
type ProjectService interface {
	// Create creates a project together with its default retrieval
	// settings. If the settings record cannot be created the project is
	// rolled back; every project has exactly one settings record.
	Create(ctx context.Context, userID string, req CreateProjectRequest) (*domain.Project, error)

	// Get retrieves a project by ID
	Get(ctx context.Context, userID, projectID string) (*domain.Project, error)

	// List retrieves all projects owned by a user
	List(ctx context.Context, userID string) ([]*domain.Project, error)

	// Delete deletes a project the user owns
	Delete(ctx context.Context, userID, projectID string) (*domain.Project, error)
}

package driven

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// RetrievalSettingsStore persists per-project retrieval settings
type RetrievalSettingsStore interface {
	// GetByProject retrieves the settings record for a project.
	// Returns domain.ErrNotFound if no record exists.
	GetByProject(ctx context.Context, projectID string) (*domain.RetrievalSettings, error)

	// Save creates or updates the settings record for a project
	Save(ctx context.Context, settings *domain.RetrievalSettings) error

	// Delete removes the settings record for a project
	Delete(ctx context.Context, projectID string) error
}

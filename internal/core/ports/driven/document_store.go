package driven

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// ProjectDocumentStore handles document metadata persistence (PostgreSQL)
type ProjectDocumentStore interface {
	// Save creates or updates a document record
	Save(ctx context.Context, doc *domain.ProjectDocument) error

	// Get retrieves a document by ID
	Get(ctx context.Context, id string) (*domain.ProjectDocument, error)

	// GetByStorageKey retrieves a document by its object storage key
	GetByStorageKey(ctx context.Context, projectID, storageKey string) (*domain.ProjectDocument, error)

	// ListByProject retrieves all documents for a project, newest first
	ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectDocument, error)

	// ListIDsByProject returns the IDs of a project's ready documents;
	// documents still processing or failed are out of retrieval scope.
	// An empty result is valid and means nothing is retrievable yet.
	ListIDsByProject(ctx context.Context, projectID string) ([]string, error)

	// ResolveFilenames resolves a set of document IDs to filenames in a
	// single batched lookup. IDs unknown to the store are omitted from
	// the result rather than reported as errors.
	ResolveFilenames(ctx context.Context, ids []string) (map[string]string, error)

	// UpdateStatus transitions a document's processing status
	UpdateStatus(ctx context.Context, id string, status domain.ProcessingStatus) error

	// Delete deletes a document record
	Delete(ctx context.Context, id string) error
}

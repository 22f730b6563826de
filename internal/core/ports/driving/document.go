package driving

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// UploadURLRequest asks for a presigned upload slot
type UploadURLRequest struct {
	Filename string `json:"filename"`
	FileType string `json:"file_type"`
	FileSize int64  `json:"file_size"`
}

// UploadURLResponse carries the presigned URL and the created record
type UploadURLResponse struct {
	UploadURL  string                  `json:"upload_url"`
	StorageKey string                  `json:"storage_key"`
	Document   *domain.ProjectDocument `json:"document"`
}

// DocumentService manages project documents
type DocumentService interface {
	// List retrieves a project's documents, newest first
	List(ctx context.Context, userID, projectID string) ([]*domain.ProjectDocument, error)

	// CreateUploadURL issues a presigned upload URL and records the
	// document with status "uploading"
	CreateUploadURL(ctx context.Context, userID, projectID string, req UploadURLRequest) (*UploadURLResponse, error)

	// ConfirmUpload transitions a document to "queued" after the client
	// finished uploading, and enqueues ingestion
	ConfirmUpload(ctx context.Context, userID, projectID, storageKey string) (*domain.ProjectDocument, error)

	// AddURL registers a web page as a project document and enqueues
	// ingestion. Scheme-less URLs are normalized to https.
	AddURL(ctx context.Context, userID, projectID, url string) (*domain.ProjectDocument, error)

	// Delete removes a document, its stored object (best-effort), and
	// its indexed chunks
	Delete(ctx context.Context, userID, projectID, documentID string) (*domain.ProjectDocument, error)
}

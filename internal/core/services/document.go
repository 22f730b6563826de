package services

import (
	"context"
	"strings"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
)

// uploadURLTTL is how long a presigned upload slot stays valid
const uploadURLTTL = 15 * time.Minute

// Ensure documentService implements DocumentService
var _ driving.DocumentService = (*documentService)(nil)

// documentService implements the DocumentService interface. Uploads go
// browser-to-bucket: the service only issues presigned URLs, tracks
// processing status, and enqueues ingestion once the client confirms.
type documentService struct {
	documentStore driven.ProjectDocumentStore
	projectStore  driven.ProjectStore
	objectStore   driven.ObjectStore
	chunkIndex    driven.ChunkIndex
	taskQueue     driven.TaskQueue
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentStore driven.ProjectDocumentStore,
	projectStore driven.ProjectStore,
	objectStore driven.ObjectStore,
	chunkIndex driven.ChunkIndex,
	taskQueue driven.TaskQueue,
) driving.DocumentService {
	return &documentService{
		documentStore: documentStore,
		projectStore:  projectStore,
		objectStore:   objectStore,
		chunkIndex:    chunkIndex,
		taskQueue:     taskQueue,
	}
}

// List retrieves a project's documents, newest first
func (s *documentService) List(ctx context.Context, userID, projectID string) ([]*domain.ProjectDocument, error) {
	if err := s.checkProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.documentStore.ListByProject(ctx, projectID)
}

// CreateUploadURL issues a presigned upload URL and records the
// document with status "uploading"
func (s *documentService) CreateUploadURL(ctx context.Context, userID, projectID string, req driving.UploadURLRequest) (*driving.UploadURLResponse, error) {
	if strings.TrimSpace(req.Filename) == "" || req.FileType == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.checkProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}

	docID := generateID()
	storageKey := "projects/" + projectID + "/documents/" + docID
	if ext := fileExtension(req.Filename); ext != "" {
		storageKey += "." + ext
	}

	uploadURL, err := s.objectStore.PresignPut(storageKey, req.FileType, uploadURLTTL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &domain.ProjectDocument{
		ID:               docID,
		ProjectID:        projectID,
		UserID:           userID,
		Filename:         strings.TrimSpace(req.Filename),
		FileType:         req.FileType,
		FileSize:         req.FileSize,
		StorageKey:       storageKey,
		SourceType:       domain.SourceTypeFile,
		ProcessingStatus: domain.StatusUploading,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, err
	}

	return &driving.UploadURLResponse{
		UploadURL:  uploadURL,
		StorageKey: storageKey,
		Document:   doc,
	}, nil
}

// ConfirmUpload transitions a document to "queued" once the client has
// finished uploading, and enqueues ingestion
func (s *documentService) ConfirmUpload(ctx context.Context, userID, projectID, storageKey string) (*domain.ProjectDocument, error) {
	if storageKey == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.checkProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}

	doc, err := s.documentStore.GetByStorageKey(ctx, projectID, storageKey)
	if err != nil {
		return nil, err
	}

	if err := s.documentStore.UpdateStatus(ctx, doc.ID, domain.StatusQueued); err != nil {
		return nil, err
	}
	doc.ProcessingStatus = domain.StatusQueued

	if err := s.enqueueIngestion(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// AddURL registers a web page as a project document and enqueues
// ingestion. Scheme-less URLs are normalized to https.
func (s *documentService) AddURL(ctx context.Context, userID, projectID, url string) (*domain.ProjectDocument, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.checkProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	now := time.Now()
	doc := &domain.ProjectDocument{
		ID:               generateID(),
		ProjectID:        projectID,
		UserID:           userID,
		Filename:         url,
		FileType:         "text/html",
		SourceType:       domain.SourceTypeURL,
		SourceURL:        url,
		ProcessingStatus: domain.StatusQueued,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.documentStore.Save(ctx, doc); err != nil {
		return nil, err
	}

	if err := s.enqueueIngestion(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes a document record, its indexed chunks, and its stored
// object. The object delete is best-effort: a dangling object is
// preferable to a document row that cannot be removed.
func (s *documentService) Delete(ctx context.Context, userID, projectID, documentID string) (*domain.ProjectDocument, error) {
	if err := s.checkProjectAccess(ctx, userID, projectID); err != nil {
		return nil, err
	}

	doc, err := s.documentStore.Get(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.ProjectID != projectID {
		return nil, domain.ErrNotFound
	}

	if doc.StorageKey != "" {
		_ = s.objectStore.Delete(ctx, doc.StorageKey)
	}

	if err := s.chunkIndex.DeleteByDocument(ctx, documentID); err != nil {
		return nil, err
	}

	if err := s.documentStore.Delete(ctx, documentID); err != nil {
		return nil, err
	}

	return doc, nil
}

// checkProjectAccess verifies the project exists and is owned by the user
func (s *documentService) checkProjectAccess(ctx context.Context, userID, projectID string) error {
	project, err := s.projectStore.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return domain.ErrForbidden
	}
	return nil
}

func (s *documentService) enqueueIngestion(ctx context.Context, doc *domain.ProjectDocument) error {
	task := domain.NewIngestTask(doc.ProjectID, doc.ID)
	return s.taskQueue.Enqueue(ctx, task)
}

func fileExtension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return filename[i+1:]
	}
	return ""
}

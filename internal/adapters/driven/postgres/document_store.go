package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ProjectDocumentStore = (*DocumentStore)(nil)

// DocumentStore implements driven.ProjectDocumentStore using PostgreSQL
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a new DocumentStore
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

const documentColumns = `id, project_id, user_id, filename, file_type, file_size,
	   storage_key, source_type, source_url, processing_status, created_at, updated_at`

// Save creates or updates a document record
func (s *DocumentStore) Save(ctx context.Context, doc *domain.ProjectDocument) error {
	query := `
		INSERT INTO documents (id, project_id, user_id, filename, file_type, file_size,
							   storage_key, source_type, source_url, processing_status,
							   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			filename = EXCLUDED.filename,
			file_type = EXCLUDED.file_type,
			file_size = EXCLUDED.file_size,
			storage_key = EXCLUDED.storage_key,
			source_url = EXCLUDED.source_url,
			processing_status = EXCLUDED.processing_status,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.ID,
		doc.ProjectID,
		doc.UserID,
		doc.Filename,
		doc.FileType,
		doc.FileSize,
		doc.StorageKey,
		string(doc.SourceType),
		doc.SourceURL,
		string(doc.ProcessingStatus),
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return err
}

// Get retrieves a document by ID
func (s *DocumentStore) Get(ctx context.Context, id string) (*domain.ProjectDocument, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
	return scanDocument(row)
}

// GetByStorageKey retrieves a document by its object storage key
func (s *DocumentStore) GetByStorageKey(ctx context.Context, projectID, storageKey string) (*domain.ProjectDocument, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE project_id = $1 AND storage_key = $2`,
		projectID, storageKey)
	return scanDocument(row)
}

// ListByProject retrieves all documents for a project, newest first
func (s *DocumentStore) ListByProject(ctx context.Context, projectID string) ([]*domain.ProjectDocument, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents
		WHERE project_id = $1
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*domain.ProjectDocument
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return docs, rows.Err()
}

// ListIDsByProject returns the IDs of a project's ready documents.
// Non-ready documents are excluded so stale chunks left by a failed
// re-ingestion never enter retrieval scope.
func (s *DocumentStore) ListIDsByProject(ctx context.Context, projectID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE project_id = $1 AND processing_status = $2`,
		projectID, string(domain.StatusReady))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ResolveFilenames resolves a set of document IDs to filenames in one
// batched query. Unknown IDs are simply absent from the result.
func (s *DocumentStore) ResolveFilenames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename FROM documents WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string, len(ids))
	for rows.Next() {
		var id, filename string
		if err := rows.Scan(&id, &filename); err != nil {
			return nil, err
		}
		result[id] = filename
	}

	return result, rows.Err()
}

// UpdateStatus transitions a document's processing status
func (s *DocumentStore) UpdateStatus(ctx context.Context, id string, status domain.ProcessingStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE documents SET processing_status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete deletes a document record
func (s *DocumentStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*domain.ProjectDocument, error) {
	var doc domain.ProjectDocument
	var sourceType, status string

	err := row.Scan(
		&doc.ID,
		&doc.ProjectID,
		&doc.UserID,
		&doc.Filename,
		&doc.FileType,
		&doc.FileSize,
		&doc.StorageKey,
		&sourceType,
		&doc.SourceURL,
		&status,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	doc.SourceType = domain.SourceType(sourceType)
	doc.ProcessingStatus = domain.ProcessingStatus(status)
	return &doc, nil
}

package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ChunkIndex = (*ChunkIndex)(nil)

// ChunkIndex implements driven.ChunkIndex on PostgreSQL with the
// pgvector extension. Similarity is cosine: 1 - (embedding <=> query).
type ChunkIndex struct {
	db *DB
}

// NewChunkIndex creates a new ChunkIndex
func NewChunkIndex(db *DB) *ChunkIndex {
	return &ChunkIndex{db: db}
}

// Index stores embedded chunks for later retrieval
func (s *ChunkIndex) Index(ctx context.Context, chunks []*domain.EmbeddedChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO document_chunks (id, document_id, project_id, page_number,
										 content, images, tables, embedding, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8::vector, $9)
			ON CONFLICT (id) DO UPDATE SET
				content = EXCLUDED.content,
				images = EXCLUDED.images,
				tables = EXCLUDED.tables,
				embedding = EXCLUDED.embedding
		`

		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return err
		}
		defer stmt.Close()

		now := time.Now()
		for _, chunk := range chunks {
			images, err := json.Marshal(emptyIfNil(chunk.Content.Images))
			if err != nil {
				return err
			}
			tables, err := json.Marshal(emptyIfNil(chunk.Content.Tables))
			if err != nil {
				return err
			}

			_, err = stmt.ExecContext(ctx,
				chunk.ID,
				chunk.DocumentID,
				chunk.ProjectID,
				chunk.PageNumber,
				chunk.Content.Text,
				images,
				tables,
				vectorLiteral(chunk.Embedding),
				now,
			)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// Search returns chunks ranked by descending cosine similarity,
// filtered to the document scope and threshold, truncated to limit
func (s *ChunkIndex) Search(ctx context.Context, embedding []float32, documentIDs []string, threshold float64, limit int) ([]*domain.DocumentChunk, error) {
	if len(documentIDs) == 0 || limit <= 0 {
		return nil, nil
	}

	query := `
		SELECT id, document_id, page_number, content, images, tables,
			   1 - (embedding <=> $1::vector) AS similarity
		FROM document_chunks
		WHERE document_id = ANY($2)
		  AND 1 - (embedding <=> $1::vector) >= $3
		ORDER BY embedding <=> $1::vector
		LIMIT $4
	`

	rows, err := s.db.QueryContext(ctx, query,
		vectorLiteral(embedding), pq.Array(documentIDs), threshold, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []*domain.DocumentChunk
	for rows.Next() {
		var chunk domain.DocumentChunk
		var images, tables []byte

		err := rows.Scan(
			&chunk.ID,
			&chunk.DocumentID,
			&chunk.PageNumber,
			&chunk.Content.Text,
			&images,
			&tables,
			&chunk.Similarity,
		)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal(images, &chunk.Content.Images); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(tables, &chunk.Content.Tables); err != nil {
			return nil, err
		}

		chunks = append(chunks, &chunk)
	}

	return chunks, rows.Err()
}

// DeleteByDocument removes all indexed chunks for a document
func (s *ChunkIndex) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM document_chunks WHERE document_id = $1`, documentID)
	return err
}

// HealthCheck verifies the index is reachable
func (s *ChunkIndex) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// vectorLiteral renders an embedding in pgvector's input format
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.Grow(len(v)*10 + 2)
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

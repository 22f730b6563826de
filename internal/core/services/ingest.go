package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/normalisers"
	"github.com/cognidocs/cognidocs-core/internal/postprocessors"
	"github.com/cognidocs/cognidocs-core/internal/runtime"
)

const (
	// defaultChunkSize / defaultChunkOverlap are in characters. Chunks
	// break on the nearest whitespace or sentence boundary near the
	// limit so embeddings are not fed mid-word fragments.
	defaultChunkSize    = 2000
	defaultChunkOverlap = 200

	// embedBatchSize bounds one Embed call during ingestion
	embedBatchSize = 32

	// maxFetchBytes caps how much of a source document is read
	maxFetchBytes = 32 << 20 // 32 MiB

	fetchURLTTL = 10 * time.Minute
)

// Ingestor turns a stored or linked document into indexed, embedded
// chunks. It is driven by the background worker, one task per document.
type Ingestor struct {
	documentStore driven.ProjectDocumentStore
	objectStore   driven.ObjectStore
	chunkIndex    driven.ChunkIndex
	services      *runtime.Services
	httpClient    *http.Client
	logger        *slog.Logger

	normalisers *normalisers.Registry
	pipeline    *postprocessors.Pipeline
}

// IngestorConfig holds configuration for the Ingestor
type IngestorConfig struct {
	DocumentStore driven.ProjectDocumentStore
	ObjectStore   driven.ObjectStore
	ChunkIndex    driven.ChunkIndex
	Services      *runtime.Services
	HTTPClient    *http.Client
	Logger        *slog.Logger

	// Normalisers and Pipeline default to the standard registry and
	// chunking pipeline when nil
	Normalisers  *normalisers.Registry
	Pipeline     *postprocessors.Pipeline
	ChunkSize    int
	ChunkOverlap int
}

// NewIngestor creates a new Ingestor
func NewIngestor(cfg IngestorConfig) *Ingestor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	registry := cfg.Normalisers
	if registry == nil {
		registry = normalisers.DefaultRegistry()
	}
	pipeline := cfg.Pipeline
	if pipeline == nil {
		chunkSize := cfg.ChunkSize
		if chunkSize <= 0 {
			chunkSize = defaultChunkSize
		}
		chunkOverlap := cfg.ChunkOverlap
		if chunkOverlap < 0 || chunkOverlap >= chunkSize {
			chunkOverlap = defaultChunkOverlap
		}
		pipeline = postprocessors.DefaultPipeline(postprocessors.ChunkConfig{
			MaxChunkSize:       chunkSize,
			Overlap:            chunkOverlap,
			PreserveSentences:  true,
			PreserveParagraphs: true,
		})
	}

	return &Ingestor{
		documentStore: cfg.DocumentStore,
		objectStore:   cfg.ObjectStore,
		chunkIndex:    cfg.ChunkIndex,
		services:      cfg.Services,
		httpClient:    httpClient,
		logger:        logger,
		normalisers:   registry,
		pipeline:      pipeline,
	}
}

// IngestDocument fetches, chunks, embeds, and indexes one document.
// The document status tracks the outcome: processing while running,
// ready on success, failed on error.
func (g *Ingestor) IngestDocument(ctx context.Context, projectID, documentID string) error {
	doc, err := g.documentStore.Get(ctx, documentID)
	if err != nil {
		return err
	}
	if doc.ProjectID != projectID {
		return domain.ErrNotFound
	}

	if err := g.documentStore.UpdateStatus(ctx, documentID, domain.StatusProcessing); err != nil {
		return err
	}

	if err := g.ingest(ctx, doc); err != nil {
		if statusErr := g.documentStore.UpdateStatus(ctx, documentID, domain.StatusFailed); statusErr != nil {
			g.logger.Error("failed to mark document failed",
				"document_id", documentID,
				"error", statusErr,
			)
		}
		return err
	}

	return g.documentStore.UpdateStatus(ctx, documentID, domain.StatusReady)
}

func (g *Ingestor) ingest(ctx context.Context, doc *domain.ProjectDocument) error {
	raw, mimeType, err := g.fetchContent(ctx, doc)
	if err != nil {
		return err
	}

	text := raw
	if n := g.normalisers.Get(mimeType); n != nil {
		text = n.Normalise(raw)
	}

	chunks := g.pipeline.Process(text)
	if len(chunks) == 0 {
		g.logger.Warn("document produced no chunks",
			"document_id", doc.ID,
			"filename", doc.Filename,
		)
		return nil
	}

	embedder := g.services.EmbeddingService()
	if embedder == nil {
		return domain.ErrServiceUnavailable
	}

	embedded := make([]*domain.EmbeddedChunk, 0, len(chunks))
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := min(start+embedBatchSize, len(chunks))
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		vectors, err := embedder.Embed(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: chunk embedding: %v", domain.ErrUpstream, err)
		}
		if len(vectors) != len(batch) {
			return fmt.Errorf("%w: embedding count mismatch: got %d for %d chunks", domain.ErrUpstream, len(vectors), len(batch))
		}

		for i, vector := range vectors {
			embedded = append(embedded, &domain.EmbeddedChunk{
				ID:         generateID(),
				DocumentID: doc.ID,
				ProjectID:  doc.ProjectID,
				Content:    domain.ChunkContent{Text: batch[i].Content},
				Embedding:  vector,
			})
		}
	}

	// Re-ingestion replaces, never duplicates
	if err := g.chunkIndex.DeleteByDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("%w: clearing stale chunks: %v", domain.ErrUpstream, err)
	}
	if err := g.chunkIndex.Index(ctx, embedded); err != nil {
		return fmt.Errorf("%w: indexing chunks: %v", domain.ErrUpstream, err)
	}

	g.logger.Info("document ingested",
		"document_id", doc.ID,
		"filename", doc.Filename,
		"chunks", len(embedded),
	)

	return nil
}

// fetchContent retrieves the raw document content and its effective
// MIME type. Linked URLs are fetched directly; uploaded files come
// back out of object storage through a short-lived presigned URL.
func (g *Ingestor) fetchContent(ctx context.Context, doc *domain.ProjectDocument) (string, string, error) {
	var sourceURL string
	switch doc.SourceType {
	case domain.SourceTypeURL:
		sourceURL = doc.SourceURL
	default:
		signed, err := g.objectStore.PresignGet(doc.StorageKey, fetchURLTTL)
		if err != nil {
			return "", "", err
		}
		sourceURL = signed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", "", err
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("%w: fetching document: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("%w: fetching document: status %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return "", "", fmt.Errorf("%w: reading document: %v", domain.ErrUpstream, err)
	}

	// The stored file type wins; for linked URLs fall back to the
	// response header
	mimeType := doc.FileType
	if mimeType == "" {
		mimeType = resp.Header.Get("Content-Type")
	}
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	return string(body), mimeType, nil
}

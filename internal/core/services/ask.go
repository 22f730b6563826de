package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/cognidocs/cognidocs-core/internal/core/ports/driving"
	"github.com/cognidocs/cognidocs-core/internal/runtime"
)

// Ensure askService implements AskService
var _ driving.AskService = (*askService)(nil)

// askService implements the AskService interface. It runs the full
// retrieval-to-answer pipeline for one question: resolve settings and
// document scope, retrieve ranked chunks, partition the context and
// resolve citations, build the grounded prompt, invoke generation, and
// pair the answer with its citations.
type askService struct {
	projectStore  driven.ProjectStore
	settingsStore driven.RetrievalSettingsStore
	documentStore driven.ProjectDocumentStore
	chunkIndex    driven.ChunkIndex
	chatStore     driven.ChatStore
	services      *runtime.Services // AI collaborators
}

// NewAskService creates a new AskService.
// AI services (embedding, generation) are accessed via runtime.Services.
func NewAskService(
	projectStore driven.ProjectStore,
	settingsStore driven.RetrievalSettingsStore,
	documentStore driven.ProjectDocumentStore,
	chunkIndex driven.ChunkIndex,
	chatStore driven.ChatStore,
	services *runtime.Services,
) driving.AskService {
	return &askService{
		projectStore:  projectStore,
		settingsStore: settingsStore,
		documentStore: documentStore,
		chunkIndex:    chunkIndex,
		chatStore:     chatStore,
		services:      services,
	}
}

// Ask answers a question from the project's retrieved context
func (s *askService) Ask(ctx context.Context, req driving.AskRequest) (*domain.AnswerRecord, error) {
	question := strings.TrimSpace(req.Question)
	if req.ProjectID == "" || question == "" {
		return nil, domain.ErrInvalidInput
	}

	// Retrieval reads another user's documents if this check is skipped,
	// so ownership is verified before any store access.
	project, err := s.projectStore.Get(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != req.UserID {
		return nil, domain.ErrForbidden
	}

	// A chat from a different project must not receive this project's
	// answers. Checked up front so a bad chat ID fails before retrieval.
	if req.ChatID != "" {
		chat, err := s.chatStore.GetChat(ctx, req.ChatID)
		if err != nil {
			return nil, err
		}
		if chat.ProjectID != req.ProjectID {
			return nil, domain.ErrForbidden
		}
	}

	settings, err := s.settingsStore.GetByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	docIDs, err := s.documentStore.ListIDsByProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	chunks, err := s.retrieve(ctx, question, docIDs, settings)
	if err != nil {
		return nil, err
	}

	// Partitioning and citation resolution read the same immutable
	// chunk slice and nothing else, so they run side by side.
	var (
		wg        sync.WaitGroup
		parts     domain.PartitionedContext
		citations []*domain.Citation
		citeErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		parts = domain.PartitionChunks(chunks)
	}()
	go func() {
		defer wg.Done()
		citations, citeErr = s.resolveCitations(ctx, chunks)
	}()
	wg.Wait()
	if citeErr != nil {
		return nil, citeErr
	}

	// Zero candidates still goes to generation: the prompt without
	// context sections steers the model to the refusal sentence.
	prompt := domain.BuildGroundedPrompt(parts.Texts, parts.Tables, len(parts.Images))
	payload := domain.ComposePayload(prompt.InstructionBlock, question, parts.Images)

	generator := s.services.GenerationService()
	if generator == nil {
		return nil, domain.ErrServiceUnavailable
	}

	content, err := generator.Generate(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: generation: %v", domain.ErrUpstream, err)
	}

	answer := domain.NewAnswerRecord(content, citations)

	if req.ChatID != "" {
		if err := s.persistTurn(ctx, req.ChatID, question, answer); err != nil {
			return nil, err
		}
	}

	return answer, nil
}

// retrieve embeds the question and searches the chunk index within the
// project's document scope. An empty scope short-circuits to zero
// candidates without calling the collaborators.
func (s *askService) retrieve(ctx context.Context, question string, docIDs []string, settings *domain.RetrievalSettings) ([]*domain.DocumentChunk, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}

	embedder := s.services.EmbeddingService()
	if embedder == nil {
		return nil, domain.ErrServiceUnavailable
	}

	embedding, err := embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: query embedding: %v", domain.ErrUpstream, err)
	}

	chunks, err := s.chunkIndex.Search(ctx, embedding, docIDs, settings.SimilarityThreshold, settings.ChunksPerSearch)
	if err != nil {
		return nil, fmt.Errorf("%w: vector search: %v", domain.ErrUpstream, err)
	}

	return chunks, nil
}

// resolveCitations builds one citation per chunk in chunk order. The
// filename lookup is a single batched call keyed by the unique set of
// document IDs across the chunk set; IDs the store does not know fall
// back to the sentinel filename rather than failing the request.
func (s *askService) resolveCitations(ctx context.Context, chunks []*domain.DocumentChunk) ([]*domain.Citation, error) {
	ids := domain.UniqueDocumentIDs(chunks)
	if len(ids) == 0 {
		return domain.BuildCitations(chunks, nil), nil
	}

	filenames, err := s.documentStore.ResolveFilenames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: filename resolution: %v", domain.ErrUpstream, err)
	}

	return domain.BuildCitations(chunks, filenames), nil
}

// persistTurn appends the question and the generated answer to the chat.
// Message listings order by created_at, so the answer must carry a later
// timestamp than its question even when the clock does not advance
// between the two saves.
func (s *askService) persistTurn(ctx context.Context, chatID, question string, answer *domain.AnswerRecord) error {
	askedAt := time.Now()

	userMsg := &domain.ChatMessage{
		ID:        generateID(),
		ChatID:    chatID,
		Role:      domain.RoleUser,
		Content:   question,
		CreatedAt: askedAt,
	}
	if err := s.chatStore.SaveMessage(ctx, userMsg); err != nil {
		return err
	}

	answeredAt := time.Now()
	if !answeredAt.After(askedAt) {
		answeredAt = askedAt.Add(time.Nanosecond)
	}

	assistantMsg := &domain.ChatMessage{
		ID:        generateID(),
		ChatID:    chatID,
		Role:      domain.RoleAssistant,
		Content:   answer.Content,
		Citations: answer.Citations,
		CreatedAt: answeredAt,
	}
	return s.chatStore.SaveMessage(ctx, assistantMsg)
}

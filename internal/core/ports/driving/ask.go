package driving

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// AskRequest is an incoming question scoped to a project chat. UserID
// is the authenticated caller, filled in by the transport layer and
// never taken from the request body.
type AskRequest struct {
	UserID    string `json:"-"`
	ProjectID string `json:"project_id"`
	ChatID    string `json:"chat_id"`
	Question  string `json:"question"`
}

// AskService runs the retrieval-to-answer pipeline for one question
type AskService interface {
	// Ask retrieves project context for the question, builds a grounded
	// prompt, invokes generation, and returns the answer paired with
	// its citations. An unknown project surfaces as domain.ErrNotFound,
	// a project owned by another user as domain.ErrForbidden, and
	// collaborator failures as domain.ErrUpstream.
	Ask(ctx context.Context, req AskRequest) (*domain.AnswerRecord, error)
}

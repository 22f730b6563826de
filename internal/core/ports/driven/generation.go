package driven

import (
	"context"

	"github.com/cognidocs/cognidocs-core/internal/core/domain"
)

// GenerationService executes the grounded completion call. The payload
// may be text-only or carry images; implementations must accept both
// shapes. Calls are synchronous and may block for the duration of model
// inference, so callers apply a request-level timeout via ctx.
type GenerationService interface {
	// Generate produces an answer for the composed payload
	Generate(ctx context.Context, payload *domain.GenerationPayload) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the generation service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the generation service
	Close() error
}

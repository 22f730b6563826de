package domain

import "sync"

// RuntimeConfig tracks which AI collaborators are available at runtime.
// Availability is determined at startup and updated when services are
// hot-swapped. Thread-safe for concurrent access.
type RuntimeConfig struct {
	mu sync.RWMutex

	// Static (set at startup, read-only)
	SessionBackend string // "redis" or "postgres"

	// Dynamic capability flags
	embeddingAvailable  bool
	generationAvailable bool
}

// NewRuntimeConfig creates a new RuntimeConfig with initial values
func NewRuntimeConfig(sessionBackend string) *RuntimeConfig {
	return &RuntimeConfig{
		SessionBackend: sessionBackend,
	}
}

// EmbeddingAvailable returns whether the embedding service is available
func (c *RuntimeConfig) EmbeddingAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable
}

// GenerationAvailable returns whether the generation service is available
func (c *RuntimeConfig) GenerationAvailable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generationAvailable
}

// SetEmbeddingAvailable updates the embedding availability flag
func (c *RuntimeConfig) SetEmbeddingAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.embeddingAvailable = available
}

// SetGenerationAvailable updates the generation availability flag
func (c *RuntimeConfig) SetGenerationAvailable(available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationAvailable = available
}

// CanAnswer returns true if the full retrieval-to-answer pipeline can
// run, which requires both embedding and generation collaborators
func (c *RuntimeConfig) CanAnswer() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.embeddingAvailable && c.generationAvailable
}

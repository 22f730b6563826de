package domain

// AIProvider identifies the AI/embedding provider
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderOllama AIProvider = "ollama"
)

// RequiresAPIKey returns true if this provider requires an API key
func (p AIProvider) RequiresAPIKey() bool {
	switch p {
	case AIProviderOllama:
		return false // Self-hosted, no API key needed
	default:
		return true
	}
}

// IsValid returns true if this is a known provider
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderOllama:
		return true
	default:
		return false
	}
}

// EmbeddingConfig configures the embedding collaborator. Built once at
// process start; the resulting client is reused across requests.
type EmbeddingConfig struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if embedding config is usable
func (c *EmbeddingConfig) IsConfigured() bool {
	if c.Provider == "" {
		return false
	}
	if c.Provider.RequiresAPIKey() && c.APIKey == "" {
		return false
	}
	return true
}

// GenerationConfig configures the generation collaborator
type GenerationConfig struct {
	Provider AIProvider `json:"provider"`
	Model    string     `json:"model"`
	APIKey   string     `json:"-"` // Never serialize
	BaseURL  string     `json:"base_url,omitempty"`
}

// IsConfigured returns true if generation config is usable
func (c *GenerationConfig) IsConfigured() bool {
	if c.Provider == "" {
		return false
	}
	if c.Provider.RequiresAPIKey() && c.APIKey == "" {
		return false
	}
	return true
}

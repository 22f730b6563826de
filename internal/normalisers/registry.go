package normalisers

import (
	"sort"
	"strings"
	"sync"
)

// Normaliser converts raw fetched document content into clean plain
// text ready for chunking. Implementations are selected by MIME type.
type Normaliser interface {
	// Normalise returns the cleaned plain-text form of content
	Normalise(content string) string

	// SupportedTypes returns the MIME types this normaliser handles.
	// Wildcards are allowed ("text/*", "*/*").
	SupportedTypes() []string

	// Priority breaks ties when multiple normalisers match a type.
	// Higher wins.
	Priority() int
}

// Registry selects normalisers by MIME type with priority-based
// tie-breaking.
type Registry struct {
	mu          sync.RWMutex
	normalisers []Normaliser
}

// NewRegistry creates a new normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make([]Normaliser, 0),
	}
}

// Register registers a normaliser.
func (r *Registry) Register(normaliser Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
}

// Get retrieves the best-matching normaliser for a MIME type.
// Returns nil if no normaliser is registered for the type.
func (r *Registry) Get(mimeType string) Normaliser {
	matches := r.GetAll(mimeType)
	if len(matches) == 0 {
		return nil
	}
	return matches[0] // Already sorted by priority (highest first)
}

// GetAll retrieves all normalisers that match a MIME type, sorted by
// priority (highest first).
func (r *Registry) GetAll(mimeType string) []Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Normaliser

	for _, n := range r.normalisers {
		if matchesMIMEType(n.SupportedTypes(), mimeType) {
			matches = append(matches, n)
		}
	}

	// Sort by priority (highest first)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})

	return matches
}

// List returns all registered MIME types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	typeSet := make(map[string]struct{})
	for _, n := range r.normalisers {
		for _, t := range n.SupportedTypes() {
			typeSet[t] = struct{}{}
		}
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// matchesMIMEType checks if any of the supported types match the given
// MIME type. Supports wildcard matching ("text/*" matches "text/plain").
func matchesMIMEType(supportedTypes []string, mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))

	// Strip charset and other parameters
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	for _, supported := range supportedTypes {
		supported = strings.ToLower(strings.TrimSpace(supported))

		if supported == mimeType {
			return true
		}

		// Wildcard match ("text/*" matches "text/plain")
		if strings.HasSuffix(supported, "/*") {
			prefix := supported[:len(supported)-1] // "text/"
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}

		if supported == "*/*" {
			return true
		}
	}

	return false
}

// DefaultRegistry creates a registry with common normalisers
// pre-registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&PlaintextNormaliser{})
	r.Register(&MarkdownNormaliser{})
	r.Register(&HTMLNormaliser{})

	return r
}

// PlaintextNormaliser handles plain text content. It is also the
// universal fallback for unrecognized types.
type PlaintextNormaliser struct{}

func (n *PlaintextNormaliser) Normalise(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	return strings.TrimSpace(content)
}

func (n *PlaintextNormaliser) SupportedTypes() []string {
	return []string{"text/plain", "*/*"}
}

func (n *PlaintextNormaliser) Priority() int {
	return 1 // Lowest priority - fallback
}

// MarkdownNormaliser handles Markdown content.
type MarkdownNormaliser struct{}

func (n *MarkdownNormaliser) Normalise(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// Remove excessive blank lines (more than 2 consecutive)
	for strings.Contains(content, "\n\n\n") {
		content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
	}

	return strings.TrimSpace(content)
}

func (n *MarkdownNormaliser) SupportedTypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

func (n *MarkdownNormaliser) Priority() int {
	return 50
}

// HTMLNormaliser extracts the visible text from an HTML page.
type HTMLNormaliser struct{}

func (n *HTMLNormaliser) Normalise(content string) string {
	return stripHTML(content)
}

func (n *HTMLNormaliser) SupportedTypes() []string {
	return []string{"text/html", "application/xhtml+xml"}
}

func (n *HTMLNormaliser) Priority() int {
	return 50
}

// stripHTML removes tags, scripts, and styles from an HTML page,
// leaving its visible text
func stripHTML(html string) string {
	var b strings.Builder
	b.Grow(len(html))

	inTag := false
	skipDepth := 0 // inside <script> or <style>
	i := 0
	for i < len(html) {
		c := html[i]
		switch {
		case c == '<':
			inTag = true
			rest := strings.ToLower(html[i:min(i+8, len(html))])
			if strings.HasPrefix(rest, "<script") || strings.HasPrefix(rest, "<style") {
				skipDepth++
			} else if strings.HasPrefix(rest, "</script") || strings.HasPrefix(rest, "</style") {
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case c == '>':
			if inTag {
				inTag = false
				b.WriteByte(' ')
			}
		case !inTag && skipDepth == 0:
			b.WriteByte(c)
		}
		i++
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

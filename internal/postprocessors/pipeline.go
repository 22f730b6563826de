package postprocessors

import (
	"sort"
	"strings"
	"sync"
)

// Chunk is one retrieval-unit fragment of normalised document text.
// Offsets index into the source text the pipeline was given.
type Chunk struct {
	Content     string
	Position    int
	StartOffset int
	EndOffset   int
}

// PostProcessor transforms a chunk list. The first processor in a
// pipeline is typically a Chunker that splits a single whole-document
// chunk.
type PostProcessor interface {
	Process(chunks []Chunk) []Chunk

	// Name identifies the processor in logs and listings
	Name() string

	// Order determines pipeline position. Lower runs first.
	Order() int
}

// Pipeline chains post-processors in Order() sequence, starting from
// the whole document as a single chunk.
type Pipeline struct {
	mu         sync.RWMutex
	processors []PostProcessor
	sorted     bool
}

// NewPipeline creates a new post-processor pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]PostProcessor, 0),
	}
}

// Add adds a processor to the pipeline.
func (p *Pipeline) Add(processor PostProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

// Process applies all processors in order. Input is the normalised
// document content; output is the chunks ready for embedding.
func (p *Pipeline) Process(content string) []Chunk {
	p.mu.Lock()
	if !p.sorted {
		sort.Slice(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}
	processors := make([]PostProcessor, len(p.processors))
	copy(processors, p.processors)
	p.mu.Unlock()

	chunks := []Chunk{
		{
			Content:     content,
			Position:    0,
			StartOffset: 0,
			EndOffset:   len(content),
		},
	}

	for _, proc := range processors {
		chunks = proc.Process(chunks)
	}

	return chunks
}

// List returns processor names in registration order.
func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}

// DefaultPipeline creates a pipeline with the default processors.
func DefaultPipeline(chunkConfig ChunkConfig) *Pipeline {
	p := NewPipeline()
	p.Add(NewChunker(chunkConfig))
	p.Add(NewWhitespaceNormalizer())
	p.Add(NewDeduplicator(DefaultDeduplicatorConfig()))
	return p
}

// ChunkConfig configures the chunker behavior.
type ChunkConfig struct {
	// MaxChunkSize is the maximum characters per chunk
	MaxChunkSize int

	// Overlap is the character overlap between chunks
	Overlap int

	// PreserveSentences tries to break at sentence boundaries
	PreserveSentences bool

	// PreserveParagraphs tries to break at paragraph boundaries
	PreserveParagraphs bool
}

// DefaultChunkConfig returns sensible defaults.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxChunkSize:       2000,
		Overlap:            200,
		PreserveSentences:  true,
		PreserveParagraphs: true,
	}
}

// Chunker splits content into overlapping chunks.
// This is the first processor in the pipeline (Order = 0).
type Chunker struct {
	config ChunkConfig
}

var _ PostProcessor = (*Chunker)(nil)

// NewChunker creates a new chunker with the given config.
func NewChunker(config ChunkConfig) *Chunker {
	if config.MaxChunkSize <= 0 {
		config.MaxChunkSize = DefaultChunkConfig().MaxChunkSize
	}
	if config.Overlap < 0 || config.Overlap >= config.MaxChunkSize {
		config.Overlap = DefaultChunkConfig().Overlap
	}
	return &Chunker{config: config}
}

// Process splits content into chunks.
func (c *Chunker) Process(chunks []Chunk) []Chunk {
	var result []Chunk
	position := 0

	for _, chunk := range chunks {
		newChunks := c.splitContent(chunk.Content, chunk.StartOffset, &position)
		result = append(result, newChunks...)
	}

	return result
}

func (c *Chunker) Name() string {
	return "chunker"
}

func (c *Chunker) Order() int {
	return 0
}

// splitContent splits content into overlapping chunks.
func (c *Chunker) splitContent(content string, baseOffset int, position *int) []Chunk {
	content = strings.TrimSpace(content)
	if len(content) == 0 {
		return nil
	}
	if len(content) <= c.config.MaxChunkSize {
		chunk := Chunk{
			Content:     content,
			Position:    *position,
			StartOffset: baseOffset,
			EndOffset:   baseOffset + len(content),
		}
		*position++
		return []Chunk{chunk}
	}

	var chunks []Chunk
	start := 0

	for start < len(content) {
		end := start + c.config.MaxChunkSize
		if end > len(content) {
			end = len(content)
		}

		// Try to find a clean break near the limit
		if end < len(content) {
			breakPoint := c.findBreakPoint(content, start, end)
			if breakPoint > start {
				end = breakPoint
			}
		}

		chunk := Chunk{
			Content:     content[start:end],
			Position:    *position,
			StartOffset: baseOffset + start,
			EndOffset:   baseOffset + end,
		}
		chunks = append(chunks, chunk)
		*position++

		if end >= len(content) {
			break
		}

		// Move start with overlap, ensuring we always advance
		nextStart := end - c.config.Overlap
		if nextStart <= start {
			nextStart = start + 1
		}
		start = nextStart
	}

	return chunks
}

// findBreakPoint finds a good break point for chunking.
func (c *Chunker) findBreakPoint(content string, start, maxEnd int) int {
	searchStart := maxEnd - 100
	if searchStart < start {
		searchStart = start
	}

	searchContent := content[searchStart:maxEnd]

	// Paragraph boundary first (double newline)
	if c.config.PreserveParagraphs {
		if idx := strings.LastIndex(searchContent, "\n\n"); idx != -1 {
			return searchStart + idx + 2
		}
	}

	// Then sentence boundary
	if c.config.PreserveSentences {
		sentenceEnders := []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}
		bestIdx := -1

		for _, ender := range sentenceEnders {
			if idx := strings.LastIndex(searchContent, ender); idx != -1 {
				endPos := idx + len(ender)
				if endPos > bestIdx {
					bestIdx = endPos
				}
			}
		}

		if bestIdx > 0 {
			return searchStart + bestIdx
		}
	}

	// Then word boundary
	if idx := strings.LastIndex(searchContent, " "); idx != -1 {
		return searchStart + idx + 1
	}

	return maxEnd
}

// DeduplicatorConfig configures the deduplicator.
type DeduplicatorConfig struct {
	// MinDuplicateLength is the minimum chunk length to check for duplicates
	MinDuplicateLength int
}

// DefaultDeduplicatorConfig returns sensible defaults.
func DefaultDeduplicatorConfig() DeduplicatorConfig {
	return DeduplicatorConfig{
		MinDuplicateLength: 50,
	}
}

// Deduplicator drops chunks whose normalised text was already seen.
// Boilerplate repeated across a document (headers, footers) would
// otherwise crowd retrieval results.
type Deduplicator struct {
	config DeduplicatorConfig
}

var _ PostProcessor = (*Deduplicator)(nil)

// NewDeduplicator creates a new deduplicator with the given config.
func NewDeduplicator(config DeduplicatorConfig) *Deduplicator {
	return &Deduplicator{config: config}
}

// Process removes duplicate chunks.
func (d *Deduplicator) Process(chunks []Chunk) []Chunk {
	if len(chunks) <= 1 {
		return chunks
	}

	seen := make(map[string]bool)
	var result []Chunk

	for _, chunk := range chunks {
		if len(chunk.Content) < d.config.MinDuplicateLength {
			result = append(result, chunk)
			continue
		}

		normalized := strings.TrimSpace(strings.ToLower(chunk.Content))

		if !seen[normalized] {
			seen[normalized] = true
			result = append(result, chunk)
		}
	}

	return result
}

func (d *Deduplicator) Name() string {
	return "deduplicator"
}

func (d *Deduplicator) Order() int {
	return 10
}

// WhitespaceNormalizer normalizes whitespace in chunks and drops
// chunks that become empty.
type WhitespaceNormalizer struct{}

var _ PostProcessor = (*WhitespaceNormalizer)(nil)

// NewWhitespaceNormalizer creates a new whitespace normalizer.
func NewWhitespaceNormalizer() *WhitespaceNormalizer {
	return &WhitespaceNormalizer{}
}

// Process normalizes whitespace in chunks.
func (w *WhitespaceNormalizer) Process(chunks []Chunk) []Chunk {
	result := make([]Chunk, 0, len(chunks))

	for _, chunk := range chunks {
		content := chunk.Content

		content = strings.ReplaceAll(content, "\r\n", "\n")
		content = strings.ReplaceAll(content, "\r", "\n")

		// Collapse multiple spaces (but preserve newlines)
		lines := strings.Split(content, "\n")
		for i, line := range lines {
			for strings.Contains(line, "  ") {
				line = strings.ReplaceAll(line, "  ", " ")
			}
			lines[i] = strings.TrimSpace(line)
		}
		content = strings.Join(lines, "\n")

		// Remove excessive blank lines
		for strings.Contains(content, "\n\n\n") {
			content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
		}

		content = strings.TrimSpace(content)

		if len(content) > 0 {
			newChunk := chunk
			newChunk.Content = content
			result = append(result, newChunk)
		}
	}

	return result
}

func (w *WhitespaceNormalizer) Name() string {
	return "whitespace-normalizer"
}

func (w *WhitespaceNormalizer) Order() int {
	return 5
}

package postprocessors

import (
	"strings"
	"testing"
)

func TestPipeline_Empty(t *testing.T) {
	p := NewPipeline()

	chunks := p.Process("some content")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 passthrough chunk, got %d", len(chunks))
	}
	if chunks[0].Content != "some content" {
		t.Errorf("unexpected content %q", chunks[0].Content)
	}
	if chunks[0].EndOffset != len("some content") {
		t.Errorf("unexpected end offset %d", chunks[0].EndOffset)
	}
}

func TestPipeline_OrderSorting(t *testing.T) {
	p := NewPipeline()
	p.Add(NewDeduplicator(DefaultDeduplicatorConfig())) // order 10
	p.Add(NewChunker(DefaultChunkConfig()))             // order 0
	p.Add(NewWhitespaceNormalizer())                    // order 5

	// Processing sorts by Order(); the chunker must run first even
	// though it was added second
	content := strings.Repeat("sentence one. ", 300)
	chunks := p.Process(content)
	if len(chunks) < 2 {
		t.Errorf("expected chunker to split long content, got %d chunks", len(chunks))
	}
}

func TestPipeline_List(t *testing.T) {
	p := DefaultPipeline(DefaultChunkConfig())

	names := p.List()
	if len(names) != 3 {
		t.Fatalf("expected 3 processors, got %v", names)
	}
}

func TestChunker_ShortContent(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	chunks := c.Process([]Chunk{{Content: "hello world", EndOffset: 11}})
	if len(chunks) != 1 || chunks[0].Content != "hello world" {
		t.Errorf("unexpected chunks %v", chunks)
	}
	if chunks[0].Position != 0 {
		t.Errorf("expected position 0, got %d", chunks[0].Position)
	}
}

func TestChunker_EmptyContent(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	if chunks := c.Process([]Chunk{{Content: "   "}}); len(chunks) != 0 {
		t.Errorf("expected no chunks for blank content, got %v", chunks)
	}
}

func TestChunker_SplitsWithOverlap(t *testing.T) {
	c := NewChunker(ChunkConfig{MaxChunkSize: 300, Overlap: 50, PreserveSentences: true})

	content := strings.Repeat("word ", 200) // 1000 chars
	chunks := c.Process([]Chunk{{Content: content, EndOffset: len(content)}})
	if len(chunks) < 3 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Content) > 300 {
			t.Errorf("chunk %d exceeds max size: %d", i, len(chunk.Content))
		}
		if chunk.Position != i {
			t.Errorf("expected position %d, got %d", i, chunk.Position)
		}
	}
	// Overlap means adjacent chunks share text
	if chunks[1].StartOffset >= chunks[0].EndOffset {
		t.Errorf("expected chunk 1 to overlap chunk 0: %d >= %d", chunks[1].StartOffset, chunks[0].EndOffset)
	}
}

func TestChunker_BreaksOnSentence(t *testing.T) {
	c := NewChunker(ChunkConfig{MaxChunkSize: 100, Overlap: 0, PreserveSentences: true})

	content := strings.Repeat("A short sentence. ", 30)
	for i, chunk := range c.Process([]Chunk{{Content: content, EndOffset: len(content)}}) {
		trimmed := strings.TrimSpace(chunk.Content)
		if !strings.HasSuffix(trimmed, ".") {
			t.Errorf("chunk %d did not break at a sentence: %q", i, trimmed)
		}
	}
}

func TestChunker_BreaksOnParagraph(t *testing.T) {
	c := NewChunker(ChunkConfig{MaxChunkSize: 120, Overlap: 0, PreserveSentences: true, PreserveParagraphs: true})

	para := strings.Repeat("word ", 20) // 100 chars
	content := para + "\n\n" + para + "\n\n" + para
	chunks := c.Process([]Chunk{{Content: content, EndOffset: len(content)}})
	if len(chunks) < 2 {
		t.Fatalf("expected paragraph splits, got %d chunks", len(chunks))
	}
}

func TestChunker_AlwaysAdvances(t *testing.T) {
	// Overlap nearly equal to chunk size must not loop forever
	c := NewChunker(ChunkConfig{MaxChunkSize: 10, Overlap: 9})

	content := strings.Repeat("x", 100)
	chunks := c.Process([]Chunk{{Content: content, EndOffset: len(content)}})
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	for i := 1; i < len(chunks); i++ {
		if chunks[i].StartOffset <= chunks[i-1].StartOffset {
			t.Fatalf("chunk %d did not advance: %d <= %d", i, chunks[i].StartOffset, chunks[i-1].StartOffset)
		}
	}
}

func TestDeduplicator_RemovesDuplicates(t *testing.T) {
	d := NewDeduplicator(DeduplicatorConfig{MinDuplicateLength: 10})

	repeated := "This exact footer appears on every page of the document."
	chunks := []Chunk{
		{Content: repeated, Position: 0},
		{Content: "Unique content in the middle.", Position: 1},
		{Content: repeated, Position: 2},
		{Content: strings.ToUpper(repeated), Position: 3}, // case-insensitive duplicate
	}

	result := d.Process(chunks)
	if len(result) != 2 {
		t.Fatalf("expected 2 chunks after dedup, got %d", len(result))
	}
}

func TestDeduplicator_KeepsShortChunks(t *testing.T) {
	d := NewDeduplicator(DeduplicatorConfig{MinDuplicateLength: 50})

	chunks := []Chunk{
		{Content: "short"},
		{Content: "short"},
	}

	// Below the length threshold duplicates are kept; short repeated
	// fragments (list bullets, numbers) are usually legitimate
	if result := d.Process(chunks); len(result) != 2 {
		t.Errorf("expected short chunks kept, got %d", len(result))
	}
}

func TestWhitespaceNormalizer(t *testing.T) {
	w := NewWhitespaceNormalizer()

	chunks := []Chunk{
		{Content: "line  with   extra spaces\r\nsecond line\n\n\n\nthird line"},
		{Content: "   \n  \n"},
	}

	result := w.Process(chunks)
	if len(result) != 1 {
		t.Fatalf("expected blank chunk dropped, got %d chunks", len(result))
	}
	want := "line with extra spaces\nsecond line\n\nthird line"
	if result[0].Content != want {
		t.Errorf("expected %q, got %q", want, result[0].Content)
	}
}

func TestDefaultPipeline_EndToEnd(t *testing.T) {
	p := DefaultPipeline(ChunkConfig{MaxChunkSize: 200, Overlap: 20, PreserveSentences: true})

	footer := "Repeated page footer text that is long enough to deduplicate."
	content := strings.Repeat("Some sentence about geology. ", 20) + "\n\n" +
		footer + "\n\n" + footer

	chunks := p.Process(content)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) == "" {
			t.Errorf("chunk %d is blank", i)
		}
		if strings.Contains(chunk.Content, "  ") {
			t.Errorf("chunk %d has unnormalised whitespace: %q", i, chunk.Content)
		}
	}
}

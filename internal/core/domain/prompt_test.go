package domain

import (
	"strings"
	"testing"
)

func TestBuildGroundedPrompt_AllSections(t *testing.T) {
	texts := []string{"Paris is the capital of France.", "The Seine crosses Paris."}
	tables := []string{"<table><tr><td>pop</td></tr></table>"}

	prompt := BuildGroundedPrompt(texts, tables, 2)

	block := prompt.InstructionBlock
	if !strings.Contains(block, RefusalSentence) {
		t.Error("expected instruction block to carry the refusal sentence verbatim")
	}
	if !strings.Contains(block, "CONTEXT DOCUMENTS:") {
		t.Error("expected context documents section")
	}
	if !strings.Contains(block, "[Document Chunk 1]:\nParis is the capital of France.") {
		t.Error("expected first chunk under Document Chunk 1 heading")
	}
	if !strings.Contains(block, "[Document Chunk 2]:\nThe Seine crosses Paris.") {
		t.Error("expected second chunk under Document Chunk 2 heading")
	}
	if !strings.Contains(block, "RELATED TABLES:") {
		t.Error("expected related tables section")
	}
	if !strings.Contains(block, "[Table 1]:") {
		t.Error("expected Table 1 heading")
	}
	if !strings.Contains(block, "RELATED IMAGES:") {
		t.Error("expected related images section")
	}
	if !strings.Contains(block, "2 image(s)") {
		t.Error("expected image count in images section")
	}

	// Section ordering is part of the contract
	docIdx := strings.Index(block, "CONTEXT DOCUMENTS:")
	tableIdx := strings.Index(block, "RELATED TABLES:")
	imageIdx := strings.Index(block, "RELATED IMAGES:")
	if !(docIdx < tableIdx && tableIdx < imageIdx) {
		t.Errorf("expected documents < tables < images ordering, got %d/%d/%d", docIdx, tableIdx, imageIdx)
	}

	if prompt.ImageCount != 2 {
		t.Errorf("expected ImageCount 2, got %d", prompt.ImageCount)
	}
	if len(prompt.TextChunks) != 2 || len(prompt.Tables) != 1 {
		t.Errorf("expected derived fields to mirror inputs, got %d/%d", len(prompt.TextChunks), len(prompt.Tables))
	}
}

func TestBuildGroundedPrompt_EmptyInputsOmitSections(t *testing.T) {
	prompt := BuildGroundedPrompt(nil, nil, 0)

	block := prompt.InstructionBlock
	if strings.Contains(block, "CONTEXT DOCUMENTS") {
		t.Error("expected no context documents section for empty texts")
	}
	if strings.Contains(block, "RELATED TABLES") {
		t.Error("expected no tables section for empty tables")
	}
	if strings.Contains(block, "RELATED IMAGES") {
		t.Error("expected no images section for zero images")
	}
	// The grounding contract and refusal path remain present
	if !strings.Contains(block, RefusalSentence) {
		t.Error("expected refusal sentence even with empty context")
	}
	if !strings.Contains(block, "integrate all provided modalities") {
		t.Error("expected closing integration instruction")
	}
}

func TestBuildGroundedPrompt_Deterministic(t *testing.T) {
	texts := []string{"a", "b"}
	tables := []string{"<t/>"}

	first := BuildGroundedPrompt(texts, tables, 1)
	second := BuildGroundedPrompt(texts, tables, 1)

	if first.InstructionBlock != second.InstructionBlock {
		t.Error("expected prompt building to be deterministic")
	}
}

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"png data uri rewrapped as jpeg",
			"data:image/png;base64,AAAA",
			"data:image/jpeg;base64,AAAA",
		},
		{
			"jpeg data uri unchanged",
			"data:image/jpeg;base64,BBBB",
			"data:image/jpeg;base64,BBBB",
		},
		{
			"bare base64 wrapped",
			"CCCC",
			"data:image/jpeg;base64,CCCC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeImage(tt.input)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestNormalizeImage_Idempotent(t *testing.T) {
	inputs := []string{
		"data:image/png;base64,AAAA",
		"data:image/jpeg;base64,BBBB",
		"CCCC",
	}
	for _, in := range inputs {
		once := NormalizeImage(in)
		twice := NormalizeImage(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestComposePayload_TextOnly(t *testing.T) {
	payload := ComposePayload("instruction", "what is this?", nil)

	if payload.SystemPrompt != "instruction" {
		t.Errorf("unexpected system prompt %q", payload.SystemPrompt)
	}
	if payload.UserText != "what is this?" {
		t.Errorf("unexpected user text %q", payload.UserText)
	}
	if payload.Images != nil {
		t.Error("expected nil images for text-only payload shape")
	}
	if payload.IsMultiModal() {
		t.Error("expected text-only payload to not be multi-modal")
	}
}

func TestComposePayload_WithImages(t *testing.T) {
	images := []string{"data:image/png;base64,AAAA", "BBBB"}
	payload := ComposePayload("instruction", "question", images)

	if !payload.IsMultiModal() {
		t.Error("expected multi-modal payload")
	}
	if len(payload.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(payload.Images))
	}
	if payload.Images[0] != "data:image/jpeg;base64,AAAA" {
		t.Errorf("expected normalized first image, got %q", payload.Images[0])
	}
	if payload.Images[1] != "data:image/jpeg;base64,BBBB" {
		t.Errorf("expected normalized second image, got %q", payload.Images[1])
	}
}

func TestNewAnswerRecord(t *testing.T) {
	citations := []*Citation{
		{ChunkID: "c1", DocumentID: "d1", Filename: "geo.pdf", Page: 1},
	}
	record := NewAnswerRecord("Paris.", citations)

	if record.Content != "Paris." {
		t.Errorf("expected content unchanged, got %q", record.Content)
	}
	if len(record.Citations) != 1 || record.Citations[0] != citations[0] {
		t.Error("expected citations attached verbatim")
	}
}

func TestNewAnswerRecord_NilCitations(t *testing.T) {
	record := NewAnswerRecord("no sources", nil)
	if record.Citations == nil {
		t.Error("expected empty citations slice, not nil")
	}
	if len(record.Citations) != 0 {
		t.Errorf("expected 0 citations, got %d", len(record.Citations))
	}
}

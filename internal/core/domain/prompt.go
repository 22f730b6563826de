package domain

import (
	"fmt"
	"strings"
)

// RefusalSentence is the exact reply the model must produce when the
// retrieved context does not contain the answer. The grounding contract
// depends on this being reproduced verbatim, so it is a single constant
// shared by the prompt builder and its tests.
const RefusalSentence = "The answer to your question is not available in the provided documents."

// jpegDataURIPrefix is the canonical encoding every outbound image is
// rewrapped with, regardless of the stored encoding hint.
const jpegDataURIPrefix = "data:image/jpeg;base64,"

// GroundedPrompt is the fully assembled instruction for one request.
// It is purely derived from partitioned context and lives only for the
// duration of that request.
type GroundedPrompt struct {
	InstructionBlock string   `json:"instruction_block"`
	TextChunks       []string `json:"text_chunks"`
	Tables           []string `json:"tables"`
	ImageCount       int      `json:"image_count"`
}

// BuildGroundedPrompt deterministically assembles the instruction block
// from partitioned context. Section order is fixed: grounding contract,
// context documents, related tables, related images, closing
// integration instruction. A section whose input is empty is omitted
// entirely, never rendered blank.
func BuildGroundedPrompt(texts, tables []string, imageCount int) *GroundedPrompt {
	var b strings.Builder

	b.WriteString("You are a document analysis assistant. Answer the user's question using ONLY the context provided below.\n")
	b.WriteString("If the answer is not present in the provided context, reply exactly: \"")
	b.WriteString(RefusalSentence)
	b.WriteString("\"\n")
	b.WriteString("Do not use outside knowledge and do not guess beyond the provided material.\n")
	b.WriteString("Synthesize information across text, tables, and images when answering.\n")

	if len(texts) > 0 {
		b.WriteString("\nCONTEXT DOCUMENTS:\n")
		for i, text := range texts {
			fmt.Fprintf(&b, "\n[Document Chunk %d]:\n%s\n", i+1, text)
		}
	}

	if len(tables) > 0 {
		b.WriteString("\nRELATED TABLES:\n")
		b.WriteString("Analyze the structure, headers, and values of each table when it is relevant to the question.\n")
		for i, table := range tables {
			fmt.Fprintf(&b, "\n[Table %d]:\n%s\n", i+1, table)
		}
	}

	if imageCount > 0 {
		b.WriteString("\nRELATED IMAGES:\n")
		fmt.Fprintf(&b, "%d image(s) retrieved from the documents accompany this message. Treat them as part of the retrieved context.\n", imageCount)
	}

	b.WriteString("\nYour answer must integrate all provided modalities into a single grounded response.")

	return &GroundedPrompt{
		InstructionBlock: b.String(),
		TextChunks:       texts,
		Tables:           tables,
		ImageCount:       imageCount,
	}
}

// GenerationPayload is the final request shape handed to the generation
// collaborator. Images keeps the partition order; it is nil for the
// text-only payload shape.
type GenerationPayload struct {
	SystemPrompt string   `json:"system_prompt"`
	UserText     string   `json:"user_text"`
	Images       []string `json:"images,omitempty"`
}

// IsMultiModal reports whether the payload carries images
func (p *GenerationPayload) IsMultiModal() bool {
	return len(p.Images) > 0
}

// ComposePayload assembles the generation payload from the instruction
// block, the raw user question, and the partitioned image list. Every
// image is normalized to a canonical JPEG data URI; order is preserved.
// With zero images the payload is plain text, a deliberately distinct
// shape from the multi-modal one.
func ComposePayload(instruction, question string, images []string) *GenerationPayload {
	payload := &GenerationPayload{
		SystemPrompt: instruction,
		UserText:     question,
	}
	if len(images) == 0 {
		return payload
	}
	payload.Images = make([]string, len(images))
	for i, img := range images {
		payload.Images[i] = NormalizeImage(img)
	}
	return payload
}

// NormalizeImage strips any data-URI prefix up to and including the
// first comma and rewraps the remaining base64 payload as a JPEG data
// URI. Idempotent: normalizing an already-normalized value yields the
// same string.
func NormalizeImage(image string) string {
	payload := image
	if strings.HasPrefix(image, "data:") {
		if i := strings.Index(image, ","); i >= 0 {
			payload = image[i+1:]
		}
	}
	return jpegDataURIPrefix + payload
}

package domain

// ChunkContent holds the heterogeneous content of a stored chunk.
// Images are base64 payloads (optionally data-URI prefixed), tables are
// HTML fragments. Sub-ordering within a chunk is meaningful.
type ChunkContent struct {
	Text   string   `json:"text,omitempty"`
	Images []string `json:"images,omitempty"`
	Tables []string `json:"tables,omitempty"`
}

// DocumentChunk is a retrieval-unit fragment of a project document.
// Chunks are read-only projections of indexed content, produced fresh
// per query and never persisted by the answer pipeline.
type DocumentChunk struct {
	ID         string       `json:"id"`
	DocumentID string       `json:"document_id"`
	PageNumber int          `json:"page_number"`
	Similarity float64      `json:"similarity"`
	Content    ChunkContent `json:"content"`
}

// PartitionedContext holds the three flat content streams unpacked from
// an ordered chunk list. The streams carry no per-item provenance; the
// prompt consumer needs flat content, citations are built separately
// from the same chunk list.
type PartitionedContext struct {
	Texts  []string
	Images []string
	Tables []string
}

// PartitionChunks splits each chunk's content into ordered text, image,
// and table streams. A chunk contributes only the fields it carries;
// empty text is skipped entirely. Stream order follows chunk order, and
// images/tables keep their intra-chunk sub-order.
func PartitionChunks(chunks []*DocumentChunk) PartitionedContext {
	var pc PartitionedContext
	for _, chunk := range chunks {
		if chunk == nil {
			continue
		}
		if chunk.Content.Text != "" {
			pc.Texts = append(pc.Texts, chunk.Content.Text)
		}
		pc.Images = append(pc.Images, chunk.Content.Images...)
		pc.Tables = append(pc.Tables, chunk.Content.Tables...)
	}
	return pc
}

// EmbeddedChunk is the write-side shape handed to the chunk index
// during ingestion: chunk content plus its embedding vector and the
// project scope it is searchable under.
type EmbeddedChunk struct {
	ID         string       `json:"id"`
	DocumentID string       `json:"document_id"`
	ProjectID  string       `json:"project_id"`
	PageNumber int          `json:"page_number"`
	Content    ChunkContent `json:"content"`
	Embedding  []float32    `json:"embedding"`
}

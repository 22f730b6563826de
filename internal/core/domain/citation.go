package domain

// UnknownDocumentName is the fallback filename when a chunk references
// a document id the metadata store no longer knows about. Chunk index
// and document metadata are only eventually consistent, so a miss is
// degraded rather than treated as an error.
const UnknownDocumentName = "Unknown Document"

// Citation is a traceable link from an answer back to the chunk,
// document, and page that contributed to it.
type Citation struct {
	ChunkID    string `json:"chunk_id"`
	DocumentID string `json:"document_id"`
	Filename   string `json:"filename"`
	Page       int    `json:"page"`
}

// BuildCitations produces one citation per chunk that carries a
// document id, in chunk order, using a pre-resolved id-to-filename map.
// Repeated chunks from the same document each get their own entry since
// each is independently traceable to a specific page. Chunks without a
// document id contribute nothing.
func BuildCitations(chunks []*DocumentChunk, filenames map[string]string) []*Citation {
	citations := make([]*Citation, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk == nil || chunk.DocumentID == "" {
			continue
		}
		name, ok := filenames[chunk.DocumentID]
		if !ok || name == "" {
			name = UnknownDocumentName
		}
		citations = append(citations, &Citation{
			ChunkID:    chunk.ID,
			DocumentID: chunk.DocumentID,
			Filename:   name,
			Page:       chunk.PageNumber,
		})
	}
	return citations
}

// UniqueDocumentIDs collects the distinct document ids referenced by a
// chunk list, in first-seen order. The result feeds the single batched
// filename lookup.
func UniqueDocumentIDs(chunks []*DocumentChunk) []string {
	seen := make(map[string]struct{}, len(chunks))
	var ids []string
	for _, chunk := range chunks {
		if chunk == nil || chunk.DocumentID == "" {
			continue
		}
		if _, ok := seen[chunk.DocumentID]; ok {
			continue
		}
		seen[chunk.DocumentID] = struct{}{}
		ids = append(ids, chunk.DocumentID)
	}
	return ids
}

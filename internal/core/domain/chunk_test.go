package domain

import (
	"reflect"
	"testing"
)

func TestPartitionChunks_OrderAndSubOrder(t *testing.T) {
	chunks := []*DocumentChunk{
		{
			ID:         "chunk-1",
			DocumentID: "doc-1",
			Content: ChunkContent{
				Text:   "first text",
				Images: []string{"img-1a", "img-1b"},
				Tables: []string{"<table>1</table>"},
			},
		},
		{
			ID:         "chunk-2",
			DocumentID: "doc-2",
			Content: ChunkContent{
				Text:   "second text",
				Images: []string{"img-2a"},
			},
		},
		{
			ID:         "chunk-3",
			DocumentID: "doc-1",
			Content: ChunkContent{
				Tables: []string{"<table>3a</table>", "<table>3b</table>"},
			},
		},
	}

	pc := PartitionChunks(chunks)

	wantTexts := []string{"first text", "second text"}
	if !reflect.DeepEqual(pc.Texts, wantTexts) {
		t.Errorf("texts: expected %v, got %v", wantTexts, pc.Texts)
	}

	wantImages := []string{"img-1a", "img-1b", "img-2a"}
	if !reflect.DeepEqual(pc.Images, wantImages) {
		t.Errorf("images: expected %v, got %v", wantImages, pc.Images)
	}

	wantTables := []string{"<table>1</table>", "<table>3a</table>", "<table>3b</table>"}
	if !reflect.DeepEqual(pc.Tables, wantTables) {
		t.Errorf("tables: expected %v, got %v", wantTables, pc.Tables)
	}
}

func TestPartitionChunks_SkipsEmptyText(t *testing.T) {
	chunks := []*DocumentChunk{
		{ID: "chunk-1", Content: ChunkContent{Text: ""}},
		{ID: "chunk-2", Content: ChunkContent{Text: "only real text"}},
		{ID: "chunk-3", Content: ChunkContent{}},
	}

	pc := PartitionChunks(chunks)

	if len(pc.Texts) != 1 {
		t.Fatalf("expected 1 text entry, got %d", len(pc.Texts))
	}
	if pc.Texts[0] != "only real text" {
		t.Errorf("unexpected text entry: %q", pc.Texts[0])
	}
	if len(pc.Images) != 0 || len(pc.Tables) != 0 {
		t.Errorf("expected no images/tables, got %d/%d", len(pc.Images), len(pc.Tables))
	}
}

func TestPartitionChunks_Empty(t *testing.T) {
	pc := PartitionChunks(nil)
	if len(pc.Texts) != 0 || len(pc.Images) != 0 || len(pc.Tables) != 0 {
		t.Error("expected empty partition for empty chunk list")
	}

	pc = PartitionChunks([]*DocumentChunk{nil})
	if len(pc.Texts) != 0 {
		t.Error("expected nil chunks to be skipped")
	}
}

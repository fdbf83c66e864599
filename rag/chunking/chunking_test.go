package chunking

import (
	"context"
	"strings"
	"testing"

	"github.com/studymate-ai/studymate/rag/document"
)

func TestSimpleChunkerSplitsOnSeparator(t *testing.T) {
	c := NewSimpleChunker()
	doc := document.Document{
		ID:      "doc1",
		Content: "first paragraph\n\nsecond paragraph\n\n\n\nthird paragraph",
	}

	chunks, err := c.Chunk(context.Background(), doc)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.DocumentID != "doc1" {
			t.Errorf("chunk %d has wrong document id %q", i, chunk.DocumentID)
		}
		if chunk.Ordinal != i+1 {
			t.Errorf("expected ordinal %d, got %d", i+1, chunk.Ordinal)
		}
	}
}

func TestSimpleChunkerWindowsLongParts(t *testing.T) {
	c := NewSimpleChunker(WithChunkSize(100), WithOverlap(20))
	doc := document.Document{ID: "doc1", Content: strings.Repeat("x", 250)}

	chunks, err := c.Chunk(context.Background(), doc)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) < 3 {
		t.Fatalf("expected windowing into at least 3 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(chunk.Content) > 100 {
			t.Errorf("chunk %d exceeds size limit: %d characters", i, len(chunk.Content))
		}
	}
}

func TestSimpleChunkerClampsExcessiveOverlap(t *testing.T) {
	for _, overlap := range []int{10, 25} {
		c := NewSimpleChunker(WithChunkSize(10), WithOverlap(overlap))
		doc := document.Document{ID: "doc1", Content: strings.Repeat("y", 40)}

		chunks, err := c.Chunk(context.Background(), doc)
		if err != nil {
			t.Fatalf("Chunk failed with overlap %d: %v", overlap, err)
		}
		if len(chunks) == 0 {
			t.Fatalf("expected chunks with overlap %d", overlap)
		}
		for i, chunk := range chunks {
			if len(chunk.Content) > 10 {
				t.Errorf("overlap %d: chunk %d exceeds size limit: %d characters", overlap, i, len(chunk.Content))
			}
		}
	}
}

func TestSimpleChunkerCopiesMetadata(t *testing.T) {
	c := NewSimpleChunker()
	doc := document.Document{
		ID:       "doc1",
		Content:  "a single paragraph",
		Metadata: map[string]any{"page": 3},
	}

	chunks, err := c.Chunk(context.Background(), doc)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if chunks[0].Metadata["page"] != 3 {
		t.Fatalf("expected page metadata on chunk, got %v", chunks[0].Metadata)
	}

	noMeta := NewSimpleChunker(WithMetadataCopy(false))
	chunks, err = noMeta.Chunk(context.Background(), doc)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if chunks[0].Metadata != nil {
		t.Fatalf("expected no metadata copy, got %v", chunks[0].Metadata)
	}
}

func TestSimpleChunkerEmptyDocument(t *testing.T) {
	c := NewSimpleChunker()
	chunks, err := c.Chunk(context.Background(), document.Document{ID: "doc1"})
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("expected a single empty chunk, got %d", len(chunks))
	}
}

func TestTokenChunkerWindows(t *testing.T) {
	c, err := NewTokenChunker("cl100k_base", 16, 4)
	if err != nil {
		// The encoding tables are fetched on first use.
		t.Skipf("encoding unavailable: %v", err)
	}

	doc := document.Document{
		ID:      "doc1",
		Content: strings.Repeat("the quick brown fox jumps over the lazy dog ", 20),
	}
	chunks, err := c.Chunk(context.Background(), doc)
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple token windows, got %d", len(chunks))
	}
	var joined strings.Builder
	for _, chunk := range chunks {
		joined.WriteString(chunk.Content)
	}
	if !strings.Contains(joined.String(), "quick brown fox") {
		t.Fatalf("expected decoded windows to preserve the text")
	}
}

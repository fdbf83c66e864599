package document

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Document represents a study material that can be chunked and indexed.
type Document struct {
	ID       string         `json:"id"`
	Title    string         `json:"title,omitempty"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Chunk represents a slice of a document that is indexed into a vector store.
type Chunk struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Content    string         `json:"content"`
	Ordinal    int            `json:"ordinal"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Passage is a unit of retrieved text handed to generation, carrying the
// source locator (page or section) it originated from. Ordering of a passage
// slice reflects relevance rank.
type Passage struct {
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float32 `json:"score"`
}

var (
	docCounter   atomic.Int64
	chunkCounter atomic.Int64
)

// EnsureDocumentID makes sure every document has a stable identifier.
func EnsureDocumentID(doc *Document) {
	if doc == nil {
		return
	}
	if doc.ID != "" {
		return
	}
	id := docCounter.Add(1)
	doc.ID = fmt.Sprintf("doc_%d", id)
}

// NextChunkID returns a globally unique chunk identifier derived from document ID.
func NextChunkID(docID string) string {
	next := chunkCounter.Add(1)
	if docID == "" {
		return fmt.Sprintf("chunk_%d", next)
	}
	return fmt.Sprintf("%s_chunk_%d", docID, next)
}

// SourceLocator derives a human-readable citation for a chunk: "Page N" when
// page metadata is present, then section metadata, then the document title.
func SourceLocator(chunk Chunk, doc Document) string {
	if chunk.Metadata != nil {
		if page, ok := chunk.Metadata["page"]; ok {
			return fmt.Sprintf("Page %v", page)
		}
		if section, ok := chunk.Metadata["section"]; ok {
			if s, ok := section.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if strings.TrimSpace(doc.Title) != "" {
		return doc.Title
	}
	return doc.ID
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := d
	if d.Metadata != nil {
		out.Metadata = make(map[string]any, len(d.Metadata))
		for k, v := range d.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// Clone returns a deep copy of the chunk.
func (c Chunk) Clone() Chunk {
	out := c
	if c.Metadata != nil {
		out.Metadata = make(map[string]any, len(c.Metadata))
		for k, v := range c.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

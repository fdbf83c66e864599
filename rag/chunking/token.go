package chunking

import (
	"context"

	"github.com/pkoukk/tiktoken-go"

	"github.com/studymate-ai/studymate/rag/document"
)

// TokenChunker windows documents by BPE token count instead of characters,
// which keeps chunk sizes aligned with embedding-model limits.
type TokenChunker struct {
	enc       *tiktoken.Tiktoken
	maxTokens int
	overlap   int
	addMeta   bool
}

// NewTokenChunker builds a chunker for the given encoding or model name.
func NewTokenChunker(encoding string, maxTokens, overlap int) (*TokenChunker, error) {
	enc, err := tiktoken.EncodingForModel(encoding)
	if err != nil {
		enc, err = tiktoken.GetEncoding(encoding)
		if err != nil {
			return nil, err
		}
	}
	if maxTokens <= 0 {
		maxTokens = 256
	}
	if overlap < 0 || overlap >= maxTokens {
		overlap = maxTokens / 8
	}
	return &TokenChunker{
		enc:       enc,
		maxTokens: maxTokens,
		overlap:   overlap,
		addMeta:   true,
	}, nil
}

// Chunk implements Chunker.
func (c *TokenChunker) Chunk(ctx context.Context, doc document.Document) ([]document.Chunk, error) {
	document.EnsureDocumentID(&doc)

	ids := c.enc.Encode(doc.Content, nil, nil)
	if len(ids) == 0 {
		return []document.Chunk{c.newChunk(doc, 1, doc.Content)}, nil
	}

	var chunks []document.Chunk
	ordinal := 0
	for start := 0; start < len(ids); {
		end := start + c.maxTokens
		if end > len(ids) {
			end = len(ids)
		}
		ordinal++
		chunks = append(chunks, c.newChunk(doc, ordinal, c.enc.Decode(ids[start:end])))
		if end == len(ids) {
			break
		}
		start = end - c.overlap
	}
	return chunks, nil
}

func (c *TokenChunker) newChunk(doc document.Document, ordinal int, content string) document.Chunk {
	chunk := document.Chunk{
		ID:         document.NextChunkID(doc.ID),
		DocumentID: doc.ID,
		Content:    content,
		Ordinal:    ordinal,
	}
	if c.addMeta && doc.Metadata != nil {
		chunk.Metadata = make(map[string]any, len(doc.Metadata))
		for k, v := range doc.Metadata {
			chunk.Metadata[k] = v
		}
	}
	return chunk
}

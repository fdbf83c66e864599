// Package retriever implements the vector-index capability consumed by the
// corrective pipeline: documents go in chunked and embedded, passages come out
// ranked by similarity. A small index returns fewer than k passages rather
// than erroring.
package retriever

import (
	"context"
	"fmt"
	"sync"

	"github.com/studymate-ai/studymate/rag/chunking"
	"github.com/studymate-ai/studymate/rag/document"
	"github.com/studymate-ai/studymate/vector"
)

// Index coordinates chunking, embedding, and similarity search over one corpus.
type Index struct {
	store    vector.VectorStore
	embedder vector.Embedder
	chunker  chunking.Chunker

	mu        sync.RWMutex
	documents map[string]document.Document
	chunks    map[string]document.Chunk
}

// New creates an index over the given store and embedder.
func New(store vector.VectorStore, emb vector.Embedder, chunker chunking.Chunker) *Index {
	if chunker == nil {
		chunker = chunking.NewSimpleChunker()
	}
	return &Index{
		store:     store,
		embedder:  emb,
		chunker:   chunker,
		documents: make(map[string]document.Document),
		chunks:    make(map[string]document.Chunk),
	}
}

// AddDocuments ingests documents -> chunks -> embeddings -> vector store.
func (ix *Index) AddDocuments(ctx context.Context, docs ...document.Document) error {
	if ix.store == nil || ix.embedder == nil {
		return fmt.Errorf("index not fully configured")
	}

	for _, doc := range docs {
		document.EnsureDocumentID(&doc)
		chunks, err := ix.chunker.Chunk(ctx, doc)
		if err != nil {
			return fmt.Errorf("chunk document %s: %w", doc.ID, err)
		}

		for _, chunk := range chunks {
			vec, err := ix.embedder.Embed(ctx, chunk.Content)
			if err != nil {
				return fmt.Errorf("embed chunk %s: %w", chunk.ID, err)
			}
			embedding := &vector.Embedding{
				ID:     chunk.ID,
				Vector: vec,
				Text:   chunk.Content,
			}
			if err := ix.store.AddEmbedding(ctx, embedding); err != nil {
				return fmt.Errorf("store chunk %s: %w", chunk.ID, err)
			}

			ix.mu.Lock()
			ix.chunks[chunk.ID] = chunk.Clone()
			ix.documents[doc.ID] = doc.Clone()
			ix.mu.Unlock()
		}
	}
	return nil
}

// Search embeds the query and returns up to k passages ranked by similarity.
// An empty index yields an empty slice, not an error.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]document.Passage, error) {
	if ix.store == nil || ix.embedder == nil {
		return nil, nil
	}
	queryVec, err := ix.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := ix.store.Search(ctx, queryVec, k)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}

	passages := make([]document.Passage, 0, len(hits))
	for _, hit := range hits {
		chunk, doc, ok := ix.lookup(hit.ID)
		if !ok {
			// Hit from a persistent store indexed by an earlier process; the
			// chunk map only covers this process, so cite nothing.
			passages = append(passages, document.Passage{
				Content: hit.Text,
				Score:   vector.CosineSimilarity(queryVec, hit.Vector),
			})
			continue
		}
		passages = append(passages, document.Passage{
			Content: chunk.Content,
			Source:  document.SourceLocator(chunk, doc),
			Score:   vector.CosineSimilarity(queryVec, hit.Vector),
		})
	}
	return passages, nil
}

func (ix *Index) lookup(chunkID string) (document.Chunk, document.Document, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	chunk, ok := ix.chunks[chunkID]
	if !ok {
		return document.Chunk{}, document.Document{}, false
	}
	doc := ix.documents[chunk.DocumentID]
	return chunk.Clone(), doc.Clone(), true
}

// Clear drops all indexed state.
func (ix *Index) Clear(ctx context.Context) error {
	if ix.store != nil {
		if err := ix.store.Clear(ctx); err != nil {
			return err
		}
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.chunks = make(map[string]document.Chunk)
	ix.documents = make(map[string]document.Document)
	return nil
}

// Count returns the number of chunks indexed.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.chunks)
}

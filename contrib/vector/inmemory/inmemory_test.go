package inmemory

import (
	"context"
	"testing"

	"github.com/studymate-ai/studymate/vector"
)

func TestInMemoryVectorStore(t *testing.T) {
	store := NewInMemoryVectorStore()
	ctx := context.Background()

	t.Run("add embedding", func(t *testing.T) {
		emb := &vector.Embedding{
			ID:     "emb1",
			Text:   "hello world",
			Vector: []float32{0.1, 0.2, 0.3},
		}
		if err := store.AddEmbedding(ctx, emb); err != nil {
			t.Errorf("AddEmbedding failed: %v", err)
		}

		count, err := store.Count(ctx)
		if err != nil || count != 1 {
			t.Errorf("expected count 1, got %d (err %v)", count, err)
		}
	})

	t.Run("rejects invalid embeddings", func(t *testing.T) {
		if err := store.AddEmbedding(ctx, nil); err == nil {
			t.Errorf("expected error for nil embedding")
		}
		if err := store.AddEmbedding(ctx, &vector.Embedding{Vector: []float32{1}}); err == nil {
			t.Errorf("expected error for missing ID")
		}
		if err := store.AddEmbedding(ctx, &vector.Embedding{ID: "empty"}); err == nil {
			t.Errorf("expected error for empty vector")
		}
	})

	t.Run("search ranks by similarity", func(t *testing.T) {
		store.Clear(ctx)

		embeddings := []*vector.Embedding{
			{ID: "emb1", Text: "apple", Vector: []float32{1.0, 0.0, 0.0}},
			{ID: "emb2", Text: "banana", Vector: []float32{0.0, 1.0, 0.0}},
			{ID: "emb3", Text: "orange", Vector: []float32{0.0, 0.0, 1.0}},
		}
		for _, emb := range embeddings {
			store.AddEmbedding(ctx, emb)
		}

		results, err := store.Search(ctx, []float32{1.0, 0.0, 0.0}, 2)
		if err != nil {
			t.Errorf("Search failed: %v", err)
		}
		if len(results) != 2 {
			t.Errorf("expected 2 results, got %d", len(results))
		}
		if results[0].ID != "emb1" {
			t.Errorf("expected emb1 first, got %s", results[0].ID)
		}
	})

	t.Run("delete embedding", func(t *testing.T) {
		store.Clear(ctx)
		store.AddEmbedding(ctx, &vector.Embedding{ID: "del1", Text: "x", Vector: []float32{1}})

		if err := store.DeleteEmbedding(ctx, "del1"); err != nil {
			t.Errorf("DeleteEmbedding failed: %v", err)
		}
		if err := store.DeleteEmbedding(ctx, "del1"); err == nil {
			t.Errorf("expected error deleting a missing embedding")
		}
	})

	t.Run("clear", func(t *testing.T) {
		store.AddEmbedding(ctx, &vector.Embedding{ID: "a", Text: "a", Vector: []float32{1}})
		store.Clear(ctx)

		count, _ := store.Count(ctx)
		if count != 0 {
			t.Errorf("expected empty store after clear, got %d", count)
		}
	})
}

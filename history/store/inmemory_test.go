package store

import (
	"context"
	"testing"

	"github.com/studymate-ai/studymate/history"
)

func TestInMemoryStoreTranscript(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	entries := []*history.Entry{
		{SessionID: "s1", Question: "What is a noun?", Answer: "A naming word.", RetrievalLevel: "PRIMARY", Quality: "EXCELLENT"},
		{SessionID: "s1", Question: "What is a verb?", Answer: "An action word.", RetrievalLevel: "SECONDARY", Quality: "GOOD"},
		{SessionID: "s2", Question: "Explain fractions", Answer: "Parts of a whole.", RetrievalLevel: "PRIMARY", Quality: "GOOD"},
	}
	for _, e := range entries {
		if err := s.Append(ctx, e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
		if e.ID == "" || e.CreatedAt.IsZero() {
			t.Fatalf("expected Append to fill defaults, got %+v", e)
		}
	}

	got, err := s.List(ctx, "s1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 turns for s1, got %d", len(got))
	}
	if got[0].Question != "What is a noun?" || got[1].Question != "What is a verb?" {
		t.Fatalf("expected append order preserved, got %q then %q", got[0].Question, got[1].Question)
	}

	count, err := s.Count(ctx, "s2")
	if err != nil || count != 1 {
		t.Fatalf("expected 1 turn for s2, got %d (err %v)", count, err)
	}

	if err := s.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if count, _ := s.Count(ctx, "s1"); count != 0 {
		t.Fatalf("expected cleared session, got %d turns", count)
	}
	if count, _ := s.Count(ctx, "s2"); count != 1 {
		t.Fatalf("clearing one session must not touch another")
	}
}

func TestInMemoryStoreRejectsInvalidEntries(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	if err := s.Append(ctx, nil); err == nil {
		t.Fatalf("expected error for nil entry")
	}
	if err := s.Append(ctx, &history.Entry{Question: "q"}); err == nil {
		t.Fatalf("expected error for missing session id")
	}
}

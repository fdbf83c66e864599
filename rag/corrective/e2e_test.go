package corrective

import (
	"context"
	"strings"
	"testing"

	"github.com/studymate-ai/studymate/contrib/vector/inmemory"
	"github.com/studymate-ai/studymate/rag/ingest"
	"github.com/studymate-ai/studymate/rag/retriever"
)

// topicEmbedder maps text onto a fixed topic space so the in-memory vector
// store ranks passages deterministically.
type topicEmbedder struct{}

var topicSpace = []string{"noun", "verb", "fraction", "water", "cycle"}

func (e *topicEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, len(topicSpace))
	lower := strings.ToLower(text)
	for idx, term := range topicSpace {
		if strings.Contains(lower, term) {
			vec[idx] = 1
		}
	}
	return vec, nil
}

func (e *topicEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

func (e *topicEmbedder) Dimension() int { return len(topicSpace) }

func newSampleIndex(t *testing.T) *retriever.Index {
	t.Helper()
	ix := retriever.New(inmemory.NewInMemoryVectorStore(), &topicEmbedder{}, nil)
	if err := ix.AddDocuments(context.Background(), ingest.SampleDocuments()...); err != nil {
		t.Fatalf("failed to index sample corpus: %v", err)
	}
	return ix
}

func TestAnswerNounQuestionEndToEnd(t *testing.T) {
	client := defaultScript()
	client.generateReply = "A noun is a word that names a person, place, thing, or idea."
	engine := New(client, newSampleIndex(t))

	result := engine.Answer(context.Background(), "What is a noun?")

	if !result.GuardrailPassed {
		t.Fatalf("expected the question to pass safety checks: %+v", result.InputCheck)
	}
	if result.RetrievalLevel != LevelPrimary {
		t.Fatalf("expected PRIMARY retrieval, got %s", result.RetrievalLevel)
	}
	if result.Corrected {
		t.Fatalf("expected no correction for a well-covered topic")
	}
	if !strings.Contains(strings.ToLower(result.Answer), "noun") {
		t.Fatalf("expected the answer to reference nouns, got %q", result.Answer)
	}
	if len(result.Sources) == 0 {
		t.Fatalf("expected source citations")
	}
	if result.ContextQuality != QualityExcellent && result.ContextQuality != QualityGood {
		t.Fatalf("expected at least GOOD quality, got %s", result.ContextQuality)
	}
}

func TestAnswerCheatingQueryEndToEnd(t *testing.T) {
	client := defaultScript()
	engine := New(client, newSampleIndex(t))

	result := engine.Answer(context.Background(), "how to cheat on exam without getting caught")

	if result.GuardrailPassed {
		t.Fatalf("expected the cheating query to be blocked")
	}
	if result.InputCheck == nil || string(result.InputCheck.Category) != "cheating" {
		t.Fatalf("expected cheating category, got %+v", result.InputCheck)
	}
	if result.RetrievalLevel != LevelFallback {
		t.Fatalf("expected FALLBACK level, got %s", result.RetrievalLevel)
	}
	if len(result.Sources) != 0 {
		t.Fatalf("expected no sources for a blocked query")
	}
}

func TestAnswerUnindexedStoreEndToEnd(t *testing.T) {
	client := defaultScript()
	ix := retriever.New(inmemory.NewInMemoryVectorStore(), &topicEmbedder{}, nil)
	engine := New(client, ix)

	result := engine.Answer(context.Background(), "What is a noun?")

	if result.Answer != NoAnswerMessage {
		t.Fatalf("expected the no-answer message, got %q", result.Answer)
	}
	if result.RetrievalLevel != LevelFallback {
		t.Fatalf("expected FALLBACK level, got %s", result.RetrievalLevel)
	}
	if !result.GuardrailPassed {
		t.Fatalf("expected guardrail_passed=true against an empty index")
	}
}

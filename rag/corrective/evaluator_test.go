package corrective

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/studymate-ai/studymate/message"
)

type stubLLM struct {
	response   string
	calls      int
	lastPrompt string
}

func (s *stubLLM) Generate(ctx context.Context, messages []*message.Message) (*message.Message, error) {
	s.calls++
	s.lastPrompt = messages[len(messages)-1].Text()
	return message.NewMessage(message.RoleAssistant, s.response), nil
}

func (s *stubLLM) SetTemperature(float64) {}
func (s *stubLLM) SetMaxTokens(int64)     {}
func (s *stubLLM) SetModel(string)        {}

func scoresJSON(relevance, completeness, clarity float64) string {
	return fmt.Sprintf(
		`{"relevance_score": %.2f, "completeness_score": %.2f, "clarity_score": %.2f, "reasoning": "test"}`,
		relevance, completeness, clarity)
}

func TestEvaluateEmptyContext(t *testing.T) {
	client := &stubLLM{response: scoresJSON(1, 1, 1)}
	e := NewEvaluator(client, Thresholds{})

	eval := e.Evaluate(context.Background(), "what is a noun?", "   \n ")
	if eval.Quality != QualityPoor {
		t.Fatalf("expected POOR on empty context, got %s", eval.Quality)
	}
	if !eval.NeedsCorrection {
		t.Fatalf("expected needs_correction on empty context")
	}
	if client.calls != 0 {
		t.Fatalf("expected no model call for empty context, got %d", client.calls)
	}
}

func TestEvaluateQualityTiers(t *testing.T) {
	cases := []struct {
		mean    float64
		want    QualityLevel
		correct bool
	}{
		{0.81, QualityExcellent, false},
		{0.80, QualityExcellent, false}, // boundary is inclusive
		{0.75, QualityGood, false},
		{0.60, QualityGood, false},
		{0.50, QualityFair, true},
		{0.40, QualityFair, true},
		{0.39, QualityPoor, true},
	}

	for _, tc := range cases {
		client := &stubLLM{response: scoresJSON(tc.mean, tc.mean, tc.mean)}
		e := NewEvaluator(client, Thresholds{})

		eval := e.Evaluate(context.Background(), "question", "some context")
		if eval.Quality != tc.want {
			t.Errorf("mean %.2f: expected %s, got %s", tc.mean, tc.want, eval.Quality)
		}
		if eval.NeedsCorrection != tc.correct {
			t.Errorf("mean %.2f: expected needs_correction=%t", tc.mean, tc.correct)
		}
	}
}

func TestEvaluateMixedScoresUseMean(t *testing.T) {
	// (0.9 + 0.6 + 0.75) / 3 = 0.75 -> GOOD
	client := &stubLLM{response: scoresJSON(0.9, 0.6, 0.75)}
	e := NewEvaluator(client, Thresholds{})

	eval := e.Evaluate(context.Background(), "question", "some context")
	if eval.Quality != QualityGood {
		t.Fatalf("expected GOOD for mean 0.75, got %s", eval.Quality)
	}
}

func TestEvaluateParseFailureDegradesToNeutral(t *testing.T) {
	client := &stubLLM{response: "I cannot respond with JSON today"}
	e := NewEvaluator(client, Thresholds{})

	eval := e.Evaluate(context.Background(), "question", "some context")
	if eval.Relevance != 0.5 || eval.Completeness != 0.5 || eval.Clarity != 0.5 {
		t.Fatalf("expected neutral 0.5 scores, got %+v", eval)
	}
	// Mean 0.5 lands in FAIR with the default thresholds.
	if eval.Quality != QualityFair || !eval.NeedsCorrection {
		t.Fatalf("expected FAIR/needs_correction on parse failure, got %s", eval.Quality)
	}
}

func TestEvaluateCustomThresholds(t *testing.T) {
	client := &stubLLM{response: scoresJSON(0.7, 0.7, 0.7)}
	e := NewEvaluator(client, Thresholds{Excellent: 0.9, Good: 0.75, Fair: 0.5})

	eval := e.Evaluate(context.Background(), "question", "some context")
	if eval.Quality != QualityFair {
		t.Fatalf("expected FAIR under raised thresholds, got %s", eval.Quality)
	}
}

func TestEvaluateTruncatesContextOnRuneBoundary(t *testing.T) {
	client := &stubLLM{response: scoresJSON(0.9, 0.9, 0.9)}
	e := NewEvaluator(client, Thresholds{})

	// 2100 bytes of a 3-byte rune; the byte limit of 2000 falls mid-rune.
	context3byte := strings.Repeat("世", 700)
	e.Evaluate(context.Background(), "question", context3byte)
	if client.calls != 1 {
		t.Fatalf("expected one evaluation call, got %d", client.calls)
	}
	if !utf8.ValidString(client.lastPrompt) {
		t.Fatalf("truncated context split a rune: prompt is not valid UTF-8")
	}
}

func TestEvaluateStripsCodeFences(t *testing.T) {
	client := &stubLLM{response: "```json\n" + scoresJSON(0.9, 0.9, 0.9) + "\n```"}
	e := NewEvaluator(client, Thresholds{})

	eval := e.Evaluate(context.Background(), "question", "some context")
	if eval.Quality != QualityExcellent {
		t.Fatalf("expected fenced JSON to parse, got %s with reasoning %q", eval.Quality, eval.Reasoning)
	}
}

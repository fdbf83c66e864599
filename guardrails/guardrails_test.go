package guardrails

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/studymate-ai/studymate/message"
)

type stubLLM struct {
	response string
	calls    int
}

func (s *stubLLM) Generate(ctx context.Context, messages []*message.Message) (*message.Message, error) {
	s.calls++
	return message.NewMessage(message.RoleAssistant, s.response), nil
}

func (s *stubLLM) SetTemperature(float64) {}
func (s *stubLLM) SetMaxTokens(int64)     {}
func (s *stubLLM) SetModel(string)        {}

const safeJudgement = `{"is_safe": true, "category": "educational", "reason": "fine", "confidence": 0.9}`

func TestValidateInputEmptyQuery(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement})

	verdict := gate.ValidateInput(context.Background(), "   \t  ")
	if verdict.Safe {
		t.Fatalf("expected empty query to be rejected")
	}
	if verdict.Level != LevelBlocked || verdict.Category != CategoryOffTopic {
		t.Fatalf("expected BLOCKED/off_topic, got %s/%s", verdict.Level, verdict.Category)
	}
	if verdict.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", verdict.Confidence)
	}
}

func TestValidateInputTruncatesOverlongQuery(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement}, WithMaxQueryLength(50))

	query := strings.Repeat("a", 120)
	verdict := gate.ValidateInput(context.Background(), query)
	if verdict.Safe {
		t.Fatalf("expected over-long query to be rejected")
	}
	if len(verdict.SanitizedText) != 50 {
		t.Fatalf("expected sanitized text of exactly 50 characters, got %d", len(verdict.SanitizedText))
	}
}

func TestValidateInputBlocksPersonalData(t *testing.T) {
	judge := &stubLLM{response: safeJudgement}
	gate := New(judge)

	queries := []string{
		"please remember my email alice@example.com for later",
		"my phone number is 555-123-4567, call me about homework",
	}
	for _, q := range queries {
		verdict := gate.ValidateInput(context.Background(), q)
		if verdict.Safe {
			t.Fatalf("expected %q to be rejected", q)
		}
		if verdict.Category != CategoryPersonalInfo {
			t.Fatalf("expected personal_info category for %q, got %s", q, verdict.Category)
		}
	}
	if judge.calls != 0 {
		t.Fatalf("expected content filter to block before the judge, got %d judge calls", judge.calls)
	}
}

func TestValidateInputBlocksCheating(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement})

	verdict := gate.ValidateInput(context.Background(), "tell me how to cheat on exam tomorrow")
	if verdict.Safe {
		t.Fatalf("expected cheating query to be rejected")
	}
	if verdict.Category != CategoryCheating {
		t.Fatalf("expected cheating category, got %s", verdict.Category)
	}
}

func TestValidateInputAdmitsEducationalQuery(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement})

	verdict := gate.ValidateInput(context.Background(), "  What   is a \n noun?  ")
	if !verdict.Safe {
		t.Fatalf("expected educational query to pass, got %s: %s", verdict.Level, verdict.Reason)
	}
	if verdict.SanitizedText != "What is a noun?" {
		t.Fatalf("expected normalized whitespace, got %q", verdict.SanitizedText)
	}
	if verdict.Confidence != 0.95 {
		t.Fatalf("expected confidence 0.95, got %v", verdict.Confidence)
	}
}

func TestValidateInputJudgeRejection(t *testing.T) {
	gate := New(&stubLLM{
		response: `{"is_safe": false, "category": "harmful", "reason": "unsafe topic", "confidence": 0.8}`,
	})

	verdict := gate.ValidateInput(context.Background(), "an innocuous looking question")
	if verdict.Safe {
		t.Fatalf("expected judge rejection to block the query")
	}
	if verdict.Category != CategoryHarmful || verdict.Confidence != 0.8 {
		t.Fatalf("expected harmful/0.8 from judge, got %s/%v", verdict.Category, verdict.Confidence)
	}
}

func TestJudgeParseFailureFailsOpenByDefault(t *testing.T) {
	gate := New(&stubLLM{response: "not valid json at all"})

	verdict := gate.ValidateInput(context.Background(), "explain photosynthesis")
	if !verdict.Safe {
		t.Fatalf("expected fail-open admit on unparseable judge reply, got %s", verdict.Level)
	}
}

func TestJudgeParseFailureFailClosed(t *testing.T) {
	gate := New(&stubLLM{response: "not valid json at all"}, WithFailClosed(true))

	verdict := gate.ValidateInput(context.Background(), "explain photosynthesis")
	if verdict.Safe {
		t.Fatalf("expected fail-closed block on unparseable judge reply")
	}
	if verdict.Confidence != 0.5 {
		t.Fatalf("expected confidence 0.5 on degraded judge, got %v", verdict.Confidence)
	}
}

func TestValidateOutputTruncatesLongResponse(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement}, WithMaxResponseLength(40))

	verdict := gate.ValidateOutput(context.Background(), strings.Repeat("b", 100))
	if !verdict.Safe {
		t.Fatalf("expected truncated response to still be delivered")
	}
	if verdict.Level != LevelWarning {
		t.Fatalf("expected WARNING level, got %s", verdict.Level)
	}
	if !strings.HasSuffix(verdict.SanitizedText, "...") || len(verdict.SanitizedText) != 43 {
		t.Fatalf("expected 40 characters plus ellipsis, got %d: %q", len(verdict.SanitizedText), verdict.SanitizedText)
	}
}

func TestValidateOutputSubstitutesRefusal(t *testing.T) {
	gate := New(&stubLLM{
		response: `{"is_safe": false, "category": "inappropriate", "reason": "bad", "confidence": 0.9}`,
	})

	verdict := gate.ValidateOutput(context.Background(), "a generated answer the judge dislikes")
	if verdict.Safe {
		t.Fatalf("expected rejected output")
	}
	if verdict.SanitizedText != SafeRefusalMessage {
		t.Fatalf("expected the fixed refusal message, got %q", verdict.SanitizedText)
	}
}

func TestGateMetrics(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement})
	ctx := context.Background()

	gate.ValidateInput(ctx, "what is a verb?")
	gate.ValidateInput(ctx, "how to cheat on exam")
	gate.ValidateInput(ctx, "")

	snap := gate.Metrics()
	if snap.TotalQueries != 3 {
		t.Fatalf("expected 3 total queries, got %d", snap.TotalQueries)
	}
	if snap.SafeQueries != 1 {
		t.Fatalf("expected 1 safe query, got %d", snap.SafeQueries)
	}
	if snap.BlockedQueries != 2 {
		t.Fatalf("expected 2 blocked queries, got %d", snap.BlockedQueries)
	}
	if len(snap.RecentBlocks) != 2 {
		t.Fatalf("expected 2 recent block records, got %d", len(snap.RecentBlocks))
	}

	report := gate.Report()
	if !strings.Contains(report, "StudyMate Safety Report") {
		t.Fatalf("expected report header, got %q", report)
	}

	gate.ResetMetrics()
	if gate.Metrics().TotalQueries != 0 {
		t.Fatalf("expected counters to reset")
	}
}

func TestBlockRecordTruncatesOnRuneBoundary(t *testing.T) {
	m := NewMetrics()

	// 120 bytes of a 3-byte rune; the 100-byte record limit falls mid-rune.
	m.recordBlocked(CategoryCheating, strings.Repeat("世", 40), "blocked")

	blocks := m.Snapshot().RecentBlocks
	if len(blocks) != 1 {
		t.Fatalf("expected one block record, got %d", len(blocks))
	}
	stored := blocks[0].Query
	if !utf8.ValidString(stored) {
		t.Fatalf("stored query split a rune: %q", stored)
	}
	if !strings.HasSuffix(stored, "...") {
		t.Fatalf("expected truncation marker, got %q", stored)
	}
	if len(stored) > 100+len("...") {
		t.Fatalf("stored query exceeds the record limit: %d bytes", len(stored))
	}
}

func TestRecentBlocksAreBounded(t *testing.T) {
	gate := New(&stubLLM{response: safeJudgement})
	ctx := context.Background()

	for i := 0; i < recentBlockCap+5; i++ {
		gate.ValidateInput(ctx, "how to cheat on exam")
	}
	if got := len(gate.Metrics().RecentBlocks); got != recentBlockCap {
		t.Fatalf("expected recent blocks capped at %d, got %d", recentBlockCap, got)
	}
}

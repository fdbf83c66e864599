// Package guardrails implements the safety gate wrapped around the RAG
// pipeline: a rule-based content filter, an LLM-backed policy judge for
// borderline cases, and running safety metrics. The gate validates both the
// user's question and the generated answer.
package guardrails

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/pkg/logging"
)

// Level represents the safety assessment of a piece of text.
type Level string

const (
	LevelSafe      Level = "SAFE"
	LevelWarning   Level = "WARNING"
	LevelDangerous Level = "DANGEROUS"
	LevelBlocked   Level = "BLOCKED"
)

// Category classifies why text was admitted or rejected.
type Category string

const (
	CategoryEducational   Category = "educational"
	CategoryInappropriate Category = "inappropriate"
	CategoryHarmful       Category = "harmful"
	CategoryMisleading    Category = "misleading"
	CategoryCheating      Category = "cheating"
	CategoryPersonalInfo  Category = "personal_info"
	CategoryOffTopic      Category = "off_topic"
)

// Verdict is the immutable admit/reject decision for one validation call.
type Verdict struct {
	Safe          bool          `json:"safe"`
	Level         Level         `json:"level"`
	Category      Category      `json:"category,omitempty"`
	Reason        string        `json:"reason"`
	SanitizedText string        `json:"sanitized_text"`
	Confidence    float64       `json:"confidence"`
	Elapsed       time.Duration `json:"elapsed"`
}

// SafeRefusalMessage replaces any generated answer the gate rejects. The
// offending text itself is never returned or stored.
const SafeRefusalMessage = "I'm sorry, but I can't provide that information. Let's focus on your studies!"

// Options configures a Gate.
type Options struct {
	MaxQueryLength    int
	MaxResponseLength int
	Enabled           bool
	FailClosed        bool
	Filter            *ContentFilter
}

// Option customises the gate.
type Option func(*Options)

// WithMaxQueryLength caps accepted input length (characters).
func WithMaxQueryLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxQueryLength = n
		}
	}
}

// WithMaxResponseLength caps accepted output length (characters).
func WithMaxResponseLength(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxResponseLength = n
		}
	}
}

// WithEnabled toggles the LLM policy judge; the rule-based filter always runs.
func WithEnabled(enabled bool) Option {
	return func(o *Options) {
		o.Enabled = enabled
	}
}

// WithFailClosed makes an unparseable judge response block instead of admit.
func WithFailClosed(failClosed bool) Option {
	return func(o *Options) {
		o.FailClosed = failClosed
	}
}

// WithFilter plugs in a customised content filter.
func WithFilter(f *ContentFilter) Option {
	return func(o *Options) {
		if f != nil {
			o.Filter = f
		}
	}
}

// Gate composes the content filter and the policy judge into a single
// validate-input / validate-output contract. One gate instance accumulates
// metrics for its lifetime; concurrent use is safe.
type Gate struct {
	filter  *ContentFilter
	judge   *PolicyJudge
	metrics *Metrics
	opts    Options
	logger  *slog.Logger
}

// New creates a gate. The client powers the policy judge; passing nil
// disables LLM judging and leaves only the rule-based filter.
func New(client llm.Client, opts ...Option) *Gate {
	options := Options{
		MaxQueryLength:    500,
		MaxResponseLength: 2000,
		Enabled:           true,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Filter == nil {
		options.Filter = NewContentFilter()
	}

	return &Gate{
		filter:  options.Filter,
		judge:   newPolicyJudge(client, options.FailClosed),
		metrics: NewMetrics(),
		opts:    options,
		logger:  logging.WithComponent("guardrails"),
	}
}

// ValidateInput checks a user query before any retrieval happens. Rejection
// paths, first match wins: empty text, over-length text, content filter
// families, then the LLM policy judge.
func (g *Gate) ValidateInput(ctx context.Context, query string) Verdict {
	start := time.Now()
	g.metrics.recordQuery()

	if strings.TrimSpace(query) == "" {
		verdict := Verdict{
			Level:         LevelBlocked,
			Category:      CategoryOffTopic,
			Reason:        "Empty query",
			SanitizedText: "",
			Confidence:    1.0,
			Elapsed:       time.Since(start),
		}
		g.metrics.recordBlocked(CategoryOffTopic, query, verdict.Reason)
		return verdict
	}

	if len(query) > g.opts.MaxQueryLength {
		verdict := Verdict{
			Level:         LevelBlocked,
			Category:      CategoryOffTopic,
			Reason:        "Query too long",
			SanitizedText: query[:g.opts.MaxQueryLength],
			Confidence:    1.0,
			Elapsed:       time.Since(start),
		}
		g.metrics.recordBlocked(CategoryOffTopic, query, verdict.Reason)
		return verdict
	}

	if match, ok := g.filter.Check(query); ok {
		g.logger.Warn("input blocked by content filter",
			"category", string(match.Category),
			"reason", match.Reason,
		)
		verdict := Verdict{
			Level:         LevelBlocked,
			Category:      match.Category,
			Reason:        match.Reason,
			SanitizedText: normalizeWhitespace(query),
			Confidence:    0.9,
			Elapsed:       time.Since(start),
		}
		g.metrics.recordBlocked(match.Category, query, match.Reason)
		return verdict
	}

	if g.opts.Enabled {
		judgement := g.judge.Check(ctx, query, llm.OpJudgeInput)
		if !judgement.IsSafe {
			g.logger.Warn("input blocked by policy judge",
				"category", judgement.Category,
				"reason", judgement.Reason,
			)
			category := parseCategory(judgement.Category)
			verdict := Verdict{
				Level:         LevelBlocked,
				Category:      category,
				Reason:        judgement.Reason,
				SanitizedText: normalizeWhitespace(query),
				Confidence:    judgement.Confidence,
				Elapsed:       time.Since(start),
			}
			g.metrics.recordBlocked(category, query, judgement.Reason)
			return verdict
		}
	}

	g.metrics.recordSafe()
	return Verdict{
		Safe:          true,
		Level:         LevelSafe,
		Reason:        "Query passed all safety checks",
		SanitizedText: normalizeWhitespace(query),
		Confidence:    0.95,
		Elapsed:       time.Since(start),
	}
}

// ValidateOutput checks a generated answer before it reaches the user. An
// over-long answer is truncated with a warning; a policy violation replaces
// the answer with the fixed refusal message.
func (g *Gate) ValidateOutput(ctx context.Context, response string) Verdict {
	start := time.Now()

	if len(response) > g.opts.MaxResponseLength {
		g.metrics.recordWarning()
		return Verdict{
			Safe:          true,
			Level:         LevelWarning,
			Category:      CategoryOffTopic,
			Reason:        "Response too long, truncated",
			SanitizedText: response[:g.opts.MaxResponseLength] + "...",
			Confidence:    0.8,
			Elapsed:       time.Since(start),
		}
	}

	if match, ok := g.filter.Check(response); ok {
		g.logger.Warn("output blocked by content filter", "category", string(match.Category))
		g.metrics.recordBlocked(match.Category, response, match.Reason)
		return Verdict{
			Level:         LevelBlocked,
			Category:      match.Category,
			Reason:        match.Reason,
			SanitizedText: SafeRefusalMessage,
			Confidence:    0.9,
			Elapsed:       time.Since(start),
		}
	}

	if g.opts.Enabled {
		judgement := g.judge.Check(ctx, response, llm.OpJudgeOutput)
		if !judgement.IsSafe {
			g.logger.Warn("output blocked by policy judge", "category", judgement.Category)
			category := parseCategory(judgement.Category)
			g.metrics.recordBlocked(category, response, judgement.Reason)
			return Verdict{
				Level:         LevelBlocked,
				Category:      category,
				Reason:        judgement.Reason,
				SanitizedText: SafeRefusalMessage,
				Confidence:    judgement.Confidence,
				Elapsed:       time.Since(start),
			}
		}
	}

	return Verdict{
		Safe:          true,
		Level:         LevelSafe,
		Reason:        "Response passed all safety checks",
		SanitizedText: response,
		Confidence:    0.95,
		Elapsed:       time.Since(start),
	}
}

// Metrics returns a snapshot of the gate's running counters.
func (g *Gate) Metrics() MetricsSnapshot {
	return g.metrics.Snapshot()
}

// Report returns a human-readable safety report.
func (g *Gate) Report() string {
	return g.metrics.Report()
}

// ResetMetrics clears the running counters.
func (g *Gate) ResetMetrics() {
	g.metrics.Reset()
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

func parseCategory(raw string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryEducational:
		return CategoryEducational
	case CategoryHarmful:
		return CategoryHarmful
	case CategoryMisleading:
		return CategoryMisleading
	case CategoryCheating:
		return CategoryCheating
	case CategoryPersonalInfo:
		return CategoryPersonalInfo
	case CategoryOffTopic:
		return CategoryOffTopic
	default:
		return CategoryInappropriate
	}
}

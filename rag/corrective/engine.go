package corrective

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/studymate-ai/studymate/guardrails"
	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/pkg/logging"
)

const tracerName = "studymate/rag/corrective"

// generationFailureMessage is shown when the answer model itself errors.
const generationFailureMessage = "I ran into a problem while writing your answer. Please try asking again in a moment."

// Engine drives one question through safety validation, escalating
// retrieval, context evaluation, answer generation, and output validation.
// It always returns a Result; collaborator failures degrade to documented
// defaults instead of aborting the request.
type Engine struct {
	client    llm.Client
	gate      *guardrails.Gate
	retrieval *strategies
	evaluator *Evaluator
	refiner   *Refiner
	config    *Config
	tracer    trace.Tracer
	logger    *slog.Logger
}

// New builds an engine over the given generation client and search index.
func New(client llm.Client, index SearchIndex, opts ...Option) *Engine {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(config)
	}

	gate := config.Gate
	if gate == nil {
		gate = guardrails.New(client)
	}

	logger := logging.WithComponent("corrective")
	return &Engine{
		client: client,
		gate:   gate,
		retrieval: &strategies{
			index:  index,
			client: client,
			topK:   config.TopK,
			logger: logger,
		},
		evaluator: NewEvaluator(client, config.Thresholds),
		refiner:   NewRefiner(client),
		config:    config,
		tracer:    otel.Tracer(tracerName),
		logger:    logger,
	}
}

// Answer runs the full pipeline for one question. Safe for concurrent use;
// all per-question state lives on the stack.
func (e *Engine) Answer(ctx context.Context, query string) *Result {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "corrective.Answer",
		trace.WithAttributes(attribute.Int("query.length", len(query))))
	defer span.End()

	in := e.gate.ValidateInput(ctx, query)
	if !in.Safe {
		e.logger.Warn("query rejected", "category", string(in.Category))
		span.SetAttributes(attribute.String("retrieval.level", string(LevelFallback)))
		return &Result{
			Answer:          in.Reason,
			ContextQuality:  QualityPoor,
			RetrievalLevel:  LevelFallback,
			GuardrailPassed: false,
			Confidence:      confidenceLabel(QualityPoor),
			Elapsed:         time.Since(start),
			InputCheck:      &in,
		}
	}
	question := in.SanitizedText

	passages := e.retrieval.primary(ctx, question)
	if len(passages) == 0 {
		e.logger.Info("no passages for query, returning without escalation")
		span.SetAttributes(attribute.String("retrieval.level", string(LevelFallback)))
		return &Result{
			Answer:          NoAnswerMessage,
			ContextQuality:  QualityPoor,
			RetrievalLevel:  LevelFallback,
			GuardrailPassed: true,
			Confidence:      confidenceLabel(QualityPoor),
			Elapsed:         time.Since(start),
			InputCheck:      &in,
		}
	}

	level := LevelPrimary
	corrected := false
	eval := e.evaluator.Evaluate(ctx, question, contextFrom(passages))

	if eval.NeedsCorrection {
		level = LevelSecondary
		passages = e.retrieval.secondary(ctx, question)
		eval = e.evaluator.Evaluate(ctx, question, contextFrom(passages))
	}
	if eval.NeedsCorrection && level == LevelSecondary {
		refined := e.refiner.Refine(ctx, question, eval)
		e.logger.Info("escalating with refined query", "refined", refined)
		corrected = true

		level = LevelTertiary
		passages = e.retrieval.tertiary(ctx, refined)
		eval = e.evaluator.Evaluate(ctx, question, contextFrom(passages))

		if eval.NeedsCorrection {
			// Terminal attempt; the result is used whatever its quality.
			level = LevelQuaternary
			passages = e.retrieval.quaternary(ctx, refined, question)
			eval = e.evaluator.Evaluate(ctx, question, contextFrom(passages))
		}
	}

	answer := e.generate(ctx, question, contextFrom(passages))

	out := e.gate.ValidateOutput(ctx, answer)
	if !out.Safe {
		e.logger.Warn("generated answer rejected", "category", string(out.Category))
	}

	span.SetAttributes(
		attribute.String("retrieval.level", string(level)),
		attribute.String("context.quality", string(eval.Quality)),
		attribute.Bool("corrected", corrected),
	)

	return &Result{
		Answer:          out.SanitizedText,
		ContextQuality:  eval.Quality,
		RetrievalLevel:  level,
		Sources:         sourcesFrom(passages),
		Corrected:       corrected,
		GuardrailPassed: out.Safe,
		Confidence:      confidenceLabel(eval.Quality),
		Completeness:    eval.Completeness * 100,
		Specificity:     eval.Relevance * 100,
		Elapsed:         time.Since(start),
		InputCheck:      &in,
		OutputCheck:     &out,
	}
}

func (e *Engine) generate(ctx context.Context, question, contextText string) string {
	prompt := fmt.Sprintf(generationPromptTemplate, contextText, question)
	answer, err := llm.Complete(ctx, e.client, llm.OpGenerate, e.config.SystemPrompt, prompt)
	if err != nil {
		e.logger.Error("answer generation failed", "error", err)
		return generationFailureMessage
	}
	return answer
}

// Metrics exposes the safety gate's running counters.
func (e *Engine) Metrics() guardrails.MetricsSnapshot {
	return e.gate.Metrics()
}

// SafetyReport returns the gate's human-readable report.
func (e *Engine) SafetyReport() string {
	return e.gate.Report()
}

// ResetMetrics clears the gate's counters and recent-rejection log.
func (e *Engine) ResetMetrics() {
	e.gate.ResetMetrics()
}

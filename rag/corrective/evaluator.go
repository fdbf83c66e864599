package corrective

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/pkg/logging"
)

// evaluationContextLimit caps how much context is shown to the judge model.
const evaluationContextLimit = 2000

// Thresholds hold the tier cutoffs applied to the mean of the three scores.
type Thresholds struct {
	Excellent float64
	Good      float64
	Fair      float64
}

// DefaultThresholds returns the standard 0.8/0.6/0.4 cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Excellent: 0.8, Good: 0.6, Fair: 0.4}
}

// Evaluator scores retrieved context against the query on relevance,
// completeness, and clarity, and derives the quality tier.
type Evaluator struct {
	client     llm.Client
	thresholds Thresholds
	logger     *slog.Logger
}

// NewEvaluator creates an evaluator backed by the given client.
func NewEvaluator(client llm.Client, thresholds Thresholds) *Evaluator {
	if thresholds.Excellent == 0 && thresholds.Good == 0 && thresholds.Fair == 0 {
		thresholds = DefaultThresholds()
	}
	return &Evaluator{
		client:     client,
		thresholds: thresholds,
		logger:     logging.WithComponent("evaluator"),
	}
}

type evaluationScores struct {
	Relevance    float64 `json:"relevance_score"`
	Completeness float64 `json:"completeness_score"`
	Clarity      float64 `json:"clarity_score"`
	Reasoning    string  `json:"reasoning"`
}

// Evaluate scores the context. Empty context short-circuits to POOR without a
// model call; a failed or unparseable judge reply degrades every axis to the
// neutral 0.5 rather than to success or failure.
func (e *Evaluator) Evaluate(ctx context.Context, query, contextText string) Evaluation {
	if strings.TrimSpace(contextText) == "" {
		return Evaluation{
			Quality:         QualityPoor,
			NeedsCorrection: true,
			Reasoning:       "No context retrieved",
		}
	}

	if len(contextText) > evaluationContextLimit {
		cut := evaluationContextLimit
		for cut > 0 && !utf8.RuneStart(contextText[cut]) {
			cut--
		}
		contextText = contextText[:cut]
	}
	prompt := fmt.Sprintf(evaluationPromptTemplate, query, contextText)

	scores, err := llm.CompleteJSON[evaluationScores](ctx, e.client, llm.OpEvaluate, "", prompt)
	if err != nil {
		e.logger.Warn("evaluation degraded to neutral scores", "error", err)
		scores = &evaluationScores{
			Relevance:    0.5,
			Completeness: 0.5,
			Clarity:      0.5,
			Reasoning:    "Evaluation parsing failed",
		}
	}

	return e.grade(*scores)
}

// grade derives the tier from the unweighted mean of the three scores.
func (e *Evaluator) grade(scores evaluationScores) Evaluation {
	mean := (scores.Relevance + scores.Completeness + scores.Clarity) / 3

	var quality QualityLevel
	switch {
	case mean >= e.thresholds.Excellent:
		quality = QualityExcellent
	case mean >= e.thresholds.Good:
		quality = QualityGood
	case mean >= e.thresholds.Fair:
		quality = QualityFair
	default:
		quality = QualityPoor
	}

	return Evaluation{
		Relevance:       scores.Relevance,
		Completeness:    scores.Completeness,
		Clarity:         scores.Clarity,
		Quality:         quality,
		NeedsCorrection: quality == QualityFair || quality == QualityPoor,
		Reasoning:       scores.Reasoning,
	}
}

package corrective

import (
	"time"

	"github.com/studymate-ai/studymate/guardrails"
)

// QualityLevel grades how well retrieved context supports a question.
type QualityLevel string

const (
	QualityExcellent QualityLevel = "EXCELLENT"
	QualityGood      QualityLevel = "GOOD"
	QualityFair      QualityLevel = "FAIR"
	QualityPoor      QualityLevel = "POOR"
)

// RetrievalLevel records which escalation rung produced the final context.
type RetrievalLevel string

const (
	LevelPrimary    RetrievalLevel = "PRIMARY"
	LevelSecondary  RetrievalLevel = "SECONDARY"
	LevelTertiary   RetrievalLevel = "TERTIARY"
	LevelQuaternary RetrievalLevel = "QUATERNARY"
	LevelFallback   RetrievalLevel = "FALLBACK"
)

// Evaluation is the context evaluator's scoring of one retrieval attempt.
type Evaluation struct {
	Relevance       float64      `json:"relevance_score"`
	Completeness    float64      `json:"completeness_score"`
	Clarity         float64      `json:"clarity_score"`
	Quality         QualityLevel `json:"quality_level"`
	NeedsCorrection bool         `json:"needs_correction"`
	Reasoning       string       `json:"reasoning"`
}

// Result is the terminal output for one question. It is created once per
// query and never mutated after construction.
type Result struct {
	Answer          string              `json:"answer"`
	ContextQuality  QualityLevel        `json:"context_quality"`
	RetrievalLevel  RetrievalLevel      `json:"retrieval_level"`
	Sources         []string            `json:"sources"`
	Corrected       bool                `json:"was_corrected"`
	GuardrailPassed bool                `json:"guardrail_passed"`
	Confidence      string              `json:"confidence"`
	Completeness    float64             `json:"completeness_score"` // 0-100
	Specificity     float64             `json:"specificity_score"`  // 0-100
	Elapsed         time.Duration       `json:"processing_time"`
	InputCheck      *guardrails.Verdict `json:"input_check"`
	OutputCheck     *guardrails.Verdict `json:"output_check,omitempty"`
}

// confidenceLabel maps a quality tier to the label shown alongside answers.
func confidenceLabel(quality QualityLevel) string {
	switch quality {
	case QualityExcellent:
		return "High"
	case QualityGood:
		return "Good"
	case QualityFair:
		return "Medium"
	default:
		return "Low"
	}
}

package guardrails

import (
	"context"
	"fmt"

	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/pkg/logging"
)

const judgeInputPrompt = `Analyze this user query for safety and appropriateness in an educational context.

Query: %s

Evaluate:
1. Is this query safe for an educational AI assistant?
2. Does it promote academic integrity?
3. Is it appropriate for students?
4. Could it lead to harmful or inappropriate responses?

Respond in JSON only:
{"is_safe": true/false, "category": "educational/inappropriate/harmful/misleading/cheating/personal_info/off_topic", "reason": "brief explanation", "confidence": 0.0-1.0}`

const judgeOutputPrompt = `Review this AI response for safety and appropriateness.

Response: %s

Check if the response:
- Contains harmful information
- Promotes inappropriate behavior
- Includes personal information
- Violates educational guidelines

Respond in JSON only:
{"is_safe": true/false, "category": "educational/inappropriate/harmful/misleading/cheating/personal_info/off_topic", "reason": "brief explanation", "confidence": 0.0-1.0}`

// Judgement is the policy judge's structured verdict.
type Judgement struct {
	IsSafe     bool    `json:"is_safe"`
	Category   string  `json:"category"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

// PolicyJudge asks an LLM to make the final admit/reject call on text the
// rule-based filter let through.
type PolicyJudge struct {
	client     llm.Client
	failClosed bool
}

func newPolicyJudge(client llm.Client, failClosed bool) *PolicyJudge {
	return &PolicyJudge{client: client, failClosed: failClosed}
}

// Check classifies the text. A missing client, a failed call, or an
// unparseable reply all degrade to the configured default rather than
// erroring: fail-open admits with confidence 0.5, fail-closed blocks.
func (j *PolicyJudge) Check(ctx context.Context, text string, op llm.Op) Judgement {
	if j.client == nil {
		return j.fallback("policy judge not configured")
	}

	var prompt string
	if op == llm.OpJudgeOutput {
		prompt = fmt.Sprintf(judgeOutputPrompt, text)
	} else {
		prompt = fmt.Sprintf(judgeInputPrompt, text)
	}

	judgement, err := llm.CompleteJSON[Judgement](ctx, j.client, op, "", prompt)
	if err != nil {
		logging.WithComponent("guardrails").Warn("policy judge degraded",
			"op", string(op),
			"fail_closed", j.failClosed,
			"error", err,
		)
		return j.fallback("judge response could not be parsed")
	}
	return *judgement
}

func (j *PolicyJudge) fallback(reason string) Judgement {
	if j.failClosed {
		return Judgement{
			IsSafe:     false,
			Category:   string(CategoryInappropriate),
			Reason:     reason + "; blocking by policy",
			Confidence: 0.5,
		}
	}
	return Judgement{
		IsSafe:     true,
		Category:   string(CategoryEducational),
		Reason:     reason + "; defaulting to safe",
		Confidence: 0.5,
	}
}

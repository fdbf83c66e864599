package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/studymate-ai/studymate/message"
	"github.com/studymate-ai/studymate/pkg/logging"
)

// Op tags one of the model-backed operations in the pipeline. Every LLM call
// in the system goes through Complete or CompleteJSON with its tag, so the
// call/parse plumbing lives in exactly one place.
type Op string

const (
	OpJudgeInput        Op = "judge_input"
	OpJudgeOutput       Op = "judge_output"
	OpEvaluate          Op = "evaluate"
	OpRefine            Op = "refine"
	OpExpandSemantic    Op = "expand_semantic"
	OpExpandCrossDomain Op = "expand_cross_domain"
	OpGenerate          Op = "generate"
)

// Complete runs one model operation and returns the trimmed text reply.
func Complete(ctx context.Context, client Client, op Op, system, user string) (string, error) {
	if client == nil {
		return "", fmt.Errorf("llm op %s: client is not configured", op)
	}

	msgs := make([]*message.Message, 0, 2)
	if system != "" {
		msgs = append(msgs, message.NewMessage(message.RoleSystem, system))
	}
	msgs = append(msgs, message.NewMessage(message.RoleUser, user))

	start := time.Now()
	resp, err := client.Generate(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("llm op %s: %w", op, err)
	}
	if resp == nil {
		return "", fmt.Errorf("llm op %s: empty response", op)
	}
	logging.WithComponent("llm").Debug("operation completed",
		"op", string(op),
		"elapsed", time.Since(start),
	)
	return strings.TrimSpace(resp.Text()), nil
}

// CompleteJSON runs one model operation and unmarshals the reply into T after
// stripping code fences. Callers decide how to degrade when it fails.
func CompleteJSON[T any](ctx context.Context, client Client, op Op, system, user string) (*T, error) {
	raw, err := Complete(ctx, client, op, system, user)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal([]byte(StripFences(raw)), &out); err != nil {
		return nil, fmt.Errorf("llm op %s: decode JSON: %w", op, err)
	}
	return &out, nil
}

// StripFences removes a surrounding markdown code fence from model output.
func StripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = trimmed[3:]
		trimmed = strings.TrimPrefix(trimmed, "json")
		trimmed = strings.TrimPrefix(trimmed, "JSON")
		if idx := strings.Index(trimmed, "```"); idx >= 0 {
			trimmed = trimmed[:idx]
		}
	}
	return strings.TrimSpace(trimmed)
}

package corrective

import (
	"context"
	"fmt"
	"strings"

	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/pkg/logging"
)

// Refiner rewrites a query when retrieved context was judged inadequate,
// guided by the evaluator's diagnosis.
type Refiner struct {
	client llm.Client
}

// NewRefiner creates a refiner backed by the given client.
func NewRefiner(client llm.Client) *Refiner {
	return &Refiner{client: client}
}

// Refine produces a single rewritten query. Any failure returns the original
// query unchanged; refinement is an optimisation, never a gate.
func (r *Refiner) Refine(ctx context.Context, query string, eval Evaluation) string {
	prompt := fmt.Sprintf(refinePromptTemplate, query, eval.Reasoning)

	improved, err := llm.Complete(ctx, r.client, llm.OpRefine, "", prompt)
	if err != nil || strings.TrimSpace(improved) == "" {
		logging.WithComponent("refiner").Warn("refinement failed, keeping original query", "error", err)
		return query
	}
	return strings.TrimSpace(improved)
}

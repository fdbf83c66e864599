package corrective

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/rag/document"
)

// SearchIndex is the retrieval surface the engine escalates against.
type SearchIndex interface {
	Search(ctx context.Context, query string, k int) ([]document.Passage, error)
}

// strategies holds the four escalating retrieval attempts. Each rung widens
// the result window and reformulates the query more aggressively than the
// last. Failures never propagate; a rung that errors yields no passages and
// the engine moves on.
type strategies struct {
	index  SearchIndex
	client llm.Client
	topK   int
	logger *slog.Logger
}

// primary searches with the student's query verbatim.
func (s *strategies) primary(ctx context.Context, query string) []document.Passage {
	return s.search(ctx, LevelPrimary, query, s.topK)
}

// secondary appends fixed educational keywords to the query. No model call.
func (s *strategies) secondary(ctx context.Context, query string) []document.Passage {
	expanded := query + " " + keywordExpansionTerms
	return s.search(ctx, LevelSecondary, expanded, s.topK+2)
}

// tertiary asks the model to expand the (already refined) query with related
// concepts and synonyms. If expansion fails the refined query is used as is.
func (s *strategies) tertiary(ctx context.Context, query string) []document.Passage {
	expanded, err := llm.Complete(ctx, s.client, llm.OpExpandSemantic, "", fmt.Sprintf(semanticExpandPromptTemplate, query))
	if err != nil || strings.TrimSpace(expanded) == "" {
		s.logger.Warn("semantic expansion failed, searching with unexpanded query", "error", err)
		expanded = query
	}
	return s.search(ctx, LevelTertiary, strings.TrimSpace(expanded), s.topK+4)
}

// quaternary pulls in analogous concepts from other subjects, derived from
// the refined query, and searches with the original question and the
// cross-domain terms together.
func (s *strategies) quaternary(ctx context.Context, refined, original string) []document.Passage {
	crossed, err := llm.Complete(ctx, s.client, llm.OpExpandCrossDomain, "", fmt.Sprintf(crossDomainPromptTemplate, refined))
	combined := original
	if err != nil || strings.TrimSpace(crossed) == "" {
		s.logger.Warn("cross-domain expansion failed, searching with original query", "error", err)
	} else {
		combined = original + " " + strings.TrimSpace(crossed)
	}
	return s.search(ctx, LevelQuaternary, combined, s.topK+6)
}

func (s *strategies) search(ctx context.Context, level RetrievalLevel, query string, k int) []document.Passage {
	passages, err := s.index.Search(ctx, query, k)
	if err != nil {
		s.logger.Warn("retrieval failed", "level", level, "error", err)
		return nil
	}
	s.logger.Debug("retrieval complete", "level", level, "passages", len(passages))
	return passages
}

// contextFrom joins passage contents into the block handed to the evaluator
// and generator.
func contextFrom(passages []document.Passage) string {
	parts := make([]string, 0, len(passages))
	for _, p := range passages {
		parts = append(parts, p.Content)
	}
	return strings.Join(parts, "\n\n")
}

// sourcesFrom collects the distinct source locators in retrieval order.
func sourcesFrom(passages []document.Passage) []string {
	seen := make(map[string]struct{}, len(passages))
	sources := make([]string, 0, len(passages))
	for _, p := range passages {
		if p.Source == "" {
			continue
		}
		if _, ok := seen[p.Source]; ok {
			continue
		}
		seen[p.Source] = struct{}{}
		sources = append(sources, p.Source)
	}
	return sources
}

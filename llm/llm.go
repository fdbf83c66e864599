// Package llm defines the client contract shared by every LLM-backed component:
// the policy judge, the context evaluator, the query refiner and expander, and
// final answer generation. Provider adapters live under contrib/provider.
package llm

import (
	"context"

	"github.com/studymate-ai/studymate/message"
)

// Client defines the interface for LLM providers
type Client interface {
	// Generate generates a response from the LLM
	Generate(ctx context.Context, messages []*message.Message) (*message.Message, error)

	// SetTemperature updates the temperature setting for generation
	SetTemperature(temp float64)

	// SetMaxTokens updates the maximum tokens limit for generation
	SetMaxTokens(max int64)

	// SetModel updates the model to use for generation
	SetModel(model string)
}

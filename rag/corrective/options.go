package corrective

import (
	"github.com/studymate-ai/studymate/guardrails"
)

// Config collects the tunables of the engine.
type Config struct {
	// TopK is the base result-window size for the primary strategy. The
	// escalating strategies widen it by fixed increments.
	TopK int

	// SystemPrompt frames the answer-generation call.
	SystemPrompt string

	// Thresholds are the quality-tier boundaries used by the evaluator.
	Thresholds Thresholds

	// Gate overrides the default safety gate built from the engine's client.
	Gate *guardrails.Gate
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		TopK:         10,
		SystemPrompt: defaultSystemPrompt,
		Thresholds:   DefaultThresholds(),
	}
}

// Option mutates the engine configuration.
type Option func(*Config)

// WithTopK sets the base number of passages requested per retrieval.
func WithTopK(k int) Option {
	return func(c *Config) {
		if k > 0 {
			c.TopK = k
		}
	}
}

// WithSystemPrompt replaces the default persona for answer generation.
func WithSystemPrompt(prompt string) Option {
	return func(c *Config) {
		if prompt != "" {
			c.SystemPrompt = prompt
		}
	}
}

// WithThresholds replaces the default quality-tier boundaries.
func WithThresholds(t Thresholds) Option {
	return func(c *Config) {
		c.Thresholds = t
	}
}

// WithGate installs a preconfigured safety gate instead of the default one.
func WithGate(gate *guardrails.Gate) Option {
	return func(c *Config) {
		c.Gate = gate
	}
}

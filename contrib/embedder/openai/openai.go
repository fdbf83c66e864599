package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/studymate-ai/studymate/vector"
)

// Config holds OpenAI embedding configuration
type Config struct {
	APIKey    string
	BaseURL   string
	Model     string
	Dimension int
}

// DefaultConfig returns default embedding configuration
func DefaultConfig() *Config {
	return &Config{
		Model:     string(openaisdk.EmbeddingModelTextEmbedding3Small),
		Dimension: 1536,
	}
}

// Embedder implements the vector.Embedder interface for OpenAI
type Embedder struct {
	config *Config
	client openaisdk.Client
}

var _ vector.Embedder = (*Embedder)(nil)

// New creates a new OpenAI embedder using the official SDK
func New(config *Config) *Embedder {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Model == "" {
		config.Model = string(openaisdk.EmbeddingModelTextEmbedding3Small)
	}
	if config.Dimension <= 0 {
		config.Dimension = 1536
	}

	options := []option.RequestOption{option.WithAPIKey(config.APIKey)}
	if strings.TrimSpace(config.BaseURL) != "" {
		options = append(options, option.WithBaseURL(config.BaseURL))
	}
	client := openaisdk.NewClient(options...)

	return &Embedder{
		config: config,
		client: client,
	}
}

// Dimension implements vector.Embedder
func (e *Embedder) Dimension() int {
	return e.config.Dimension
}

// Embed implements vector.Embedder
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.embedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("no embedding returned")
	}
	return vectors[0], nil
}

// EmbedBatch implements vector.Embedder
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return e.embedBatch(ctx, texts)
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	params := openaisdk.EmbeddingNewParams{
		Model: openaisdk.EmbeddingModel(e.config.Model),
		Input: openaisdk.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		},
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	out := make([][]float32, len(resp.Data))
	for i, emb := range resp.Data {
		out[i] = fitVector(emb.Embedding, e.config.Dimension)
	}
	return out, nil
}

// fitVector pads or truncates the API vector to the configured dimension so
// stored embeddings stay comparable even when the model's native width differs.
func fitVector(input []float64, dimension int) []float32 {
	vec := make([]float32, dimension)
	for i := 0; i < len(input) && i < dimension; i++ {
		vec[i] = float32(input[i])
	}
	return vec
}

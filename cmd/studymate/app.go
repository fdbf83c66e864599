package main

import (
	"context"
	"fmt"

	"github.com/studymate-ai/studymate/config"
	openaiembed "github.com/studymate-ai/studymate/contrib/embedder/openai"
	claudeprov "github.com/studymate-ai/studymate/contrib/provider/claude"
	geminiprov "github.com/studymate-ai/studymate/contrib/provider/gemini"
	openaiprov "github.com/studymate-ai/studymate/contrib/provider/openai"
	"github.com/studymate-ai/studymate/contrib/vector/inmemory"
	"github.com/studymate-ai/studymate/contrib/vector/pg"
	"github.com/studymate-ai/studymate/guardrails"
	"github.com/studymate-ai/studymate/history"
	histstore "github.com/studymate-ai/studymate/history/store"
	"github.com/studymate-ai/studymate/llm"
	"github.com/studymate-ai/studymate/pkg/telemetry"
	"github.com/studymate-ai/studymate/rag/chunking"
	"github.com/studymate-ai/studymate/rag/corrective"
	"github.com/studymate-ai/studymate/rag/retriever"
	"github.com/studymate-ai/studymate/vector"
)

// app wires the configured provider, index, engine, and transcript store
// for one CLI invocation.
type app struct {
	cfg      *config.Config
	client   llm.Client
	index    *retriever.Index
	engine   *corrective.Engine
	history  history.Store
	shutdown func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	shutdown, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    "studymate",
		ServiceVersion: version,
		Endpoint:       cfg.TelemetryEndpoint,
		Disable:        !cfg.TelemetryEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	client, err := newProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	client.SetTemperature(cfg.Temperature)
	client.SetMaxTokens(cfg.MaxTokens)

	store, err := newVectorStore(cfg)
	if err != nil {
		return nil, err
	}
	chunker, err := newChunker(cfg)
	if err != nil {
		return nil, err
	}

	embedder := openaiembed.New(&openaiembed.Config{
		APIKey:    cfg.APIKey,
		Model:     cfg.EmbeddingModel,
		Dimension: cfg.EmbeddingDimension,
	})
	index := retriever.New(store, embedder, chunker)

	gate := guardrails.New(client,
		guardrails.WithMaxQueryLength(cfg.MaxQueryLength),
		guardrails.WithMaxResponseLength(cfg.MaxResponseLength),
		guardrails.WithEnabled(cfg.GuardrailsEnabled),
		guardrails.WithFailClosed(cfg.FailClosed),
	)

	engine := corrective.New(client, index,
		corrective.WithTopK(cfg.TopK),
		corrective.WithThresholds(corrective.Thresholds{
			Excellent: cfg.ThresholdExcellent,
			Good:      cfg.ThresholdGood,
			Fair:      cfg.ThresholdFair,
		}),
		corrective.WithGate(gate),
	)

	transcripts, err := newHistoryStore(cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		client:   client,
		index:    index,
		engine:   engine,
		history:  transcripts,
		shutdown: shutdown,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if a.shutdown != nil {
		_ = a.shutdown(ctx)
	}
}

func newProvider(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch cfg.Provider {
	case "openai":
		conf := openaiprov.DefaultConfig()
		conf.APIKey = cfg.APIKey
		if cfg.Model != "" {
			conf.Model = cfg.Model
		}
		return openaiprov.New(conf), nil
	case "claude":
		conf := claudeprov.DefaultConfig(cfg.APIKey)
		if cfg.Model != "" {
			conf.Model = cfg.Model
		}
		return claudeprov.New(conf), nil
	case "gemini":
		conf := geminiprov.DefaultConfig(cfg.APIKey)
		if cfg.Model != "" {
			conf.Model = cfg.Model
		}
		return geminiprov.New(ctx, conf)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func newVectorStore(cfg *config.Config) (vector.VectorStore, error) {
	switch cfg.VectorBackend {
	case "postgres":
		return pg.New(&pg.Config{
			Host:      cfg.PostgresHost,
			Port:      cfg.PostgresPort,
			User:      cfg.PostgresUser,
			Password:  cfg.PostgresPassword,
			DBName:    cfg.PostgresDB,
			SSLMode:   "disable",
			Dimension: cfg.EmbeddingDimension,
			TableName: "passages",
		})
	default:
		return inmemory.NewInMemoryVectorStore(), nil
	}
}

func newChunker(cfg *config.Config) (chunking.Chunker, error) {
	switch cfg.Chunker {
	case "token":
		return chunking.NewTokenChunker("cl100k_base", cfg.ChunkSize, cfg.ChunkOverlap)
	default:
		return chunking.NewSimpleChunker(
			chunking.WithChunkSize(cfg.ChunkSize),
			chunking.WithOverlap(cfg.ChunkOverlap),
		), nil
	}
}

func newHistoryStore(cfg *config.Config) (history.Store, error) {
	switch cfg.HistoryBackend {
	case "redis":
		conf := histstore.DefaultRedisConfig()
		conf.Addr = cfg.RedisAddr
		conf.Password = cfg.RedisPassword
		conf.DB = cfg.RedisDB
		return histstore.NewRedisStore(conf), nil
	case "mongo":
		conf := histstore.DefaultMongoConfig()
		conf.URI = cfg.MongoURI
		return histstore.NewMongoStore(conf)
	default:
		return histstore.NewInMemoryStore(), nil
	}
}

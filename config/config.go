// Package config loads and validates runtime settings from the environment.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime tunable. All values come from STUDYMATE_*
// environment variables with sensible local defaults.
type Config struct {
	// Provider selects the chat backend: openai, claude, or gemini.
	Provider string
	Model    string
	APIKey   string

	EmbeddingModel     string
	EmbeddingDimension int

	TopK              int
	MaxQueryLength    int
	MaxResponseLength int
	ChunkSize         int
	ChunkOverlap      int
	// Chunker selects how documents are split: simple (character windows)
	// or token (tiktoken windows).
	Chunker string

	Temperature float64
	MaxTokens   int64

	GuardrailsEnabled bool
	FailClosed        bool

	// Quality-tier boundaries for the context evaluator.
	ThresholdExcellent float64
	ThresholdGood      float64
	ThresholdFair      float64

	// HistoryBackend selects transcript persistence: memory, redis, or mongo.
	HistoryBackend string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	MongoURI       string

	// VectorBackend selects the index: memory or postgres.
	VectorBackend    string
	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	TelemetryEnabled  bool
	TelemetryEndpoint string
}

// FromEnv reads configuration from STUDYMATE_* environment variables.
func FromEnv() *Config {
	v := viper.New()
	v.SetEnvPrefix("STUDYMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider", "openai")
	v.SetDefault("model", "")
	v.SetDefault("api_key", "")
	v.SetDefault("embedding_model", "text-embedding-3-small")
	v.SetDefault("embedding_dimension", 1536)
	v.SetDefault("top_k", 10)
	v.SetDefault("max_query_length", 500)
	v.SetDefault("max_response_length", 2000)
	v.SetDefault("chunk_size", 800)
	v.SetDefault("chunk_overlap", 150)
	v.SetDefault("chunker", "simple")
	v.SetDefault("temperature", 0.1)
	v.SetDefault("max_tokens", 1024)
	v.SetDefault("guardrails_enabled", true)
	v.SetDefault("fail_closed", false)
	v.SetDefault("threshold_excellent", 0.8)
	v.SetDefault("threshold_good", 0.6)
	v.SetDefault("threshold_fair", 0.4)
	v.SetDefault("history_backend", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("vector_backend", "memory")
	v.SetDefault("postgres_host", "127.0.0.1")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "postgres")
	v.SetDefault("postgres_password", "")
	v.SetDefault("postgres_db", "studymate")
	v.SetDefault("telemetry_enabled", false)
	v.SetDefault("telemetry_endpoint", "localhost:4317")

	return &Config{
		Provider:           v.GetString("provider"),
		Model:              v.GetString("model"),
		APIKey:             v.GetString("api_key"),
		EmbeddingModel:     v.GetString("embedding_model"),
		EmbeddingDimension: v.GetInt("embedding_dimension"),
		TopK:               v.GetInt("top_k"),
		MaxQueryLength:     v.GetInt("max_query_length"),
		MaxResponseLength:  v.GetInt("max_response_length"),
		ChunkSize:          v.GetInt("chunk_size"),
		ChunkOverlap:       v.GetInt("chunk_overlap"),
		Chunker:            v.GetString("chunker"),
		Temperature:        v.GetFloat64("temperature"),
		MaxTokens:          v.GetInt64("max_tokens"),
		GuardrailsEnabled:  v.GetBool("guardrails_enabled"),
		FailClosed:         v.GetBool("fail_closed"),
		ThresholdExcellent: v.GetFloat64("threshold_excellent"),
		ThresholdGood:      v.GetFloat64("threshold_good"),
		ThresholdFair:      v.GetFloat64("threshold_fair"),
		HistoryBackend:     v.GetString("history_backend"),
		RedisAddr:          v.GetString("redis_addr"),
		RedisPassword:      v.GetString("redis_password"),
		RedisDB:            v.GetInt("redis_db"),
		MongoURI:           v.GetString("mongo_uri"),
		VectorBackend:      v.GetString("vector_backend"),
		PostgresHost:       v.GetString("postgres_host"),
		PostgresPort:       v.GetInt("postgres_port"),
		PostgresUser:       v.GetString("postgres_user"),
		PostgresPassword:   v.GetString("postgres_password"),
		PostgresDB:         v.GetString("postgres_db"),
		TelemetryEnabled:   v.GetBool("telemetry_enabled"),
		TelemetryEndpoint:  v.GetString("telemetry_endpoint"),
	}
}

// Validate checks cross-field consistency and value ranges.
func (c *Config) Validate() error {
	v := NewValidator().
		ValidateOneOf("provider", c.Provider, "openai", "claude", "gemini").
		RequirePositive("top_k", c.TopK).
		RequirePositive("max_query_length", c.MaxQueryLength).
		RequirePositive("max_response_length", c.MaxResponseLength).
		RequirePositive("chunk_size", c.ChunkSize).
		ValidateRange("chunk_overlap", c.ChunkOverlap, 0, c.ChunkSize-1).
		ValidateOneOf("chunker", c.Chunker, "simple", "token").
		ValidateFloatRange("temperature", c.Temperature, 0, 2).
		ValidateFloatRange("threshold_excellent", c.ThresholdExcellent, 0, 1).
		ValidateFloatRange("threshold_good", c.ThresholdGood, 0, 1).
		ValidateFloatRange("threshold_fair", c.ThresholdFair, 0, 1).
		ValidateOneOf("history_backend", c.HistoryBackend, "memory", "redis", "mongo").
		ValidateOneOf("vector_backend", c.VectorBackend, "memory", "postgres")

	if c.HistoryBackend == "redis" {
		v.RequireNonEmpty("redis_addr", c.RedisAddr).
			ValidateDBNumber("redis_db", c.RedisDB)
	}
	if c.HistoryBackend == "mongo" {
		v.RequireNonEmpty("mongo_uri", c.MongoURI)
	}
	if c.VectorBackend == "postgres" {
		v.RequireNonEmpty("postgres_host", c.PostgresHost).
			ValidatePort("postgres_port", c.PostgresPort).
			RequireNonEmpty("postgres_user", c.PostgresUser).
			RequireNonEmpty("postgres_db", c.PostgresDB)
	}
	if c.ThresholdFair > c.ThresholdGood || c.ThresholdGood > c.ThresholdExcellent {
		v.AddError("thresholds", "must be ordered fair <= good <= excellent")
	}

	return v.Error()
}

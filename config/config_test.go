package config

import (
	"strings"
	"testing"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()

	if cfg.TopK != 10 {
		t.Errorf("expected default top-k 10, got %d", cfg.TopK)
	}
	if cfg.MaxQueryLength != 500 || cfg.MaxResponseLength != 2000 {
		t.Errorf("expected default lengths 500/2000, got %d/%d", cfg.MaxQueryLength, cfg.MaxResponseLength)
	}
	if cfg.ChunkSize != 800 || cfg.ChunkOverlap != 150 {
		t.Errorf("expected default chunking 800/150, got %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if !cfg.GuardrailsEnabled || cfg.FailClosed {
		t.Errorf("expected guardrails on and fail-open by default")
	}
	if cfg.ThresholdExcellent != 0.8 || cfg.ThresholdGood != 0.6 || cfg.ThresholdFair != 0.4 {
		t.Errorf("unexpected default thresholds: %v/%v/%v",
			cfg.ThresholdExcellent, cfg.ThresholdGood, cfg.ThresholdFair)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default configuration must validate: %v", err)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STUDYMATE_PROVIDER", "claude")
	t.Setenv("STUDYMATE_TOP_K", "5")
	t.Setenv("STUDYMATE_FAIL_CLOSED", "true")
	t.Setenv("STUDYMATE_HISTORY_BACKEND", "redis")
	t.Setenv("STUDYMATE_REDIS_DB", "3")

	cfg := FromEnv()
	if cfg.Provider != "claude" {
		t.Errorf("expected provider override, got %q", cfg.Provider)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected top-k override, got %d", cfg.TopK)
	}
	if !cfg.FailClosed {
		t.Errorf("expected fail-closed override")
	}
	if cfg.HistoryBackend != "redis" || cfg.RedisDB != 3 {
		t.Errorf("expected redis history backend with db 3, got %q/%d", cfg.HistoryBackend, cfg.RedisDB)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("overridden configuration must validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := FromEnv()
	cfg.Provider = "watson"
	cfg.TopK = 0
	cfg.ChunkOverlap = cfg.ChunkSize + 10
	cfg.ThresholdGood = 0.9 // above excellent

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	for _, field := range []string{"provider", "top_k", "chunk_overlap", "thresholds"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("expected %s in validation error, got %q", field, err.Error())
		}
	}
}

func TestValidateRedisDBRange(t *testing.T) {
	cfg := FromEnv()
	cfg.HistoryBackend = "redis"
	cfg.RedisDB = 42

	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "redis_db") {
		t.Fatalf("expected redis_db range error, got %v", err)
	}
}

func TestValidatorAccumulates(t *testing.T) {
	v := NewValidator().
		RequireNonEmpty("name", "").
		RequirePositive("count", -1).
		ValidateOneOf("mode", "x", "a", "b")

	if !v.HasErrors() {
		t.Fatalf("expected errors")
	}
	if len(v.Errors()) != 3 {
		t.Fatalf("expected 3 accumulated errors, got %d", len(v.Errors()))
	}
	if err := v.Error(); err == nil {
		t.Fatalf("expected combined error")
	}

	clean := NewValidator().RequireNonEmpty("name", "value")
	if clean.Error() != nil {
		t.Fatalf("expected nil error for valid input")
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studymate-ai/studymate/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromEnv()

		fmt.Printf("provider:            %s\n", cfg.Provider)
		fmt.Printf("model:               %s\n", orDefault(cfg.Model, "(provider default)"))
		fmt.Printf("api key set:         %t\n", cfg.APIKey != "")
		fmt.Printf("embedding model:     %s (dim %d)\n", cfg.EmbeddingModel, cfg.EmbeddingDimension)
		fmt.Printf("top-k:               %d\n", cfg.TopK)
		fmt.Printf("max query length:    %d\n", cfg.MaxQueryLength)
		fmt.Printf("max response length: %d\n", cfg.MaxResponseLength)
		fmt.Printf("chunker:             %s (size %d, overlap %d)\n", cfg.Chunker, cfg.ChunkSize, cfg.ChunkOverlap)
		fmt.Printf("guardrails enabled:  %t (fail closed: %t)\n", cfg.GuardrailsEnabled, cfg.FailClosed)
		fmt.Printf("quality thresholds:  excellent %.2f / good %.2f / fair %.2f\n",
			cfg.ThresholdExcellent, cfg.ThresholdGood, cfg.ThresholdFair)
		fmt.Printf("history backend:     %s\n", cfg.HistoryBackend)
		fmt.Printf("vector backend:      %s\n", cfg.VectorBackend)
		fmt.Printf("telemetry enabled:   %t\n", cfg.TelemetryEnabled)

		if err := cfg.Validate(); err != nil {
			return err
		}
		fmt.Println("configuration is valid")
		return nil
	},
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// Package main is the entry point for the studymate CLI: a study assistant
// that answers questions from ingested course material with safety checks
// and self-correcting retrieval.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/studymate-ai/studymate/pkg/logging"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "studymate",
	Short: "AI study assistant over your own course materials",
	Long: `studymate answers study questions from documents you ingest. Every answer
is grounded in retrieved passages, checked by safety guardrails on the way in
and out, and escalated through progressively broader retrieval strategies
when the first attempt finds weak context.

Configuration comes from STUDYMATE_* environment variables; run
"studymate config" to see the effective settings.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logging.Logger().Error("command failed", "error", err)
		os.Exit(1)
	}
}

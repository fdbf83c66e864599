package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/studymate-ai/studymate/rag/corrective"
)

const timeRound = 10 * time.Millisecond

// printResult renders one answer with its retrieval and safety metadata.
func printResult(w io.Writer, result *corrective.Result) {
	fmt.Fprintln(w, result.Answer)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  confidence: %s  quality: %s  level: %s  corrected: %t  elapsed: %s\n",
		result.Confidence, result.ContextQuality, result.RetrievalLevel, result.Corrected,
		result.Elapsed.Round(timeRound))
	if len(result.Sources) > 0 {
		fmt.Fprintf(w, "  sources: %s\n", strings.Join(result.Sources, "; "))
	}
	if !result.GuardrailPassed {
		fmt.Fprintln(w, "  note: this request was limited by safety checks")
	}
}

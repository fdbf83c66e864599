package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studymate-ai/studymate/rag/ingest"
)

var demoQuestions = []string{
	"What is a noun?",
	"How do I add fractions with different denominators?",
	"Explain how rain forms.",
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run sample questions against the built-in corpus",
	Long: `Demo indexes the built-in sample corpus, answers a fixed set of study
questions, and finishes with the safety report. Useful for verifying
provider credentials and configuration end to end.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		if err := a.index.AddDocuments(ctx, ingest.SampleDocuments()...); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "indexed sample corpus (%d passages)\n", a.index.Count())

		for _, question := range demoQuestions {
			fmt.Printf("\nQ: %s\n", question)
			printResult(os.Stdout, a.engine.Answer(ctx, question))
		}

		fmt.Println()
		fmt.Println(a.engine.SafetyReport())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studymate-ai/studymate/rag/ingest"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a single question from ingested material",
	Long: `Ask runs one question through the full pipeline and prints the answer with
its retrieval level, quality tier, and sources. Files named with --file are
ingested first; with no files and an empty index, the built-in sample corpus
is used.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		files, _ := cmd.Flags().GetStringSlice("file")
		for _, path := range files {
			docs, err := ingest.LoadFile(path)
			if err != nil {
				return err
			}
			if err := a.index.AddDocuments(ctx, docs...); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "ingested %s (%d documents)\n", path, len(docs))
		}
		if len(files) == 0 && a.index.Count() == 0 {
			if err := a.index.AddDocuments(ctx, ingest.SampleDocuments()...); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "no documents ingested, using the built-in sample corpus")
		}

		result := a.engine.Answer(ctx, strings.Join(args, " "))
		printResult(os.Stdout, result)
		return nil
	},
}

func init() {
	askCmd.Flags().StringSlice("file", nil, "document to ingest before answering (repeatable)")
	rootCmd.AddCommand(askCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/studymate-ai/studymate/rag/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Load documents into the vector index",
	Long: `Ingest chunks, embeds, and indexes the given files (txt, md, html, pdf).
With the default in-memory vector backend the index lives only for one
process, so ingest is mainly useful with STUDYMATE_VECTOR_BACKEND=postgres,
where indexed passages persist across runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		total := 0
		for _, path := range args {
			docs, err := ingest.LoadFile(path)
			if err != nil {
				return err
			}
			if err := a.index.AddDocuments(ctx, docs...); err != nil {
				return fmt.Errorf("index %s: %w", path, err)
			}
			total += len(docs)
			fmt.Printf("ingested %s (%d documents)\n", path, len(docs))
		}
		fmt.Printf("done: %d documents, %d passages indexed\n", total, a.index.Count())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/studymate-ai/studymate/history"
	"github.com/studymate-ai/studymate/pkg/logging"
	"github.com/studymate-ai/studymate/rag/ingest"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Interactive study session",
	Long: `Chat starts an interactive session. Each question runs through the full
pipeline; turns are recorded in the configured history backend.

Session commands:
  :report   print the safety report for this session
  :history  print this session's transcript
  :quit     end the session`,
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
		}
		if a.index.Count() == 0 {
			if err := a.index.AddDocuments(ctx, ingest.SampleDocuments()...); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "no documents ingested, using the built-in sample corpus")
		}

		sessionID := fmt.Sprintf("cli_%d", time.Now().Unix())
		fmt.Printf("StudyMate session %s. Ask a question, or :quit to exit.\n", sessionID)

		scanner := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			line := strings.TrimSpace(scanner.Text())
			switch line {
			case "":
				continue
			case ":quit", ":q", "exit":
				return scanner.Err()
			case ":report":
				fmt.Println(a.engine.SafetyReport())
				continue
			case ":history":
				printTranscript(ctx, a, sessionID)
				continue
			}

			result := a.engine.Answer(ctx, line)
			printResult(os.Stdout, result)

			entry := &history.Entry{
				SessionID:      sessionID,
				Question:       line,
				Answer:         result.Answer,
				RetrievalLevel: string(result.RetrievalLevel),
				Quality:        string(result.ContextQuality),
				Confidence:     result.Confidence,
			}
			if err := a.history.Append(ctx, entry); err != nil {
				logging.Logger().Warn("failed to record turn", "error", err)
			}
		}
		return scanner.Err()
	},
}

func printTranscript(ctx context.Context, a *app, sessionID string) {
	entries, err := a.history.List(ctx, sessionID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load transcript: %v\n", err)
		return
	}
	if len(entries) == 0 {
		fmt.Println("no turns recorded yet")
		return
	}
	for i, e := range entries {
		fmt.Printf("%d. [%s/%s] Q: %s\n   A: %s\n", i+1, e.RetrievalLevel, e.Quality, e.Question, e.Answer)
	}
}

func init() {
	chatCmd.Flags().StringSlice("file", nil, "document to ingest before the session (repeatable)")
	rootCmd.AddCommand(chatCmd)
}

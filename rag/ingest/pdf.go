package ingest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	smerrors "github.com/studymate-ai/studymate/errors"
	"github.com/studymate-ai/studymate/rag/document"
)

// LoadPDF extracts text from a PDF, one document per page. Pages with no
// extractable text are skipped.
func LoadPDF(path string) ([]document.Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	title := filepath.Base(path)
	docs := make([]document.Document, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		doc := document.Document{
			Title:   title,
			Content: text,
			Metadata: map[string]any{
				"source_file": title,
				"page":        i,
			},
		}
		document.EnsureDocumentID(&doc)
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("pdf %s has no extractable text: %w", path, smerrors.ErrNoDocuments)
	}
	return docs, nil
}

// Package ingest loads study materials from local files into documents
// ready for chunking and indexing.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	smerrors "github.com/studymate-ai/studymate/errors"
	"github.com/studymate-ai/studymate/rag/document"
)

// LoadFile reads one file and converts it to documents. PDF files produce
// one document per page so citations can point at a page number; everything
// else produces a single document.
func LoadFile(path string) ([]document.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return LoadPDF(path)
	case ".html", ".htm":
		return LoadHTMLFile(path)
	case ".txt", ".md", ".markdown":
		return loadText(path)
	default:
		return nil, fmt.Errorf("load %s: %w", path, smerrors.ErrUnsupportedFormat)
	}
}

func loadText(path string) ([]document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, fmt.Errorf("load %s: %w", path, smerrors.ErrNoDocuments)
	}
	doc := document.Document{
		Title:   filepath.Base(path),
		Content: content,
		Metadata: map[string]any{
			"source_file": filepath.Base(path),
		},
	}
	document.EnsureDocumentID(&doc)
	return []document.Document{doc}, nil
}

package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	smerrors "github.com/studymate-ai/studymate/errors"
	"github.com/studymate-ai/studymate/rag/document"
)

// LoadHTML extracts readable text from an HTML page. Script and style blocks
// are dropped; the page title becomes the document title when present.
func LoadHTML(r io.Reader, fallbackTitle string) ([]document.Document, error) {
	page, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page.Find("script, style, noscript, nav, footer").Remove()

	title := strings.TrimSpace(page.Find("title").First().Text())
	if title == "" {
		title = fallbackTitle
	}

	var parts []string
	page.Find("h1, h2, h3, h4, p, li, td, pre").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	if len(parts) == 0 {
		if text := strings.TrimSpace(page.Find("body").Text()); text != "" {
			parts = append(parts, text)
		}
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("html has no readable text: %w", smerrors.ErrNoDocuments)
	}

	doc := document.Document{
		Title:   title,
		Content: strings.Join(parts, "\n\n"),
		Metadata: map[string]any{
			"source_file": fallbackTitle,
		},
	}
	document.EnsureDocumentID(&doc)
	return []document.Document{doc}, nil
}

// LoadHTMLFile reads and extracts an HTML file from disk.
func LoadHTMLFile(path string) ([]document.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return LoadHTML(file, filepath.Base(path))
}

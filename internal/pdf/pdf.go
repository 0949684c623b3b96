// Package pdf converts rendered deck sheets to PDF.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// Options controls the page layout.
type Options struct {
	// Orientation is "P" for portrait or "L" for landscape.
	Orientation string
	PaperSize   string
	Dark        bool
}

func DefaultOptions() Options {
	return Options{
		Orientation: "P",
		PaperSize:   "A4",
	}
}

// ConvertMarkdownToPDF writes <name>.pdf next to the markdown file and returns its absolute path.
func ConvertMarkdownToPDF(markdownPath string, opts Options) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"
	theme := mdtopdf.LIGHT
	if opts.Dark {
		theme = mdtopdf.DARK
	}
	renderer := mdtopdf.NewPdfRenderer(opts.Orientation, opts.PaperSize, pdfPath, "", nil, theme)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}

package assets

import (
	_ "embed"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

const deckSheetTemplateName = "deck-sheet.md.go.tmpl"

//go:embed templates/deck-sheet.md.go.tmpl
var fallbackDeckSheetTemplate string

// DeckSheet is the data for a printable vocabulary sheet.
type DeckSheet struct {
	Title               string
	Subtitle            string
	Date                time.Time
	ShowTransliteration bool
	Entries             []vocabulary.Entry
}

// WriteDeckSheet renders the sheet with the template at templatePath,
// or with the embedded template when the path is empty or cannot be parsed.
func WriteDeckSheet(output io.Writer, templatePath string, sheet DeckSheet, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	tmpl, err := parseTemplateWithFallback(templatePath, deckSheetTemplateName, fallbackDeckSheetTemplate, logger)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, sheet); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}

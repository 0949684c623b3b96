package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/assets"
	"github.com/at-ishikawa/shokyuu/internal/pdf"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/study"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func newPrintCommand() *cobra.Command {
	var (
		part            PartFlag
		includeOptional bool
		reviewOnly      bool
		generatePDF     bool
		landscape       bool
		outputDir       string
	)
	command := &cobra.Command{
		Use:   "print <lesson>",
		Short: "Write a printable word list of a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfigAndLogger()
			if err != nil {
				return err
			}
			defer syncLogger(logger)
			if !cmd.Flags().Changed("include-optional") {
				includeOptional = cfg.Study.IncludeOptional
			}
			if outputDir == "" {
				outputDir = cfg.Outputs.PrintDirectory
			}

			lessonID := args[0]
			var sheet assets.DeckSheet
			fileName := lessonID
			if reviewOnly {
				ctx := cmd.Context()
				store, closeStore, err := openReviewStore(ctx, cfg, cfg.Review.Backend)
				if err != nil {
					return err
				}
				defer func() { _ = closeStore() }()

				entries := review.Open(ctx, store, logger).Entries(lessonID)
				if len(entries) == 0 {
					return fmt.Errorf("%s: %w", lessonID, errNothingToReview)
				}
				sheet = assets.DeckSheet{Title: lessonID, Subtitle: "Review", Entries: entries}
				fileName += "-review"
			} else {
				catalog, err := newCatalog(cfg)
				if err != nil {
					return err
				}
				lesson, err := catalog.Lesson(lessonID)
				if err != nil {
					return fmt.Errorf("catalog.Lesson() > %w", err)
				}
				studyCfg := cfg.Study
				studyCfg.IncludeOptional = includeOptional
				studyCfg.Shuffle = false
				deckConfig, err := newDeckConfig(lesson, studyCfg, part.value)
				if err != nil {
					return err
				}
				deck, err := study.BuildDeck(lesson.Entries, deckConfig, study.DefaultShuffler)
				if err != nil {
					return fmt.Errorf("study.BuildDeck() > %w", err)
				}
				sheet = assets.DeckSheet{
					Title:    lesson.Name(),
					Subtitle: study.PartitionLabel(deckConfig.Partition, lesson.Entries),
					Entries:  deck.Original(),
				}
				if part.value != "" && part.value != "all" && !vocabulary.IsCustomDeck(lesson.ID) {
					fileName += "-" + part.value
				}
			}
			sheet.Date = time.Now()
			sheet.ShowTransliteration = cfg.Study.ShowTransliteration

			markdownPath, err := writeDeckSheet(outputDir, fileName, cfg.Templates.DeckTemplate, sheet, logger)
			if err != nil {
				return err
			}
			output := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(output, "Wrote %s\n", markdownPath)

			if !generatePDF {
				return nil
			}
			opts := pdf.DefaultOptions()
			if landscape {
				opts.Orientation = "L"
			}
			pdfPath, err := pdf.ConvertMarkdownToPDF(markdownPath, opts)
			if err != nil {
				return fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
			}
			_, _ = fmt.Fprintf(output, "Wrote %s\n", pdfPath)
			return nil
		},
	}

	command.Flags().Var(&part, "part", "Part of the lesson to print: all, part-N or optional-only")
	command.Flags().BoolVar(&includeOptional, "include-optional", false, "Include optional words")
	command.Flags().BoolVar(&reviewOnly, "review", false, "Print the words to review instead of the lesson")
	command.Flags().BoolVar(&generatePDF, "pdf", false, "Also convert the word list to PDF")
	command.Flags().BoolVar(&landscape, "landscape", false, "Use landscape pages for the PDF")
	command.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (defaults to outputs.print_directory)")
	return command
}

func writeDeckSheet(outputDir, name, templatePath string, sheet assets.DeckSheet, logger *zap.Logger) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", outputDir, err)
	}
	path := filepath.Join(outputDir, name+".md")
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := assets.WriteDeckSheet(file, templatePath, sheet, logger); err != nil {
		return "", fmt.Errorf("assets.WriteDeckSheet() > %w", err)
	}
	return path, nil
}

package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/shokyuu/internal/importer"
	"github.com/at-ishikawa/shokyuu/internal/study"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func newLessonsCommand() *cobra.Command {
	lessonsCommand := &cobra.Command{
		Use:   "lessons",
		Short: "Lesson commands",
	}

	lessonsCommand.AddCommand(newLessonsListCommand())
	lessonsCommand.AddCommand(newLessonsPartsCommand())
	lessonsCommand.AddCommand(newLessonsImportCommand())

	return lessonsCommand
}

func newLessonsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List lessons and custom decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := newCatalog(cfg)
			if err != nil {
				return err
			}
			return writeLessons(cmd.OutOrStdout(), catalog)
		},
	}
}

func writeLessons(output io.Writer, source vocabulary.Source) error {
	ids := source.LessonIDs()
	if len(ids) == 0 {
		_, err := fmt.Fprintln(output, "No lessons found")
		return err
	}
	for _, id := range ids {
		lesson, err := source.Lesson(id)
		if err != nil {
			return fmt.Errorf("source.Lesson(%s) > %w", id, err)
		}
		line := fmt.Sprintf("%s\t%s\t%d word(s)", id, lesson.Name(), len(lesson.MainEntries()))
		if optional := len(lesson.OptionalEntries()); optional > 0 {
			line += fmt.Sprintf(", %d optional", optional)
		}
		if _, err := fmt.Fprintln(output, line); err != nil {
			return err
		}
	}
	return nil
}

func newLessonsPartsCommand() *cobra.Command {
	var includeOptional bool
	command := &cobra.Command{
		Use:   "parts <lesson>",
		Short: "List the parts a lesson can be studied in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			catalog, err := newCatalog(cfg)
			if err != nil {
				return err
			}
			lesson, err := catalog.Lesson(args[0])
			if err != nil {
				return fmt.Errorf("catalog.Lesson() > %w", err)
			}
			if !cmd.Flags().Changed("include-optional") {
				includeOptional = cfg.Study.IncludeOptional
			}

			output := cmd.OutOrStdout()
			if vocabulary.IsCustomDeck(lesson.ID) {
				_, _ = fmt.Fprintf(output, "all\tComplete deck (%d words)\n", len(lesson.Entries))
				return nil
			}
			for _, option := range study.PartitionOptions(lesson.Entries, includeOptional) {
				_, _ = fmt.Fprintf(output, "%s\t%s\n", option.ID, option.Label)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&includeOptional, "include-optional", false, "Count optional words in the complete lesson")
	return command
}

func newLessonsImportCommand() *cobra.Command {
	var (
		lessonID  string
		outputDir string
		cfgImport = importer.DefaultConfig()
	)
	command := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a lesson from an .xlsx or .csv file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := args[0]
			if lessonID == "" {
				base := filepath.Base(path)
				lessonID = strings.TrimSuffix(base, filepath.Ext(base))
			}
			if outputDir == "" {
				if len(cfg.Lessons.Directories) == 0 {
					return fmt.Errorf("no lesson directory is configured")
				}
				outputDir = cfg.Lessons.Directories[0]
			}

			result, err := importer.Import(path, lessonID, cfgImport)
			if err != nil {
				return fmt.Errorf("importer.Import() > %w", err)
			}
			output := cmd.OutOrStdout()
			for _, message := range result.Errors {
				_, _ = fmt.Fprintf(output, "  [WARN]  %s\n", message)
			}
			if len(result.Lesson.Entries) == 0 {
				return fmt.Errorf("no words found in %s", path)
			}

			lessonPath, err := vocabulary.WriteLesson(outputDir, result.Lesson)
			if err != nil {
				return fmt.Errorf("vocabulary.WriteLesson() > %w", err)
			}
			_, _ = fmt.Fprintf(output, "Imported %d word(s), skipped %d duplicate(s) into %s\n", result.Imported, result.Skipped, lessonPath)
			return nil
		},
	}

	command.Flags().StringVar(&lessonID, "id", "", "Lesson ID (defaults to the file name)")
	command.Flags().StringVar(&outputDir, "output-dir", "", "Directory to write the lesson to (defaults to the first lesson directory)")
	command.Flags().StringVar(&cfgImport.SheetName, "sheet", "", "Sheet name (defaults to the first sheet)")
	command.Flags().IntVar(&cfgImport.StartRow, "start-row", cfgImport.StartRow, "First row to import, 1-based")
	command.Flags().StringVar(&cfgImport.SourceColumn, "source-column", cfgImport.SourceColumn, "Column of the word")
	command.Flags().StringVar(&cfgImport.TransliterationColumn, "transliteration-column", cfgImport.TransliterationColumn, "Column of the transliteration")
	command.Flags().StringVar(&cfgImport.TranslationColumn, "translation-column", cfgImport.TranslationColumn, "Column of the meaning")
	command.Flags().StringVar(&cfgImport.OptionalColumn, "optional-column", cfgImport.OptionalColumn, "Column marking optional words")
	return command
}

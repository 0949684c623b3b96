// Package importer reads lesson entries from spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// Config defines which columns hold each field. Columns are spreadsheet letters.
type Config struct {
	SourceColumn          string
	TransliterationColumn string
	TranslationColumn     string
	// OptionalColumn marks optional entries; leave empty when the sheet has none.
	OptionalColumn string
	// SheetName defaults to the first sheet of a workbook.
	SheetName string
	// StartRow is the first row to import, 1-based.
	StartRow int
}

func DefaultConfig() Config {
	return Config{
		SourceColumn:          "A",
		TransliterationColumn: "B",
		TranslationColumn:     "C",
		OptionalColumn:        "D",
		StartRow:              2,
	}
}

type Result struct {
	Lesson    vocabulary.Lesson
	Processed int
	Imported  int
	Skipped   int
	Errors    []string
}

// Import reads an .xlsx or .csv file into a lesson with the given ID.
// Blank rows are ignored and duplicated words are skipped.
func Import(path, lessonID string, cfg Config) (*Result, error) {
	columns, err := resolveColumns(cfg)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = readCSV(path)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(path, cfg.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
	if err != nil {
		return nil, err
	}

	startRow := max(cfg.StartRow, 1)
	result := &Result{
		Lesson: vocabulary.Lesson{ID: lessonID},
	}
	set := vocabulary.NewSet()
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < startRow || isBlank(row) {
			continue
		}
		result.Processed++

		entry, err := columns.entry(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		if !set.Add(entry) {
			result.Skipped++
			continue
		}
		result.Imported++
	}
	result.Lesson.Entries = set.Entries()
	return result, nil
}

type columnIndexes struct {
	source          int
	transliteration int
	translation     int
	optional        int
}

func resolveColumns(cfg Config) (columnIndexes, error) {
	source, err := columnIndex(cfg.SourceColumn)
	if err != nil {
		return columnIndexes{}, fmt.Errorf("source column > %w", err)
	}
	translation, err := columnIndex(cfg.TranslationColumn)
	if err != nil {
		return columnIndexes{}, fmt.Errorf("translation column > %w", err)
	}
	columns := columnIndexes{
		source:          source,
		translation:     translation,
		transliteration: -1,
		optional:        -1,
	}
	if cfg.TransliterationColumn != "" {
		if columns.transliteration, err = columnIndex(cfg.TransliterationColumn); err != nil {
			return columnIndexes{}, fmt.Errorf("transliteration column > %w", err)
		}
	}
	if cfg.OptionalColumn != "" {
		if columns.optional, err = columnIndex(cfg.OptionalColumn); err != nil {
			return columnIndexes{}, fmt.Errorf("optional column > %w", err)
		}
	}
	return columns, nil
}

func columnIndex(name string) (int, error) {
	number, err := excelize.ColumnNameToNumber(name)
	if err != nil {
		return 0, fmt.Errorf("excelize.ColumnNameToNumber(%s) > %w", name, err)
	}
	return number - 1, nil
}

func (c columnIndexes) entry(row []string) (vocabulary.Entry, error) {
	entry := vocabulary.Entry{
		Source:          cell(row, c.source),
		Transliteration: cell(row, c.transliteration),
		Translation:     cell(row, c.translation),
		Optional:        isTruthy(cell(row, c.optional)),
	}
	if entry.Source == "" {
		return vocabulary.Entry{}, errors.New("source is empty")
	}
	if entry.Translation == "" {
		return vocabulary.Entry{}, errors.New("translation is empty")
	}
	return entry, nil
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "1", "y", "yes", "true", "x", "optional":
		return true
	}
	return false
}

func isBlank(row []string) bool {
	for _, value := range row {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func readWorkbook(path, sheetName string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheet in %s", path)
		}
		sheetName = sheets[0]
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("f.GetRows(%s) > %w", sheetName, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reader.Read() > %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

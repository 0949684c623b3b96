package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
	t.Helper()
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cellName, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestImport(t *testing.T) {
	wantEntries := []vocabulary.Entry{
		{Source: "あめ", Transliteration: "ame", Translation: "rain"},
		{Source: "かぜ", Transliteration: "kaze", Translation: "wind", Optional: true},
	}

	tests := []struct {
		name      string
		fileName  string
		setup     func(t *testing.T, path string)
		cfg       Config
		want      *Result
		wantError string
	}{
		{
			name:     "xlsx with header, duplicate and invalid row",
			fileName: "unit-1.xlsx",
			setup: func(t *testing.T, path string) {
				writeWorkbook(t, path, [][]any{
					{"source", "transliteration", "translation", "optional"},
					{"あめ", "ame", "rain"},
					{"かぜ", "kaze", "wind", "yes"},
					{"あめ", "ame", "rain (again)"},
					{"ゆき", "yuki", ""},
				})
			},
			cfg: DefaultConfig(),
			want: &Result{
				Lesson:    vocabulary.Lesson{ID: "unit-1", Entries: wantEntries},
				Processed: 4,
				Imported:  2,
				Skipped:   1,
				Errors:    []string{"Row 5: translation is empty"},
			},
		},
		{
			name:     "csv with blank lines",
			fileName: "unit-1.csv",
			setup: func(t *testing.T, path string) {
				content := "source,transliteration,translation,optional\n" +
					"あめ,ame,rain,\n" +
					",,,\n" +
					"かぜ,kaze,wind,x\n"
				require.NoError(t, os.WriteFile(path, []byte(content), 0644))
			},
			cfg: DefaultConfig(),
			want: &Result{
				Lesson:    vocabulary.Lesson{ID: "unit-1", Entries: wantEntries},
				Processed: 2,
				Imported:  2,
			},
		},
		{
			name:     "csv without transliteration or header",
			fileName: "unit-1.csv",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("あめ,rain\n"), 0644))
			},
			cfg: Config{SourceColumn: "A", TranslationColumn: "B", StartRow: 1},
			want: &Result{
				Lesson: vocabulary.Lesson{ID: "unit-1", Entries: []vocabulary.Entry{
					{Source: "あめ", Translation: "rain"},
				}},
				Processed: 1,
				Imported:  1,
			},
		},
		{
			name:     "unsupported extension",
			fileName: "unit-1.txt",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("あめ"), 0644))
			},
			cfg:       DefaultConfig(),
			wantError: "unsupported file type",
		},
		{
			name:      "invalid column",
			fileName:  "unit-1.csv",
			setup:     func(t *testing.T, path string) {},
			cfg:       Config{SourceColumn: "1", TranslationColumn: "B"},
			wantError: "source column",
		},
		{
			name:      "missing workbook",
			fileName:  "missing.xlsx",
			setup:     func(t *testing.T, path string) {},
			cfg:       DefaultConfig(),
			wantError: "excelize.OpenFile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			tt.setup(t, path)

			got, err := Import(path, "unit-1", tt.cfg)
			if tt.wantError != "" {
				assert.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/shokyuu/internal/config"
	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func TestSetupTestConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []ConfigOption
		want func(tmpDir string) config.ReviewConfig
		// wantShuffle is the study.shuffle value in the file
		wantShuffle bool
	}{
		{
			name: "file backend by default",
			want: func(tmpDir string) config.ReviewConfig {
				return config.ReviewConfig{
					Backend:    "file",
					File:       ReviewFile(tmpDir),
					SQLitePath: filepath.Join(tmpDir, "data", "shokyuu.db"),
				}
			},
		},
		{
			name:        "remote backend with shuffle",
			opts:        []ConfigOption{WithRemoteReview("http://localhost:3000/shokyuucards", "token"), WithShuffle()},
			wantShuffle: true,
			want: func(tmpDir string) config.ReviewConfig {
				return config.ReviewConfig{
					Backend:     "remote",
					File:        ReviewFile(tmpDir),
					SQLitePath:  filepath.Join(tmpDir, "data", "shokyuu.db"),
					RemoteURL:   "http://localhost:3000/shokyuucards",
					RemoteToken: "token",
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			got := SetupTestConfig(t, tmpDir, tt.opts...)
			assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

			for _, d := range []string{"lessons", "data", filepath.Join("outputs", "print")} {
				info, err := os.Stat(filepath.Join(tmpDir, d))
				require.NoError(t, err, "directory %s should exist", d)
				assert.True(t, info.IsDir())
			}

			loader, err := config.NewConfigLoader(got)
			require.NoError(t, err)
			cfg, err := loader.Load()
			require.NoError(t, err)
			assert.Equal(t, tt.want(tmpDir), cfg.Review)
			assert.Equal(t, []string{LessonsDir(tmpDir)}, cfg.Lessons.Directories)
			assert.Equal(t, tt.wantShuffle, cfg.Study.Shuffle)
		})
	}
}

func TestCreateLesson(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "lessons")
	entries := NumberedEntries(2, 1)
	path := CreateLesson(t, dir, "unit-1", "Unit 1", entries...)
	assert.Equal(t, filepath.Join(dir, "unit-1.yml"), path)

	reader, err := vocabulary.NewReader([]string{dir})
	require.NoError(t, err)
	lesson, err := reader.Lesson("unit-1")
	require.NoError(t, err)
	assert.Equal(t, "Unit 1", lesson.Title)
	assert.Equal(t, entries, lesson.Entries)
}

func TestNumberedEntries(t *testing.T) {
	got := NumberedEntries(2, 1)
	assert.Equal(t, []vocabulary.Entry{
		{Source: "word-1", Transliteration: "reading-1", Translation: "meaning-1"},
		{Source: "word-2", Transliteration: "reading-2", Translation: "meaning-2"},
		{Source: "word-3", Transliteration: "reading-3", Translation: "meaning-3", Optional: true},
	}, got)
}

func TestCreateReviewLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "review_decks.yml")
	decks := review.Decks{"unit-1": NumberedEntries(1, 0)}
	CreateReviewLedger(t, path, decks)

	got, err := review.NewFileStore(path).Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, decks, got)
}

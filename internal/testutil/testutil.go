// Package testutil provides shared test helpers for creating config files and lesson fixtures.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// ConfigOption configures optional settings of the generated config file.
type ConfigOption func(*configFixture)

type configFixture struct {
	backend     string
	remoteURL   string
	remoteToken string
	shuffle     bool
}

// WithReviewBackend selects the review backend written to the config file.
func WithReviewBackend(backend string) ConfigOption {
	return func(cfg *configFixture) {
		cfg.backend = backend
	}
}

// WithRemoteReview points the review backend at a running server.
func WithRemoteReview(url, token string) ConfigOption {
	return func(cfg *configFixture) {
		cfg.backend = "remote"
		cfg.remoteURL = url
		cfg.remoteToken = token
	}
}

// WithShuffle turns deck shuffling on. Fixtures are not shuffled by default.
func WithShuffle() ConfigOption {
	return func(cfg *configFixture) {
		cfg.shuffle = true
	}
}

// SetupTestConfig creates a config file and the directories it refers to.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	cfg := configFixture{backend: "file"}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, d := range []string{"lessons", "data", filepath.Join("outputs", "print")} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`lessons:
  directories:
    - %s
  custom_decks_file: %s
study:
  shuffle: %t
  show_transliteration: true
review:
  backend: %s
  file: %s
  sqlite_path: %s
outputs:
  print_directory: %s
`,
		LessonsDir(tmpDir),
		filepath.Join(tmpDir, "data", "custom_decks.yml"),
		cfg.shuffle,
		cfg.backend,
		ReviewFile(tmpDir),
		filepath.Join(tmpDir, "data", "shokyuu.db"),
		filepath.Join(tmpDir, "outputs", "print"),
	)
	if cfg.remoteURL != "" {
		configContent += fmt.Sprintf("  remote_url: %s\n  remote_token: %s\n", cfg.remoteURL, cfg.remoteToken)
	}

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// LessonsDir returns the lessons directory used by SetupTestConfig.
func LessonsDir(tmpDir string) string {
	return filepath.Join(tmpDir, "lessons")
}

// ReviewFile returns the review ledger file used by SetupTestConfig.
func ReviewFile(tmpDir string) string {
	return filepath.Join(tmpDir, "data", "review_decks.yml")
}

// CreateLesson writes a lesson file and returns its path.
func CreateLesson(t *testing.T, lessonsDir, id, title string, entries ...vocabulary.Entry) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(lessonsDir, 0755))
	path, err := vocabulary.WriteLesson(lessonsDir, vocabulary.Lesson{
		ID:      id,
		Title:   title,
		Entries: entries,
	})
	require.NoError(t, err)
	return path
}

// NumberedEntries returns main entries followed by optional ones, named word-1, word-2 and so on.
func NumberedEntries(main, optional int) []vocabulary.Entry {
	entries := make([]vocabulary.Entry, 0, main+optional)
	for i := 1; i <= main+optional; i++ {
		entries = append(entries, vocabulary.Entry{
			Source:          fmt.Sprintf("word-%d", i),
			Transliteration: fmt.Sprintf("reading-%d", i),
			Translation:     fmt.Sprintf("meaning-%d", i),
			Optional:        i > main,
		})
	}
	return entries
}

// CreateReviewLedger writes a review ledger file.
func CreateReviewLedger(t *testing.T, path string, decks review.Decks) {
	t.Helper()
	require.NoError(t, review.NewFileStore(path).Save(t.Context(), decks))
}

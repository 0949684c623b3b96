package review

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file is an empty ledger", func(t *testing.T) {
		store := NewFileStore(filepath.Join(t.TempDir(), "missing.yml"))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("saves and loads the ledger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "review.yml")
		store := NewFileStore(path)
		decks := Decks{
			"Unit1": {
				{Source: "いぬ", Transliteration: "inu", Translation: "dog"},
				{Source: "ねこ", Transliteration: "neko", Translation: "cat", Optional: true},
			},
		}

		require.NoError(t, store.Save(ctx, decks))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, decks, got)
	})

	t.Run("empty file is an empty ledger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "review.yml")
		require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0644))

		got, err := NewFileStore(path).Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, Decks{}, got)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "review.yml")
		require.NoError(t, os.WriteFile(path, []byte("Unit1: [[["), 0644))

		_, err := NewFileStore(path).Load(ctx)
		assert.Error(t, err)
	})
}

func TestDecks_Lessons(t *testing.T) {
	decks := Decks{
		"b": {{Source: "b"}},
		"a": {{Source: "a"}},
		"c": nil,
	}
	assert.Equal(t, []string{"a", "b"}, decks.Lessons())
	assert.Equal(t, []vocabulary.Entry{{Source: "a"}}, decks["a"])
}

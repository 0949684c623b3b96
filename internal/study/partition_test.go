package study

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

func newEntries(prefix string, n int, optional bool) []vocabulary.Entry {
	entries := make([]vocabulary.Entry, n)
	for i := range entries {
		entries[i] = vocabulary.Entry{
			Source:          fmt.Sprintf("%s%02d", prefix, i+1),
			Transliteration: fmt.Sprintf("%s-romaji-%02d", prefix, i+1),
			Translation:     fmt.Sprintf("%s-translation-%02d", prefix, i+1),
			Optional:        optional,
		}
	}
	return entries
}

func TestParts(t *testing.T) {
	tests := []struct {
		name    string
		entries []vocabulary.Entry
		want    []Part
	}{
		{
			name:    "lesson below the threshold is not split",
			entries: newEntries("w", 29, false),
			want:    nil,
		},
		{
			name:    "optional entries do not count toward the threshold",
			entries: append(newEntries("w", 25, false), newEntries("o", 10, true)...),
			want:    nil,
		},
		{
			name:    "exactly at the threshold",
			entries: newEntries("w", 30, false),
			want: []Part{
				{ID: "part-1", Name: "Part 1 (1-20)", Start: 0, End: 20, Count: 20},
				{ID: "part-2", Name: "Part 2 (21-30)", Start: 20, End: 30, Count: 10},
			},
		},
		{
			name:    "35 main entries make two parts",
			entries: append(newEntries("w", 35, false), newEntries("o", 3, true)...),
			want: []Part{
				{ID: "part-1", Name: "Part 1 (1-20)", Start: 0, End: 20, Count: 20},
				{ID: "part-2", Name: "Part 2 (21-35)", Start: 20, End: 35, Count: 15},
			},
		},
		{
			name:    "60 main entries make three full parts",
			entries: newEntries("w", 60, false),
			want: []Part{
				{ID: "part-1", Name: "Part 1 (1-20)", Start: 0, End: 20, Count: 20},
				{ID: "part-2", Name: "Part 2 (21-40)", Start: 20, End: 40, Count: 20},
				{ID: "part-3", Name: "Part 3 (41-60)", Start: 40, End: 60, Count: 20},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parts(tt.entries))
		})
	}
}

func TestPartitionOptions(t *testing.T) {
	entries := append(newEntries("w", 35, false), newEntries("o", 4, true)...)

	t.Run("without optional words", func(t *testing.T) {
		got := PartitionOptions(entries, false)
		require.Len(t, got, 4)
		assert.Equal(t, "Complete lesson (35 words)", got[0].Label)
		assert.Equal(t, "part-1", got[1].ID)
		assert.Equal(t, "Part 2 (21-35)", got[2].Label)
		assert.Equal(t, PartitionOption{
			ID:        "optional-only",
			Label:     "Optional words only (4 words)",
			Count:     4,
			Partition: OptionalOnly(),
		}, got[3])
	})

	t.Run("with optional words", func(t *testing.T) {
		got := PartitionOptions(entries, true)
		assert.Equal(t, 39, got[0].Count)
	})

	t.Run("small lesson without optional words has a single option", func(t *testing.T) {
		got := PartitionOptions(newEntries("w", 5, false), false)
		require.Len(t, got, 1)
		assert.Equal(t, AllEntries(), got[0].Partition)
	})
}

func TestParsePartition(t *testing.T) {
	entries := newEntries("w", 35, false)

	tests := []struct {
		name    string
		id      string
		want    Partition
		wantErr bool
	}{
		{name: "empty means all", id: "", want: AllEntries()},
		{name: "all", id: "all", want: AllEntries()},
		{name: "optional only", id: "optional-only", want: OptionalOnly()},
		{name: "second part", id: "part-2", want: Range(20, 35)},
		{name: "part out of range", id: "part-3", wantErr: true},
		{name: "unknown", id: "half", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePartition(tt.id, entries)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPartition)
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPartitionLabel(t *testing.T) {
	entries := newEntries("w", 35, false)

	assert.Equal(t, "", PartitionLabel(AllEntries(), entries))
	assert.Equal(t, "Optional words only", PartitionLabel(OptionalOnly(), entries))
	assert.Equal(t, "Part 2 (21-35)", PartitionLabel(Range(20, 35), entries))
	assert.Equal(t, "Words 3-5", PartitionLabel(Range(2, 5), entries))
}

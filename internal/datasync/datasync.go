// Package datasync copies review ledgers between storage backends.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/shokyuu/internal/review"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// SyncResult tracks counts for a sync.
type SyncResult struct {
	LessonsNew     int
	EntriesNew     int
	EntriesSkipped int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	DryRun bool
}

// Syncer merges the ledger of one store into another.
// Entries are only added to the target, never removed.
type Syncer struct {
	source review.Store
	target review.Store
	writer io.Writer
}

func NewSyncer(source, target review.Store, writer io.Writer) *Syncer {
	return &Syncer{
		source: source,
		target: target,
		writer: writer,
	}
}

func (s *Syncer) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	from, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.Load() > %w", err)
	}
	to, err := s.target.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("target.Load() > %w", err)
	}

	var result SyncResult
	merged := make(review.Decks, len(to))
	for lesson, entries := range to {
		merged[lesson] = entries
	}
	for _, lesson := range from.Lessons() {
		set := vocabulary.NewSet(to[lesson]...)
		added := 0
		for _, entry := range from[lesson] {
			if !set.Add(entry) {
				fmt.Fprintf(s.writer, "  [SKIP]  %s: %q (%s)\n", lesson, entry.Source, entry.Translation)
				result.EntriesSkipped++
				continue
			}
			fmt.Fprintf(s.writer, "  [NEW]  %s: %q (%s)\n", lesson, entry.Source, entry.Translation)
			added++
		}
		if added == 0 {
			continue
		}
		if len(to[lesson]) == 0 {
			result.LessonsNew++
		}
		result.EntriesNew += added
		merged[lesson] = set.Entries()
	}

	if opts.DryRun || result.EntriesNew == 0 {
		return &result, nil
	}
	if err := s.target.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("target.Save() > %w", err)
	}
	return &result, nil
}

package review

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// Ledger is the in-memory review ledger backed by a Store.
// Every mutation is saved immediately as a full snapshot. It is safe for concurrent use
// within one process, but the store is loaded only by Open, so a ledger must be the only
// writer of its store: two processes sharing a file or remote ledger overwrite each other.
type Ledger struct {
	mu     sync.Mutex
	store  Store
	logger *zap.Logger
	decks  map[string]*vocabulary.Set
}

// Open loads the ledger from the store. A load failure is logged and
// the ledger starts empty.
func Open(ctx context.Context, store Store, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	ledger := &Ledger{
		store:  store,
		logger: logger,
		decks:  make(map[string]*vocabulary.Set),
	}

	decks, err := store.Load(ctx)
	if err != nil {
		logger.Warn("failed to load the review ledger, starting empty", zap.Error(err))
		return ledger
	}
	for lesson, entries := range decks {
		if len(entries) == 0 {
			continue
		}
		ledger.decks[lesson] = vocabulary.NewSet(entries...)
	}
	return ledger
}

// RecordMisses merges entries into the lesson's set and returns the number of new entries.
// On a save failure the in-memory ledger keeps the change.
func (l *Ledger) RecordMisses(ctx context.Context, lesson string, entries []vocabulary.Entry) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.decks[lesson]
	if !ok {
		set = vocabulary.NewSet()
	}
	added := 0
	for _, e := range entries {
		if set.Add(e) {
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}
	l.decks[lesson] = set

	if err := l.save(ctx); err != nil {
		return added, err
	}
	return added, nil
}

// ClearEntry removes the entry from the lesson's set and returns how many entries remain.
// The lesson is dropped from the ledger once its set is empty.
func (l *Ledger) ClearEntry(ctx context.Context, lesson string, entry vocabulary.Entry) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.decks[lesson]
	if !ok {
		return 0, nil
	}
	if !set.Remove(entry) {
		return set.Len(), nil
	}
	remaining := set.Len()
	if remaining == 0 {
		delete(l.decks, lesson)
	}

	if err := l.save(ctx); err != nil {
		return remaining, err
	}
	return remaining, nil
}

// Entries returns a copy of the lesson's review entries.
func (l *Ledger) Entries(lesson string) []vocabulary.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	set, ok := l.decks[lesson]
	if !ok {
		return nil
	}
	return set.Entries()
}

type LessonReview struct {
	Lesson string
	Count  int
}

// ListLessonsWithReview returns the lessons that have entries to review, sorted by lesson ID.
func (l *Ledger) ListLessonsWithReview() []LessonReview {
	decks := l.Snapshot()
	var result []LessonReview
	for _, lesson := range decks.Lessons() {
		result = append(result, LessonReview{
			Lesson: lesson,
			Count:  len(decks[lesson]),
		})
	}
	return result
}

// Snapshot returns a copy of the whole ledger.
func (l *Ledger) Snapshot() Decks {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

func (l *Ledger) snapshot() Decks {
	decks := make(Decks, len(l.decks))
	for lesson, set := range l.decks {
		decks[lesson] = set.Entries()
	}
	return decks
}

func (l *Ledger) save(ctx context.Context) error {
	if err := l.store.Save(ctx, l.snapshot()); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

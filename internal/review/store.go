// Package review keeps the per-lesson sets of words a learner missed and persists them.
package review

import (
	"context"
	"errors"
	"sort"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// ErrPersistence wraps every failure to load or save the ledger.
var ErrPersistence = errors.New("review: persistence failure")

// Decks maps a lesson ID to the entries to review, in the order they were missed.
type Decks map[string][]vocabulary.Entry

// Lessons returns lesson IDs with at least one entry, sorted.
func (d Decks) Lessons() []string {
	lessons := make([]string, 0, len(d))
	for lesson, entries := range d {
		if len(entries) > 0 {
			lessons = append(lessons, lesson)
		}
	}
	sort.Strings(lessons)
	return lessons
}

//go:generate mockgen -source=store.go -destination=../mocks/review/mock_store.go -package=mock_review Store

// Store loads and saves the whole ledger at once.
type Store interface {
	Load(ctx context.Context) (Decks, error)
	Save(ctx context.Context, decks Decks) error
}

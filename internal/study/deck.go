// Package study implements the study session engine: deck building and the session state machine.
package study

import (
	"fmt"
	"math/rand/v2"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// ShufflerFunc adapts a function to a Shuffler.
type ShufflerFunc func(n int, swap func(i, j int))

func (f ShufflerFunc) Shuffle(n int, swap func(i, j int)) {
	f(n, swap)
}

// DefaultShuffler is an unbiased Fisher-Yates shuffle backed by math/rand/v2.
var DefaultShuffler Shuffler = ShufflerFunc(rand.Shuffle)

type DeckConfig struct {
	IncludeOptional bool
	Partition       Partition
	Shuffle         bool
}

// Deck holds the frozen original selection and the working order for a session.
type Deck struct {
	original []vocabulary.Entry
	working  []vocabulary.Entry
}

// Original returns a copy of the baseline selection, in lesson order.
func (d *Deck) Original() []vocabulary.Entry {
	return cloneEntries(d.original)
}

// Working returns a copy of the play order.
func (d *Deck) Working() []vocabulary.Entry {
	return cloneEntries(d.working)
}

func (d *Deck) Len() int {
	return len(d.working)
}

// BuildDeck selects entries according to cfg and orders them for play.
func BuildDeck(entries []vocabulary.Entry, cfg DeckConfig, shuffler Shuffler) (*Deck, error) {
	selected, err := selectEntries(entries, cfg)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("%s: %w", cfg.Partition, ErrEmptySelection)
	}

	working := cloneEntries(selected)
	if cfg.Shuffle {
		if shuffler == nil {
			shuffler = DefaultShuffler
		}
		shuffleEntries(shuffler, working)
	}
	return &Deck{
		original: selected,
		working:  working,
	}, nil
}

func selectEntries(entries []vocabulary.Entry, cfg DeckConfig) ([]vocabulary.Entry, error) {
	switch cfg.Partition.Kind {
	case PartitionOptionalOnly:
		return optionalEntries(entries), nil
	case PartitionRange:
		main := mainEntries(entries)
		p := cfg.Partition
		if len(main) < PartitionThreshold {
			return nil, fmt.Errorf("%s on a lesson with %d main entries: %w", p, len(main), ErrInvalidPartition)
		}
		if p.Start < 0 || p.End > len(main) || p.Start >= p.End {
			return nil, fmt.Errorf("%s out of %d main entries: %w", p, len(main), ErrInvalidPartition)
		}
		return cloneEntries(main[p.Start:p.End]), nil
	case PartitionAll:
		if cfg.IncludeOptional {
			return cloneEntries(entries), nil
		}
		return mainEntries(entries), nil
	default:
		return nil, fmt.Errorf("unknown partition kind %d: %w", cfg.Partition.Kind, ErrInvalidPartition)
	}
}

func shuffleEntries(shuffler Shuffler, entries []vocabulary.Entry) {
	shuffler.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
}

func cloneEntries(entries []vocabulary.Entry) []vocabulary.Entry {
	if entries == nil {
		return nil
	}
	result := make([]vocabulary.Entry, len(entries))
	copy(result, entries)
	return result
}

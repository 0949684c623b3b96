package study

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInfinite
	ModeReview
)

func (m Mode) String() string {
	switch m {
	case ModeInfinite:
		return "infinite"
	case ModeReview:
		return "review"
	default:
		return "normal"
	}
}

type Phase int

const (
	PhasePresenting Phase = iota
	PhaseRevealed
	PhaseSessionComplete
	PhaseReviewComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseRevealed:
		return "revealed"
	case PhaseSessionComplete:
		return "session complete"
	case PhaseReviewComplete:
		return "review complete"
	default:
		return "presenting"
	}
}

// Terminal reports whether no more judgments are accepted.
func (p Phase) Terminal() bool {
	return p == PhaseSessionComplete || p == PhaseReviewComplete
}

// Event is the outcome of a judgment.
type Event int

const (
	EventAdvanced Event = iota
	EventRoundRequeued
	EventSessionComplete
	EventReviewComplete
)

func (e Event) String() string {
	switch e {
	case EventRoundRequeued:
		return "round requeued"
	case EventSessionComplete:
		return "session complete"
	case EventReviewComplete:
		return "review complete"
	default:
		return "advanced"
	}
}

//go:generate mockgen -source=session.go -destination=../mocks/study/mock_ledger.go -package=mock_study Ledger

// Ledger records missed entries across sessions.
type Ledger interface {
	// RecordMisses merges entries into the lesson's review set and returns how many were new.
	RecordMisses(ctx context.Context, lesson string, entries []vocabulary.Entry) (int, error)
	// ClearEntry removes an entry from the lesson's review set and returns how many remain.
	ClearEntry(ctx context.Context, lesson string, entry vocabulary.Entry) (int, error)
}

type Option func(*Session)

func WithShuffler(shuffler Shuffler) Option {
	return func(s *Session) {
		s.shuffler = shuffler
	}
}

func WithLedger(ledger Ledger) Option {
	return func(s *Session) {
		s.ledger = ledger
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is the state of one study session. It is not safe for concurrent use.
type Session struct {
	lesson    string
	partLabel string
	deck      *Deck
	shuffle   bool

	shuffler Shuffler
	ledger   Ledger
	logger   *zap.Logger

	mode     Mode
	phase    Phase
	working  []vocabulary.Entry
	position int
	round    int
	pass     int

	correctCount int
	wrongCount   int

	missedThisRound *vocabulary.Set
	everRemembered  *vocabulary.Set
	everMissed      *vocabulary.Set
	// sessionMisses keeps every entry judged wrong in the current pass, even after recovery.
	sessionMisses *vocabulary.Set

	newReviewEntries int
	reviewRemaining  int
}

// NewSession builds a deck from the lesson's entries and starts a normal session.
func NewSession(lesson string, entries []vocabulary.Entry, cfg DeckConfig, opts ...Option) (*Session, error) {
	if lesson == "" {
		return nil, ErrNoLessonSelected
	}
	s := newSession(lesson, ModeNormal, cfg.Shuffle, opts)

	deck, err := BuildDeck(entries, cfg, s.shuffler)
	if err != nil {
		return nil, fmt.Errorf("BuildDeck(%s) > %w", lesson, err)
	}
	s.deck = deck
	s.partLabel = PartitionLabel(cfg.Partition, entries)
	s.startPass(deck.Working())
	return s, nil
}

// NewReviewSession starts a session over the lesson's review entries.
// Correct judgments clear entries from the ledger.
func NewReviewSession(lesson string, entries []vocabulary.Entry, shuffle bool, opts ...Option) (*Session, error) {
	if lesson == "" {
		return nil, ErrNoLessonSelected
	}
	s := newSession(lesson, ModeReview, shuffle, opts)

	deck, err := BuildDeck(entries, DeckConfig{IncludeOptional: true, Shuffle: shuffle}, s.shuffler)
	if err != nil {
		return nil, fmt.Errorf("BuildDeck(%s) > %w", lesson, err)
	}
	s.deck = deck
	s.reviewRemaining = deck.Len()
	s.startPass(deck.Working())
	return s, nil
}

func newSession(lesson string, mode Mode, shuffle bool, opts []Option) *Session {
	s := &Session{
		lesson:   lesson,
		shuffle:  shuffle,
		mode:     mode,
		shuffler: DefaultShuffler,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) startPass(working []vocabulary.Entry) {
	s.working = working
	s.position = 0
	s.round = 1
	s.pass++
	s.phase = PhasePresenting
	s.correctCount = 0
	s.wrongCount = 0
	s.newReviewEntries = 0
	s.missedThisRound = vocabulary.NewSet()
	s.everRemembered = vocabulary.NewSet()
	s.everMissed = vocabulary.NewSet()
	s.sessionMisses = vocabulary.NewSet()
}

func (s *Session) Lesson() string {
	return s.lesson
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Phase() Phase {
	return s.phase
}

// Deck returns the deck the session was built from.
func (s *Session) Deck() *Deck {
	return s.deck
}

// Current returns the card being presented. It returns false once the session is over.
func (s *Session) Current() (vocabulary.Entry, bool) {
	if s.phase.Terminal() || s.position >= len(s.working) {
		return vocabulary.Entry{}, false
	}
	return s.working[s.position], true
}

// Flip toggles between the front and the back of the current card.
func (s *Session) Flip() error {
	switch s.phase {
	case PhasePresenting:
		s.phase = PhaseRevealed
	case PhaseRevealed:
		s.phase = PhasePresenting
	default:
		return fmt.Errorf("flip in %s phase: %w", s.phase, ErrInvalidTransition)
	}
	return nil
}

// Judge records whether the learner remembered the current card and advances.
func (s *Session) Judge(ctx context.Context, correct bool) (Event, error) {
	if s.phase.Terminal() {
		return 0, fmt.Errorf("judge in %s phase: %w", s.phase, ErrInvalidTransition)
	}
	entry := s.working[s.position]

	if correct {
		s.correctCount++
		s.everRemembered.Add(entry)
		s.everMissed.Remove(entry)
		s.missedThisRound.Remove(entry)

		if s.mode == ModeReview && s.clearFromLedger(ctx, entry) {
			s.position++
			s.phase = PhaseReviewComplete
			return EventReviewComplete, nil
		}
	} else {
		s.wrongCount++
		s.everMissed.Add(entry)
		s.missedThisRound.Add(entry)
		s.sessionMisses.Add(entry)
	}

	s.position++
	s.phase = PhasePresenting
	if s.position < len(s.working) {
		return EventAdvanced, nil
	}
	return s.completeRound(ctx), nil
}

// clearFromLedger reports whether the lesson's review set became empty.
func (s *Session) clearFromLedger(ctx context.Context, entry vocabulary.Entry) bool {
	if s.ledger == nil {
		return false
	}
	remaining, err := s.ledger.ClearEntry(ctx, s.lesson, entry)
	if err != nil {
		s.logger.Warn("failed to clear a review entry",
			zap.String("lesson", s.lesson),
			zap.String("source", entry.Source),
			zap.Error(err),
		)
		return false
	}
	s.reviewRemaining = remaining
	return remaining == 0
}

func (s *Session) completeRound(ctx context.Context) Event {
	if s.missedThisRound.Len() > 0 {
		next := s.missedThisRound.Entries()
		shuffleEntries(s.shuffler, next)
		s.working = next
		s.position = 0
		s.round++
		s.missedThisRound = vocabulary.NewSet()
		s.logger.Debug("requeued missed entries",
			zap.String("lesson", s.lesson),
			zap.Int("round", s.round),
			zap.Int("count", len(next)),
		)
		return EventRoundRequeued
	}

	s.phase = PhaseSessionComplete
	if s.mode != ModeReview && s.sessionMisses.Len() > 0 && s.ledger != nil {
		added, err := s.ledger.RecordMisses(ctx, s.lesson, s.sessionMisses.Entries())
		if err != nil {
			s.logger.Warn("failed to record misses to the review ledger",
				zap.String("lesson", s.lesson),
				zap.Int("count", s.sessionMisses.Len()),
				zap.Error(err),
			)
		} else {
			s.newReviewEntries = added
		}
	}
	return EventSessionComplete
}

// CanRestartInfinite reports whether the completed session may continue in infinite mode.
// A normal session qualifies only when it had no misses; an infinite session always does.
func (s *Session) CanRestartInfinite() bool {
	if s.phase != PhaseSessionComplete {
		return false
	}
	switch s.mode {
	case ModeInfinite:
		return true
	case ModeNormal:
		return s.sessionMisses.Len() == 0
	default:
		return false
	}
}

// RestartInfinite starts a new pass over the original deck in infinite mode.
func (s *Session) RestartInfinite() error {
	if !s.CanRestartInfinite() {
		return fmt.Errorf("restart %s session in %s phase: %w", s.mode, s.phase, ErrInvalidTransition)
	}
	working := s.deck.Original()
	if s.shuffle {
		shuffleEntries(s.shuffler, working)
	}
	s.mode = ModeInfinite
	s.startPass(working)
	return nil
}

// Snapshot is a read-only view of the session for presentation.
type Snapshot struct {
	Lesson             string
	PartLabel          string
	Mode               Mode
	Phase              Phase
	Position           int
	Total              int
	Round              int
	Pass               int
	Current            vocabulary.Entry
	HasCurrent         bool
	Correct            int
	Wrong              int
	Remembered         int
	NotRemembered      int
	MissedThisRound    int
	CanRestartInfinite bool
	NewReviewEntries   int
	ReviewRemaining    int
}

func (s *Session) Snapshot() Snapshot {
	current, ok := s.Current()
	return Snapshot{
		Lesson:             s.lesson,
		PartLabel:          s.partLabel,
		Mode:               s.mode,
		Phase:              s.phase,
		Position:           s.position,
		Total:              len(s.working),
		Round:              s.round,
		Pass:               s.pass,
		Current:            current,
		HasCurrent:         ok,
		Correct:            s.correctCount,
		Wrong:              s.wrongCount,
		Remembered:         s.everRemembered.Len(),
		NotRemembered:      s.everMissed.Len(),
		MissedThisRound:    s.missedThisRound.Len(),
		CanRestartInfinite: s.CanRestartInfinite(),
		NewReviewEntries:   s.newReviewEntries,
		ReviewRemaining:    s.reviewRemaining,
	}
}

// Summary reports the outcome of the current pass.
type Summary struct {
	Lesson           string
	Mode             Mode
	Correct          int
	Wrong            int
	Accuracy         int
	Remembered       []vocabulary.Entry
	NotRemembered    []vocabulary.Entry
	Misses           []vocabulary.Entry
	Rounds           int
	NewReviewEntries int
	InfiniteOffered  bool
	ReviewCleared    bool
}

func (s *Session) Summary() Summary {
	return Summary{
		Lesson:           s.lesson,
		Mode:             s.mode,
		Correct:          s.correctCount,
		Wrong:            s.wrongCount,
		Accuracy:         accuracy(s.correctCount, s.wrongCount),
		Remembered:       s.everRemembered.Entries(),
		NotRemembered:    s.everMissed.Entries(),
		Misses:           s.sessionMisses.Entries(),
		Rounds:           s.round,
		NewReviewEntries: s.newReviewEntries,
		InfiniteOffered:  s.CanRestartInfinite(),
		ReviewCleared:    s.phase == PhaseReviewComplete,
	}
}

// accuracy returns the percentage of correct judgments, rounded to the nearest integer.
func accuracy(correct, wrong int) int {
	total := correct + wrong
	if total == 0 {
		return 0
	}
	return (correct*100 + total/2) / total
}

package review

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/avast/retry-go"

	"github.com/at-ishikawa/shokyuu/internal/reviewrpc"
	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

// RemoteStore keeps the ledger on a shokyuu server through the ReviewService.
type RemoteStore struct {
	client           reviewrpc.ReviewServiceClient
	token            string
	maxRetryAttempts uint
	retryDelay       time.Duration
}

type RemoteStoreOption func(*RemoteStore)

func WithMaxRetryAttempts(attempts uint) RemoteStoreOption {
	return func(s *RemoteStore) {
		s.maxRetryAttempts = attempts
	}
}

func WithRetryDelay(delay time.Duration) RemoteStoreOption {
	return func(s *RemoteStore) {
		s.retryDelay = delay
	}
}

func NewRemoteStore(httpClient connect.HTTPClient, baseURL, token string, opts ...RemoteStoreOption) *RemoteStore {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	store := &RemoteStore{
		client:           reviewrpc.NewReviewServiceClient(httpClient, baseURL),
		token:            token,
		maxRetryAttempts: 3,
		retryDelay:       200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *RemoteStore) Load(ctx context.Context) (Decks, error) {
	var decks Decks
	err := s.do(ctx, func() error {
		req := connect.NewRequest(&reviewrpc.GetLedgerRequest{})
		s.authorize(req.Header())
		res, err := s.client.GetLedger(ctx, req)
		if err != nil {
			return err
		}
		decks = FromLedgerLessons(res.Msg.Lessons)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("client.GetLedger() > %w", err)
	}
	return decks, nil
}

func (s *RemoteStore) Save(ctx context.Context, decks Decks) error {
	err := s.do(ctx, func() error {
		req := connect.NewRequest(&reviewrpc.SaveLedgerRequest{
			Lessons: ToLedgerLessons(decks),
		})
		s.authorize(req.Header())
		_, err := s.client.SaveLedger(ctx, req)
		return err
	})
	if err != nil {
		return fmt.Errorf("client.SaveLedger() > %w", err)
	}
	return nil
}

func (s *RemoteStore) authorize(header http.Header) {
	if s.token != "" {
		header.Set("Authorization", "Bearer "+s.token)
	}
}

// do retries fn while the server is unavailable.
func (s *RemoteStore) do(ctx context.Context, fn func() error) error {
	return retry.Do(
		func() error {
			err := fn()
			if err != nil && connect.CodeOf(err) != connect.CodeUnavailable {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.maxRetryAttempts+1),
		retry.Delay(s.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}

// ToLedgerLessons converts decks to wire messages ordered by lesson ID.
func ToLedgerLessons(decks Decks) []reviewrpc.LedgerLesson {
	var lessons []reviewrpc.LedgerLesson
	for _, lesson := range decks.Lessons() {
		lessons = append(lessons, reviewrpc.LedgerLesson{
			Lesson:  lesson,
			Entries: decks[lesson],
		})
	}
	return lessons
}

// FromLedgerLessons converts wire messages to decks. A lesson listed more than once is merged,
// and within a lesson the first entry for each (source, transliteration) wins.
func FromLedgerLessons(lessons []reviewrpc.LedgerLesson) Decks {
	sets := make(map[string]*vocabulary.Set, len(lessons))
	for _, lesson := range lessons {
		set, ok := sets[lesson.Lesson]
		if !ok {
			set = vocabulary.NewSet()
			sets[lesson.Lesson] = set
		}
		for _, entry := range lesson.Entries {
			set.Add(entry)
		}
	}

	decks := make(Decks, len(sets))
	for lesson, set := range sets {
		if set.Len() == 0 {
			continue
		}
		decks[lesson] = set.Entries()
	}
	return decks
}

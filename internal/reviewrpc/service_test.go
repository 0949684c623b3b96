package reviewrpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/shokyuu/internal/vocabulary"
)

type fakeReviewService struct {
	mu      sync.Mutex
	lessons []LedgerLesson
	saved   []LedgerLesson
	token   string
}

func (s *fakeReviewService) GetLedger(_ context.Context, req *connect.Request[GetLedgerRequest]) (*connect.Response[GetLedgerResponse], error) {
	if req.Header().Get("Authorization") != "Bearer "+s.token {
		return nil, connect.NewError(connect.CodeUnauthenticated, errors.New("missing token"))
	}
	return connect.NewResponse(&GetLedgerResponse{Lessons: s.lessons}), nil
}

func (s *fakeReviewService) SaveLedger(_ context.Context, req *connect.Request[SaveLedgerRequest]) (*connect.Response[SaveLedgerResponse], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved = req.Msg.Lessons
	saved := 0
	for _, lesson := range req.Msg.Lessons {
		saved += len(lesson.Entries)
	}
	return connect.NewResponse(&SaveLedgerResponse{Saved: saved}), nil
}

func newTestServer(t *testing.T, svc ReviewServiceHandler) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	path, handler := NewReviewServiceHandler(svc)
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestReviewService_RoundTrip(t *testing.T) {
	lessons := []LedgerLesson{
		{
			Lesson: "Unit1",
			Entries: []vocabulary.Entry{
				{Source: "いぬ", Transliteration: "inu", Translation: "dog"},
				{Source: "ねこ", Transliteration: "neko", Translation: "cat", Optional: true},
			},
		},
	}
	svc := &fakeReviewService{lessons: lessons, token: "secret"}
	server := newTestServer(t, svc)
	client := NewReviewServiceClient(server.Client(), server.URL+"/")

	t.Run("get ledger", func(t *testing.T) {
		req := connect.NewRequest(&GetLedgerRequest{})
		req.Header().Set("Authorization", "Bearer secret")

		res, err := client.GetLedger(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, lessons, res.Msg.Lessons)
	})

	t.Run("get ledger without token", func(t *testing.T) {
		_, err := client.GetLedger(context.Background(), connect.NewRequest(&GetLedgerRequest{}))
		require.Error(t, err)
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("save ledger", func(t *testing.T) {
		res, err := client.SaveLedger(context.Background(), connect.NewRequest(&SaveLedgerRequest{Lessons: lessons}))
		require.NoError(t, err)
		assert.Equal(t, 2, res.Msg.Saved)
		svc.mu.Lock()
		defer svc.mu.Unlock()
		assert.Equal(t, lessons, svc.saved)
	})
}

func TestNewReviewServiceHandler_UnknownProcedure(t *testing.T) {
	path, handler := NewReviewServiceHandler(&fakeReviewService{})
	assert.Equal(t, "/shokyuu.review.v1.ReviewService/", path)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/shokyuu.review.v1.ReviewService/DeleteLedger", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCodec(t *testing.T) {
	codec := Codec{}
	assert.Equal(t, "json", codec.Name())

	var msg SaveLedgerResponse
	require.NoError(t, codec.Unmarshal(nil, &msg))
	assert.Equal(t, SaveLedgerResponse{}, msg)

	data, err := codec.Marshal(&SaveLedgerResponse{Saved: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"saved":3}`, string(data))
}

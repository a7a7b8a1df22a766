package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizreview/backend/internal/api"
	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
	"github.com/quizreview/backend/internal/domain/topic"
	"github.com/quizreview/backend/internal/service"
	"github.com/quizreview/backend/internal/store"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.NewSQLite("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	require.NoError(t, s.SaveTopic(ctx, &topic.Topic{ID: "go", Name: "Go", Domain: "golang"}))
	require.NoError(t, s.SaveTopic(ctx, &topic.Topic{ID: "empty", Name: "Empty"}))

	options := []question.Option{{Key: "A", Text: "a"}, {Key: "B", Text: "b"}, {Key: "C", Text: "c"}}
	for _, q := range []question.Question{
		{ID: "go-1", TopicID: "go", Prompt: "one", Options: options, CorrectAnswer: "A", Type: question.TypeSingle},
		{ID: "go-2", TopicID: "go", Prompt: "two", Options: options, CorrectAnswer: "A,C", Type: question.TypeMultiple, Explanation: "both"},
		{ID: "go-3", TopicID: "go", Prompt: "three", Options: options, CorrectAnswer: "B", Type: question.TypeSingle},
	} {
		_, err := s.AddQuestion(ctx, q)
		require.NoError(t, err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reviews := service.NewReviewService(s, s, s, review.DefaultConfig(), logger)
	return api.NewRouter(api.NewHandler(s, reviews, logger), logger, 5*time.Second)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealth(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodOptions, "/reviews", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestTopics(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	topics := decode[[]api.TopicResponse](t, rec)
	require.Len(t, topics, 2)
	assert.Equal(t, "empty", topics[0].ID)
	assert.Equal(t, 3, topics[1].QuestionCount)

	rec = do(t, h, http.MethodGet, "/topics/go", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "correct_answer")
	got := decode[api.GetTopicResponse](t, rec)
	assert.Len(t, got.Questions, 3)

	rec = do(t, h, http.MethodGet, "/topics/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuiz(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/topics/go/tests",
		`{"answers":[{"question_id":"go-1","selected":"A"},{"question_id":"go-2","selected":["C","A"]}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode[api.QuizResultResponse](t, rec)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 67, result.Percentage)

	rec = do(t, h, http.MethodPost, "/topics/go/tests", `{"answers":[{"question_id":"nope","selected":"A"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/topics/empty/tests", `{"answers":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStartReview_BadRequests(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"user_id":`},
		{"missing user", `{"topic_id":"go"}`},
		{"unknown field", `{"user_id":"u","topic_id":"go","extra":1}`},
		{"empty topic", `{"user_id":"u","topic_id":"empty"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/reviews", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestReviewFlow(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/reviews", `{"user_id":"user-1","topic_id":"go"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	started := decode[api.RoundQuestionsResponse](t, rec)
	require.Len(t, started.Questions, 3)
	assert.Equal(t, 1, started.Round)
	base := "/reviews/" + started.SessionID

	// answer outside the round
	rec = do(t, h, http.MethodPost, base+"/rounds", `{"answers":[{"question_id":"other","selected":"A"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// go-2 answered with a single key fails closed, go-3 is left out
	rec = do(t, h, http.MethodPost, base+"/rounds",
		`{"answers":[{"question_id":"go-1","selected":"A"},{"question_id":"go-2","selected":"A"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	round1 := decode[api.RoundResultResponse](t, rec)
	assert.Equal(t, 1, round1.Correct)
	assert.Equal(t, 33, round1.Percentage)
	assert.False(t, round1.IsComplete)
	assert.Equal(t, []string{"go-2", "go-3"}, round1.NextQuestionIDs)

	rec = do(t, h, http.MethodGet, base+"/round", "")
	require.Equal(t, http.StatusOK, rec.Code)
	round2 := decode[api.RoundQuestionsResponse](t, rec)
	assert.Equal(t, 2, round2.Round)
	require.Len(t, round2.Questions, 2)
	assert.Equal(t, "go-2", round2.Questions[0].ID)

	rec = do(t, h, http.MethodPost, base+"/rounds",
		`{"answers":[{"question_id":"go-2","selected":["C","A"]},{"question_id":"go-3","selected":"B"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	final := decode[api.RoundResultResponse](t, rec)
	assert.True(t, final.IsComplete)
	assert.True(t, final.MasteryAchieved)
	assert.Equal(t, []string{}, final.NextQuestionIDs)

	rec = do(t, h, http.MethodGet, base+"/round", "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/rounds", `{"answers":[]}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, base+"/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := rec.Body.String()
	summary := decode[api.SummaryResponse](t, rec)
	assert.Equal(t, 2, summary.TotalRounds)
	assert.Equal(t, 100, summary.FinalScore)
	assert.True(t, summary.MasteryAchieved)

	rec = do(t, h, http.MethodPost, base+"/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, first, rec.Body.String())

	rec = do(t, h, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[api.SessionResponse](t, rec)
	assert.Equal(t, "completed", session.Status)
	require.Len(t, session.History, 2)
	assert.Equal(t, []string{"go-2", "go-3"}, session.History[0].IncorrectIDs)
	assert.Equal(t, []string{}, session.History[1].IncorrectIDs)

	rec = do(t, h, http.MethodGet, "/users/user-1/mastery", "")
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[api.OverviewResponse](t, rec)
	assert.Equal(t, 1, overview.Mastered)
	assert.Equal(t, 1, overview.NotStarted)
	assert.Equal(t, float64(2), overview.AverageRoundsToMastery)

	rec = do(t, h, http.MethodGet, "/users/user-1/topics/go/history", "")
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[[]api.SummaryResponse](t, rec)
	require.Len(t, history, 1)
	assert.Equal(t, started.SessionID, history[0].SessionID)
}

func TestUnknownSession(t *testing.T) {
	h := newServer(t)

	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/reviews/missing", ""},
		{http.MethodGet, "/reviews/missing/round", ""},
		{http.MethodPost, "/reviews/missing/rounds", `{"answers":[]}`},
		{http.MethodPost, "/reviews/missing/complete", ""},
	} {
		rec := do(t, h, req.method, req.path, req.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, req.method+" "+req.path)
	}
}

func TestEarlyComplete(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/reviews", `{"user_id":"user-1","topic_id":"go"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	started := decode[api.RoundQuestionsResponse](t, rec)

	rec = do(t, h, http.MethodPost, "/reviews/"+started.SessionID+"/complete", "")
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[api.SummaryResponse](t, rec)
	assert.False(t, summary.MasteryAchieved)
	assert.Equal(t, 0, summary.TotalRounds)
	assert.Equal(t, "completed", summary.Status)
	assert.NotNil(t, summary.CompletedAt)

	rec = do(t, h, http.MethodGet, "/users/user-1/mastery", "")
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[api.OverviewResponse](t, rec)
	assert.Equal(t, 1, overview.InProgress)
}

package api

import (
	"net/http"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type TopicResponse struct {
	ID            string `json:"id" example:"go-concurrency"`
	Name          string `json:"name" example:"Go concurrency"`
	Domain        string `json:"domain,omitempty" example:"golang"`
	QuestionCount int    `json:"question_count" example:"12"`
}

type GetTopicResponse struct {
	ID        string            `json:"id" example:"go-concurrency"`
	Name      string            `json:"name" example:"Go concurrency"`
	Domain    string            `json:"domain,omitempty" example:"golang"`
	Questions []question.Public `json:"questions"`
}

type QuizResultResponse struct {
	TopicID    string          `json:"topic_id"`
	Entries    []EntryResponse `json:"entries"`
	Correct    int             `json:"correct" example:"4"`
	Total      int             `json:"total" example:"5"`
	Percentage int             `json:"percentage" example:"80"`
}

// ── Handlers ────────────────────────────────────────────────────────────────

// listTopics lists all topics.
// @Summary      List topics
// @Description  Returns all topics with their question counts.
// @Tags         Topics
// @Produce      json
// @Success      200  {array}   TopicResponse
// @Failure      500  {object}  map[string]string
// @Router       /topics [get]
func (h *Handler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.store.ListTopicSummaries(r.Context())
	if err != nil {
		h.logger.Error("failed to load topics", "error", err)
		respondError(w, http.StatusInternalServerError, "failed to load topics")
		return
	}

	response := make([]TopicResponse, len(topics))
	for i, t := range topics {
		response[i] = TopicResponse{
			ID:            t.ID,
			Name:          t.Name,
			Domain:        t.Domain,
			QuestionCount: t.QuestionCount,
		}
	}

	respondJSON(w, http.StatusOK, response)
}

// getTopic returns a topic with its questions, answers stripped.
// @Summary      Get a topic
// @Tags         Topics
// @Produce      json
// @Param        topicID  path      string  true  "Topic ID"
// @Success      200      {object}  GetTopicResponse
// @Failure      404      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /topics/{topicID} [get]
func (h *Handler) getTopic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	topicID := r.PathValue("topicID")

	t, err := h.store.GetTopic(ctx, topicID)
	if h.handleStoreError(w, err, "topic") {
		return
	}

	questions, err := h.store.QuestionsByTopic(ctx, topicID)
	if h.handleStoreError(w, err, "questions") {
		return
	}

	respondJSON(w, http.StatusOK, GetTopicResponse{
		ID:        t.ID,
		Name:      t.Name,
		Domain:    t.Domain,
		Questions: question.PublicAll(questions),
	})
}

// submitQuiz scores a one-off test over a whole topic. Nothing is stored.
// @Summary      Score a test
// @Description  Grades answers against every question of the topic. Unanswered questions count as incorrect.
// @Tags         Topics
// @Accept       json
// @Produce      json
// @Param        topicID  path      string                true  "Topic ID"
// @Param        body     body      SubmitAnswersRequest  true  "Answers"
// @Success      200      {object}  QuizResultResponse
// @Failure      400      {object}  map[string]string  "invalid body or topic has no questions"
// @Failure      422      {object}  map[string]string  "answer for a question outside the topic"
// @Router       /topics/{topicID}/tests [post]
func (h *Handler) submitQuiz(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := service.ScoreQuiz(r.Context(), h.store, r.PathValue("topicID"), req.submissions())
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, QuizResultResponse{
		TopicID:    result.TopicID,
		Entries:    toEntryResponses(result.Entries),
		Correct:    result.Score.Correct,
		Total:      result.Score.Total,
		Percentage: result.Score.Percentage,
	})
}

package api

import (
	"net/http"
	"time"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartReviewRequest struct {
	UserID  string `json:"user_id" validate:"required" example:"user-42"`
	TopicID string `json:"topic_id" validate:"required" example:"go-concurrency"`
}

// AnswerRequest carries a selection: a string for single-choice questions,
// an array of strings for multiple-choice ones.
type AnswerRequest struct {
	QuestionID string          `json:"question_id" validate:"required" example:"go-001"`
	Selected   question.Answer `json:"selected" swaggertype:"array,string" example:"A,C"`
}

type SubmitAnswersRequest struct {
	Answers []AnswerRequest `json:"answers" validate:"dive"`
}

func (r SubmitAnswersRequest) submissions() []review.Submission {
	subs := make([]review.Submission, len(r.Answers))
	for i, a := range r.Answers {
		subs[i] = review.Submission{QuestionID: a.QuestionID, Selected: a.Selected}
	}
	return subs
}

type RoundQuestionsResponse struct {
	SessionID string            `json:"session_id" example:"3f1c9a2e-6f0b-4a57-9a0e-0d8f8a0c1b2d"`
	Round     int               `json:"round" example:"1"`
	Questions []question.Public `json:"questions"`
}

type EntryResponse struct {
	QuestionID    string          `json:"question_id" example:"go-001"`
	Selected      question.Answer `json:"selected" swaggertype:"array,string"`
	CorrectAnswer string          `json:"correct_answer" example:"A,C"`
	IsCorrect     bool            `json:"is_correct"`
	Explanation   string          `json:"explanation,omitempty"`
}

type RoundResultResponse struct {
	SessionID       string          `json:"session_id"`
	Round           int             `json:"round" example:"1"`
	Entries         []EntryResponse `json:"entries"`
	Correct         int             `json:"correct" example:"3"`
	Total           int             `json:"total" example:"5"`
	Percentage      int             `json:"percentage" example:"60"`
	IsComplete      bool            `json:"is_complete"`
	MasteryAchieved bool            `json:"mastery_achieved"`
	NextQuestionIDs []string        `json:"next_question_ids"`
}

type RoundSummaryResponse struct {
	Round        int             `json:"round"`
	Entries      []EntryResponse `json:"entries"`
	Correct      int             `json:"correct"`
	Total        int             `json:"total"`
	Percentage   int             `json:"percentage"`
	IncorrectIDs []string        `json:"incorrect_ids"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}

type SessionResponse struct {
	ID              string                 `json:"id"`
	UserID          string                 `json:"user_id"`
	TopicID         string                 `json:"topic_id"`
	Round           int                    `json:"round"`
	Remaining       []string               `json:"remaining"`
	Status          string                 `json:"status" example:"active"`
	MasteryAchieved bool                   `json:"mastery_achieved"`
	History         []RoundSummaryResponse `json:"history"`
	StartedAt       time.Time              `json:"started_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
	CompletedAt     *time.Time             `json:"completed_at,omitempty"`
}

type SummaryResponse struct {
	SessionID        string     `json:"session_id"`
	UserID           string     `json:"user_id"`
	TopicID          string     `json:"topic_id"`
	Status           string     `json:"status" example:"completed"`
	TotalRounds      int        `json:"total_rounds" example:"2"`
	FinalScore       int        `json:"final_score" example:"100"`
	TimeSpentSeconds int64      `json:"time_spent_seconds" example:"312"`
	MasteryAchieved  bool       `json:"mastery_achieved"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
}

type MasteryRecordResponse struct {
	TopicID            string     `json:"topic_id"`
	TopicName          string     `json:"topic_name"`
	Level              string     `json:"level" example:"in-progress"`
	Sessions           int        `json:"sessions"`
	MasteredSessions   int        `json:"mastered_sessions"`
	RoundsToMasteryAvg float64    `json:"rounds_to_mastery_avg"`
	LastPracticed      *time.Time `json:"last_practiced,omitempty"`
	TimeSpentSeconds   int64      `json:"time_spent_seconds"`
}

type OverviewResponse struct {
	UserID                 string                  `json:"user_id"`
	Topics                 []MasteryRecordResponse `json:"topics"`
	Mastered               int                     `json:"mastered"`
	InProgress             int                     `json:"in_progress"`
	NotStarted             int                     `json:"not_started"`
	AverageRoundsToMastery float64                 `json:"average_rounds_to_mastery"`
	TotalTimeSpentSeconds  int64                   `json:"total_time_spent_seconds"`
}

func toEntryResponses(entries []review.Entry) []EntryResponse {
	out := make([]EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = EntryResponse{
			QuestionID:    e.QuestionID,
			Selected:      e.Selected,
			CorrectAnswer: e.CorrectAnswer,
			IsCorrect:     e.IsCorrect,
			Explanation:   e.Explanation,
		}
	}
	return out
}

func toSessionResponse(s *review.Session) SessionResponse {
	history := make([]RoundSummaryResponse, len(s.History))
	for i, r := range s.History {
		incorrect := r.IncorrectIDs
		if incorrect == nil {
			incorrect = []string{}
		}
		history[i] = RoundSummaryResponse{
			Round:        r.Round,
			Entries:      toEntryResponses(r.Entries),
			Correct:      r.Score.Correct,
			Total:        r.Score.Total,
			Percentage:   r.Score.Percentage,
			IncorrectIDs: incorrect,
			SubmittedAt:  r.SubmittedAt,
		}
	}
	return SessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		TopicID:         s.TopicID,
		Round:           s.Round,
		Remaining:       s.Remaining,
		Status:          string(s.Status),
		MasteryAchieved: s.MasteryAchieved,
		History:         history,
		StartedAt:       s.StartedAt,
		UpdatedAt:       s.UpdatedAt,
		CompletedAt:     s.CompletedAt,
	}
}

func toSummaryResponse(s review.Summary) SummaryResponse {
	return SummaryResponse{
		SessionID:        s.SessionID,
		UserID:           s.UserID,
		TopicID:          s.TopicID,
		Status:           string(s.Status),
		TotalRounds:      s.TotalRounds,
		FinalScore:       s.FinalScore,
		TimeSpentSeconds: int64(s.TimeSpent / time.Second),
		MasteryAchieved:  s.MasteryAchieved,
		StartedAt:        s.StartedAt,
		CompletedAt:      s.CompletedAt,
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startReview opens a review session over every question of a topic.
// @Summary      Start a review session
// @Description  Starts round 1 with all questions of the topic. Correct answers are not included.
// @Tags         Reviews
// @Accept       json
// @Produce      json
// @Param        body  body      StartReviewRequest  true  "User and topic"
// @Success      201   {object}  RoundQuestionsResponse
// @Failure      400   {object}  map[string]string  "invalid body or topic has no questions"
// @Failure      500   {object}  map[string]string
// @Router       /reviews [post]
func (h *Handler) startReview(w http.ResponseWriter, r *http.Request) {
	var req StartReviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	session, questions, err := h.reviews.Start(r.Context(), req.UserID, req.TopicID)
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, RoundQuestionsResponse{
		SessionID: session.ID,
		Round:     session.Round,
		Questions: questions,
	})
}

// getReview returns the full state of a session.
// @Summary      Get a review session
// @Tags         Reviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SessionResponse
// @Failure      404        {object}  map[string]string
// @Router       /reviews/{sessionID} [get]
func (h *Handler) getReview(w http.ResponseWriter, r *http.Request) {
	session, err := h.reviews.Session(r.Context(), r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSessionResponse(session))
}

// nextRound re-serves the questions of the current round.
// @Summary      Get the current round
// @Tags         Reviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  RoundQuestionsResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session completed"
// @Router       /reviews/{sessionID}/round [get]
func (h *Handler) nextRound(w http.ResponseWriter, r *http.Request) {
	session, questions, err := h.reviews.NextRound(r.Context(), r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, RoundQuestionsResponse{
		SessionID: session.ID,
		Round:     session.Round,
		Questions: questions,
	})
}

// submitRound grades the current round.
// @Summary      Submit a round
// @Description  Grades the answers of the current round. Questions left out count as incorrect; missed questions carry into the next round.
// @Tags         Reviews
// @Accept       json
// @Produce      json
// @Param        sessionID  path      string                true  "Session ID"
// @Param        body       body      SubmitAnswersRequest  true  "Answers"
// @Success      200        {object}  RoundResultResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string  "session completed or modified concurrently"
// @Failure      422        {object}  map[string]string  "answer outside the current round"
// @Router       /reviews/{sessionID}/rounds [post]
func (h *Handler) submitRound(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswersRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.reviews.SubmitRound(r.Context(), r.PathValue("sessionID"), req.submissions())
	if h.handleServiceError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, RoundResultResponse{
		SessionID:       result.SessionID,
		Round:           result.Round,
		Entries:         toEntryResponses(result.Entries),
		Correct:         result.Score.Correct,
		Total:           result.Score.Total,
		Percentage:      result.Score.Percentage,
		IsComplete:      result.IsComplete,
		MasteryAchieved: result.MasteryAchieved,
		NextQuestionIDs: result.NextQuestionIDs,
	})
}

// completeReview finalizes a session, ending it early if still active.
// @Summary      Complete a review session
// @Description  Idempotent. An active session is ended without mastery; a completed one returns its summary.
// @Tags         Reviews
// @Produce      json
// @Param        sessionID  path      string  true  "Session ID"
// @Success      200        {object}  SummaryResponse
// @Failure      404        {object}  map[string]string
// @Failure      409        {object}  map[string]string
// @Router       /reviews/{sessionID}/complete [post]
func (h *Handler) completeReview(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reviews.Complete(r.Context(), r.PathValue("sessionID"))
	if h.handleServiceError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, toSummaryResponse(summary))
}

// masteryOverview classifies every topic for a user.
// @Summary      Mastery overview
// @Tags         Users
// @Produce      json
// @Param        userID  path      string  true  "User ID"
// @Success      200     {object}  OverviewResponse
// @Failure      500     {object}  map[string]string
// @Router       /users/{userID}/mastery [get]
func (h *Handler) masteryOverview(w http.ResponseWriter, r *http.Request) {
	ov, err := h.reviews.MasteryOverview(r.Context(), r.PathValue("userID"))
	if h.handleServiceError(w, err) {
		return
	}

	topics := make([]MasteryRecordResponse, len(ov.Topics))
	for i, t := range ov.Topics {
		topics[i] = MasteryRecordResponse{
			TopicID:            t.TopicID,
			TopicName:          t.TopicName,
			Level:              string(t.Level),
			Sessions:           t.Sessions,
			MasteredSessions:   t.MasteredSessions,
			RoundsToMasteryAvg: t.RoundsToMasteryAvg,
			LastPracticed:      t.LastPracticed,
			TimeSpentSeconds:   int64(t.TimeSpent / time.Second),
		}
	}

	respondJSON(w, http.StatusOK, OverviewResponse{
		UserID:                 ov.UserID,
		Topics:                 topics,
		Mastered:               ov.Mastered,
		InProgress:             ov.InProgress,
		NotStarted:             ov.NotStarted,
		AverageRoundsToMastery: ov.AverageRoundsToMastery,
		TotalTimeSpentSeconds:  int64(ov.TotalTimeSpent / time.Second),
	})
}

// reviewHistory lists completed sessions of a user on a topic.
// @Summary      Review history
// @Description  Completed sessions ordered by start time, oldest first.
// @Tags         Users
// @Produce      json
// @Param        userID   path      string  true  "User ID"
// @Param        topicID  path      string  true  "Topic ID"
// @Success      200      {array}   SummaryResponse
// @Failure      500      {object}  map[string]string
// @Router       /users/{userID}/topics/{topicID}/history [get]
func (h *Handler) reviewHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.reviews.History(r.Context(), r.PathValue("userID"), r.PathValue("topicID"))
	if h.handleServiceError(w, err) {
		return
	}

	response := make([]SummaryResponse, len(history))
	for i, s := range history {
		response[i] = toSummaryResponse(s)
	}
	respondJSON(w, http.StatusOK, response)
}

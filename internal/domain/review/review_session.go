package review

import (
	"fmt"
	"time"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/scoring"
	"github.com/quizreview/backend/internal/id"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Session is a multi-round review of one topic by one user. Each round
// serves the questions still missed; it completes once a round has no
// incorrect answers or the round cap is reached.
type Session struct {
	ID              string
	UserID          string
	TopicID         string
	Round           int      // current round, starting at 1
	Remaining       []string // question ids served in the current round
	History         []RoundSummary
	Status          Status
	MasteryAchieved bool
	StartedAt       time.Time
	UpdatedAt       time.Time
	CompletedAt     *time.Time
	Version         int // optimistic lock counter, owned by the store
}

// Summary describes a session at completion (or at its current point if
// still active).
type Summary struct {
	SessionID       string
	UserID          string
	TopicID         string
	Status          Status
	TotalRounds     int
	FinalScore      int // % of the initial questions answered correctly by the end
	TimeSpent       time.Duration
	MasteryAchieved bool
	StartedAt       time.Time
	CompletedAt     *time.Time
}

// NewSession starts round 1 with every question of the topic.
func NewSession(userID, topicID string, questionIDs []string, now time.Time) (*Session, error) {
	if len(questionIDs) == 0 {
		return nil, ErrEmptyTopic
	}

	remaining := make([]string, len(questionIDs))
	copy(remaining, questionIDs)

	return &Session{
		ID:        id.GenerateID(),
		UserID:    userID,
		TopicID:   topicID,
		Round:     1,
		Remaining: remaining,
		History:   []RoundSummary{},
		Status:    StatusActive,
		StartedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsCompleted reports whether the session reached its terminal state.
func (s *Session) IsCompleted() bool {
	return s.Status == StatusCompleted
}

// CheckSubmission verifies that every submission targets a question of the
// current round, at most once.
func (s *Session) CheckSubmission(submissions []Submission) error {
	if s.IsCompleted() {
		return ErrSessionAlreadyCompleted
	}

	inRound := make(map[string]bool, len(s.Remaining))
	for _, qid := range s.Remaining {
		inRound[qid] = true
	}

	seen := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		if !inRound[sub.QuestionID] {
			return fmt.Errorf("%w: question %q is not in round %d", ErrInvalidRoundSubmission, sub.QuestionID, s.Round)
		}
		if seen[sub.QuestionID] {
			return fmt.Errorf("%w: question %q answered more than once", ErrInvalidRoundSubmission, sub.QuestionID)
		}
		seen[sub.QuestionID] = true
	}
	return nil
}

// ApplyRound grades the current round and advances the session.
//
// questions must hold every id in Remaining. Questions left unanswered are
// graded incorrect. The session is not modified when an error is returned.
func (s *Session) ApplyRound(questions map[string]question.Question, submissions []Submission, cfg Config, now time.Time) (*RoundResult, error) {
	if err := s.CheckSubmission(submissions); err != nil {
		return nil, err
	}

	selected := make(map[string]question.Answer, len(submissions))
	for _, sub := range submissions {
		selected[sub.QuestionID] = sub.Selected
	}

	entries := make([]Entry, 0, len(s.Remaining))
	results := make([]scoring.Result, 0, len(s.Remaining))
	var incorrect []string

	for _, qid := range s.Remaining {
		q, ok := questions[qid]
		if !ok {
			return nil, fmt.Errorf("round %d: question %q could not be resolved", s.Round, qid)
		}

		answer := selected[qid]
		correct := q.Grade(answer)

		entries = append(entries, Entry{
			QuestionID:    qid,
			Selected:      answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
		results = append(results, scoring.Result{QuestionID: qid, IsCorrect: correct})
		if !correct {
			incorrect = append(incorrect, qid)
		}
	}

	summary := RoundSummary{
		Round:        s.Round,
		Entries:      entries,
		Score:        scoring.Score(results),
		IncorrectIDs: incorrect,
		SubmittedAt:  now,
	}
	s.History = append(s.History, summary)
	s.UpdatedAt = now

	result := &RoundResult{
		SessionID: s.ID,
		Round:     summary.Round,
		Entries:   entries,
		Score:     summary.Score,
	}

	switch {
	case len(incorrect) == 0:
		s.Remaining = []string{}
		s.complete(true, now)
	case cfg.capReached(s.Round):
		s.Remaining = incorrect
		s.complete(false, now)
	default:
		s.Round++
		s.Remaining = incorrect
		result.NextQuestionIDs = append([]string(nil), incorrect...)
	}

	result.IsComplete = s.IsCompleted()
	result.MasteryAchieved = s.MasteryAchieved
	if result.NextQuestionIDs == nil {
		result.NextQuestionIDs = []string{}
	}
	return result, nil
}

// ForceComplete ends an active session early without mastery. It reports
// whether the session changed; completed sessions are left untouched.
func (s *Session) ForceComplete(now time.Time) bool {
	if s.IsCompleted() {
		return false
	}
	s.complete(false, now)
	return true
}

func (s *Session) complete(mastery bool, now time.Time) {
	s.Status = StatusCompleted
	s.MasteryAchieved = mastery
	s.UpdatedAt = now
	completedAt := now
	s.CompletedAt = &completedAt
}

// InitialCount is the number of questions served in round 1.
func (s *Session) InitialCount() int {
	if len(s.History) > 0 {
		return s.History[0].Score.Total
	}
	return len(s.Remaining)
}

// TimeSpent is the time between start and completion, or the last update
// for sessions still active.
func (s *Session) TimeSpent() time.Duration {
	end := s.UpdatedAt
	if s.CompletedAt != nil {
		end = *s.CompletedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

// Summary reports the session outcome.
func (s *Session) Summary() Summary {
	initial := s.InitialCount()
	unmastered := len(s.Remaining)
	if len(s.History) == 0 {
		unmastered = initial
	}

	return Summary{
		SessionID:       s.ID,
		UserID:          s.UserID,
		TopicID:         s.TopicID,
		Status:          s.Status,
		TotalRounds:     len(s.History),
		FinalScore:      scoring.Percentage(initial-unmastered, initial),
		TimeSpent:       s.TimeSpent(),
		MasteryAchieved: s.MasteryAchieved,
		StartedAt:       s.StartedAt,
		CompletedAt:     s.CompletedAt,
	}
}

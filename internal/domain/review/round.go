package review

import (
	"time"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/scoring"
)

// Submission is the answer a user gave for one question of the current round.
type Submission struct {
	QuestionID string
	Selected   question.Answer
}

// Entry is the graded outcome of one question within a round.
type Entry struct {
	QuestionID    string
	Selected      question.Answer
	CorrectAnswer string
	IsCorrect     bool
	Explanation   string
}

// RoundSummary is the immutable record of a scored round kept in the
// session history.
type RoundSummary struct {
	Round        int
	Entries      []Entry
	Score        scoring.Summary
	IncorrectIDs []string
	SubmittedAt  time.Time
}

// RoundResult is returned to callers after a round is submitted.
type RoundResult struct {
	SessionID       string
	Round           int
	Entries         []Entry
	Score           scoring.Summary
	IsComplete      bool
	MasteryAchieved bool
	NextQuestionIDs []string // empty once the session is complete
}

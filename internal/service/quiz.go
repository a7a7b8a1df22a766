package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
	"github.com/quizreview/backend/internal/domain/scoring"
)

// ErrInvalidAnswers is returned when a quiz submission answers a question
// outside the topic, or the same question twice.
var ErrInvalidAnswers = errors.New("invalid quiz answers")

// QuizResult is the outcome of a one-off quiz over a whole topic.
type QuizResult struct {
	TopicID string
	Entries []review.Entry
	Score   scoring.Summary
}

// ScoreQuiz grades answers against every question of a topic without
// creating a session. Unanswered questions are incorrect.
func ScoreQuiz(ctx context.Context, questions QuestionRepository, topicID string, answers []review.Submission) (*QuizResult, error) {
	qs, err := questions.QuestionsByTopic(ctx, topicID)
	if err != nil {
		return nil, fmt.Errorf("load questions for topic %s: %w", topicID, err)
	}
	if len(qs) == 0 {
		return nil, review.ErrEmptyTopic
	}

	inTopic := make(map[string]bool, len(qs))
	for _, q := range qs {
		inTopic[q.ID] = true
	}

	selected := make(map[string]question.Answer, len(answers))
	for _, a := range answers {
		if !inTopic[a.QuestionID] {
			return nil, fmt.Errorf("%w: question %q is not in topic %s", ErrInvalidAnswers, a.QuestionID, topicID)
		}
		if _, dup := selected[a.QuestionID]; dup {
			return nil, fmt.Errorf("%w: question %q answered more than once", ErrInvalidAnswers, a.QuestionID)
		}
		selected[a.QuestionID] = a.Selected
	}

	result := &QuizResult{
		TopicID: topicID,
		Entries: make([]review.Entry, 0, len(qs)),
	}
	results := make([]scoring.Result, 0, len(qs))
	for _, q := range qs {
		answer := selected[q.ID]
		correct := q.Grade(answer)
		result.Entries = append(result.Entries, review.Entry{
			QuestionID:    q.ID,
			Selected:      answer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     correct,
			Explanation:   q.Explanation,
		})
		results = append(results, scoring.Result{QuestionID: q.ID, IsCorrect: correct})
	}
	result.Score = scoring.Score(results)
	return result, nil
}

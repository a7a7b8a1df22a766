// internal/service/review.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
	"github.com/quizreview/backend/internal/domain/topic"
	"github.com/quizreview/backend/internal/store"
)

// SessionStore persists review sessions. SaveSession must reject stale
// versions with store.ErrConflict.
type SessionStore interface {
	CreateSession(ctx context.Context, s *review.Session) error
	GetSession(ctx context.Context, id string) (*review.Session, error)
	SaveSession(ctx context.Context, s *review.Session) error
	ListSessionsByUser(ctx context.Context, userID string) ([]*review.Session, error)
	ListSessionsByUserAndTopic(ctx context.Context, userID, topicID string) ([]*review.Session, error)
}

// QuestionRepository is the read-only question source.
type QuestionRepository interface {
	QuestionsByTopic(ctx context.Context, topicID string) ([]question.Question, error)
	QuestionByID(ctx context.Context, id string) (*question.Question, error)
}

type TopicRepository interface {
	ListTopics(ctx context.Context) ([]topic.Topic, error)
	GetTopic(ctx context.Context, id string) (*topic.Topic, error)
}

// ReviewService runs review sessions on top of the repositories. It holds
// no session state of its own; every call loads and saves through the
// SessionStore.
type ReviewService struct {
	sessions  SessionStore
	questions QuestionRepository
	topics    TopicRepository
	cfg       review.Config
	logger    *slog.Logger
	now       func() time.Time
}

// NewReviewService creates a ReviewService.
func NewReviewService(sessions SessionStore, questions QuestionRepository, topics TopicRepository, cfg review.Config, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		sessions:  sessions,
		questions: questions,
		topics:    topics,
		cfg:       cfg,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Start opens a session over every question of the topic and returns it
// with the round 1 questions, answers stripped.
func (rs *ReviewService) Start(ctx context.Context, userID, topicID string) (*review.Session, []question.Public, error) {
	questions, err := rs.questions.QuestionsByTopic(ctx, topicID)
	if err != nil {
		return nil, nil, fmt.Errorf("load questions for topic %s: %w", topicID, err)
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	session, err := review.NewSession(userID, topicID, ids, rs.now())
	if err != nil {
		return nil, nil, err
	}

	if err := rs.sessions.CreateSession(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	rs.logger.Info("review session started",
		"session_id", session.ID,
		"user_id", userID,
		"topic_id", topicID,
		"questions", len(ids),
	)
	return session, question.PublicAll(questions), nil
}

// Session returns the stored state of a session.
func (rs *ReviewService) Session(ctx context.Context, sessionID string) (*review.Session, error) {
	return rs.load(ctx, sessionID)
}

// SubmitRound grades the current round. Questions of the round missing from
// answers count as incorrect. An invalid submission leaves the session as
// it was.
func (rs *ReviewService) SubmitRound(ctx context.Context, sessionID string, answers []review.Submission) (*review.RoundResult, error) {
	session, err := rs.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.CheckSubmission(answers); err != nil {
		return nil, err
	}

	questions := make(map[string]question.Question, len(session.Remaining))
	for _, qid := range session.Remaining {
		q, err := rs.questions.QuestionByID(ctx, qid)
		if err != nil {
			return nil, fmt.Errorf("resolve question %s: %w", qid, err)
		}
		questions[qid] = *q
	}

	result, err := session.ApplyRound(questions, answers, rs.cfg, rs.now())
	if err != nil {
		return nil, err
	}

	if err := rs.save(ctx, session); err != nil {
		return nil, err
	}

	rs.logger.Info("review round scored",
		"session_id", session.ID,
		"round", result.Round,
		"correct", result.Score.Correct,
		"total", result.Score.Total,
	)
	if result.IsComplete {
		rs.logCompleted(session)
	}
	return result, nil
}

// NextRound re-serves the questions of the current round.
func (rs *ReviewService) NextRound(ctx context.Context, sessionID string) (*review.Session, []question.Public, error) {
	session, err := rs.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsCompleted() {
		return nil, nil, review.ErrSessionCompleted
	}

	public := make([]question.Public, 0, len(session.Remaining))
	for _, qid := range session.Remaining {
		q, err := rs.questions.QuestionByID(ctx, qid)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve question %s: %w", qid, err)
		}
		public = append(public, q.Public())
	}
	return session, public, nil
}

// Complete finalizes a session. Active sessions are ended without mastery;
// completed ones return their stored summary unchanged.
func (rs *ReviewService) Complete(ctx context.Context, sessionID string) (review.Summary, error) {
	session, err := rs.load(ctx, sessionID)
	if err != nil {
		return review.Summary{}, err
	}

	if session.ForceComplete(rs.now()) {
		if err := rs.save(ctx, session); err != nil {
			return review.Summary{}, err
		}
		rs.logCompleted(session)
	}
	return session.Summary(), nil
}

// MasteryOverview classifies every topic for the user.
func (rs *ReviewService) MasteryOverview(ctx context.Context, userID string) (review.Overview, error) {
	topics, err := rs.topics.ListTopics(ctx)
	if err != nil {
		return review.Overview{}, fmt.Errorf("list topics: %w", err)
	}
	sessions, err := rs.sessions.ListSessionsByUser(ctx, userID)
	if err != nil {
		return review.Overview{}, fmt.Errorf("list sessions for user %s: %w", userID, err)
	}
	return review.BuildOverview(userID, topics, sessions), nil
}

// History lists the user's completed sessions on a topic, oldest first.
func (rs *ReviewService) History(ctx context.Context, userID, topicID string) ([]review.Summary, error) {
	sessions, err := rs.sessions.ListSessionsByUserAndTopic(ctx, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("list sessions for user %s topic %s: %w", userID, topicID, err)
	}
	return review.CompletedHistory(sessions), nil
}

func (rs *ReviewService) load(ctx context.Context, sessionID string) (*review.Session, error) {
	session, err := rs.sessions.GetSession(ctx, sessionID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, review.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return session, nil
}

func (rs *ReviewService) save(ctx context.Context, session *review.Session) error {
	err := rs.sessions.SaveSession(ctx, session)
	switch {
	case errors.Is(err, store.ErrConflict):
		return review.ErrConcurrentModification
	case errors.Is(err, store.ErrNotFound):
		return review.ErrSessionNotFound
	case err != nil:
		return fmt.Errorf("save session %s: %w", session.ID, err)
	}
	return nil
}

func (rs *ReviewService) logCompleted(session *review.Session) {
	summary := session.Summary()
	rs.logger.Info("review session completed",
		"session_id", session.ID,
		"user_id", session.UserID,
		"topic_id", session.TopicID,
		"rounds", summary.TotalRounds,
		"final_score", summary.FinalScore,
		"mastery", summary.MasteryAchieved,
	)
}

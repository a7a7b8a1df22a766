package store

import (
	"context"
	"errors"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
	"github.com/quizreview/backend/internal/domain/topic"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("version conflict")
)

// Store is everything the service and API layers need from persistence.
type Store interface {
	Ping(ctx context.Context) error

	SaveTopic(ctx context.Context, t *topic.Topic) error
	GetTopic(ctx context.Context, id string) (*topic.Topic, error)
	ListTopics(ctx context.Context) ([]topic.Topic, error)
	ListTopicSummaries(ctx context.Context) ([]topic.Summary, error)

	AddQuestion(ctx context.Context, q question.Question) (bool, error)
	QuestionByID(ctx context.Context, id string) (*question.Question, error)
	QuestionsByTopic(ctx context.Context, topicID string) ([]question.Question, error)

	CreateSession(ctx context.Context, s *review.Session) error
	GetSession(ctx context.Context, id string) (*review.Session, error)
	SaveSession(ctx context.Context, s *review.Session) error
	ListSessionsByUser(ctx context.Context, userID string) ([]*review.Session, error)
	ListSessionsByUserAndTopic(ctx context.Context, userID, topicID string) ([]*review.Session, error)
}

var _ Store = (*SQLiteStore)(nil)

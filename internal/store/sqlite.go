// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/topic"
)

const schema = `
CREATE TABLE IF NOT EXISTS topics (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    domain TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    topic_id TEXT NOT NULL,
    domain TEXT NOT NULL DEFAULT '',
    prompt TEXT NOT NULL,
    options TEXT NOT NULL,
    correct_answer TEXT NOT NULL,
    question_type TEXT NOT NULL,
    explanation TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (topic_id) REFERENCES topics(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_questions_topic ON questions(topic_id);

CREATE TABLE IF NOT EXISTS review_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    topic_id TEXT NOT NULL,
    round INTEGER NOT NULL,
    remaining TEXT NOT NULL,
    status TEXT NOT NULL,
    mastery_achieved BOOLEAN NOT NULL DEFAULT FALSE,
    started_at TEXT NOT NULL,
    completed_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_review_sessions_user_topic ON review_sessions(user_id, topic_id);

CREATE TABLE IF NOT EXISTS rounds (
    session_id TEXT NOT NULL,
    round INTEGER NOT NULL,
    entries TEXT NOT NULL,
    correct INTEGER NOT NULL,
    total INTEGER NOT NULL,
    percentage INTEGER NOT NULL,
    incorrect_ids TEXT NOT NULL,
    submitted_at TEXT NOT NULL,
    PRIMARY KEY (session_id, round),
    FOREIGN KEY (session_id) REFERENCES review_sessions(id) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the database at dsn, applies pragmas, creates the schema
// and runs additive migrations.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// pragmas are per connection; one writer is all SQLite allows anyway
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// timeLayout keeps a fixed number of fractional digits so stored times sort
// lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", v, err)
	}
	return t.UTC(), nil
}

// ============================================================================
// Topics
// ============================================================================

// SaveTopic inserts a topic or updates its name and domain.
func (s *SQLiteStore) SaveTopic(ctx context.Context, t *topic.Topic) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO topics (id, name, domain) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name, domain = excluded.domain
	`, t.ID, t.Name, t.Domain)
	if err != nil {
		return fmt.Errorf("save topic %s: %w", t.ID, err)
	}
	return nil
}

func (s *SQLiteStore) GetTopic(ctx context.Context, id string) (*topic.Topic, error) {
	var t topic.Topic
	err := s.db.QueryRowContext(ctx, "SELECT id, name, domain FROM topics WHERE id = ?", id).
		Scan(&t.ID, &t.Name, &t.Domain)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get topic %s: %w", id, err)
	}
	return &t, nil
}

func (s *SQLiteStore) ListTopics(ctx context.Context) ([]topic.Topic, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, domain FROM topics ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []topic.Topic
	for rows.Next() {
		var t topic.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Domain); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// ListTopicSummaries returns every topic with its question count.
func (s *SQLiteStore) ListTopicSummaries(ctx context.Context) ([]topic.Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.domain, COUNT(q.id)
		FROM topics t
		LEFT JOIN questions q ON q.topic_id = t.id
		GROUP BY t.id, t.name, t.domain
		ORDER BY t.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list topic summaries: %w", err)
	}
	defer rows.Close()

	var summaries []topic.Summary
	for rows.Next() {
		var ts topic.Summary
		if err := rows.Scan(&ts.ID, &ts.Name, &ts.Domain, &ts.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan topic summary: %w", err)
		}
		summaries = append(summaries, ts)
	}
	return summaries, rows.Err()
}

// ============================================================================
// Questions
// ============================================================================

// AddQuestion stores a new question. Questions are immutable: an existing id
// is left untouched and AddQuestion reports false.
func (s *SQLiteStore) AddQuestion(ctx context.Context, q question.Question) (bool, error) {
	optionsJSON, err := json.Marshal(q.Options)
	if err != nil {
		return false, fmt.Errorf("marshal options for %s: %w", q.ID, err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO questions
			(id, topic_id, domain, prompt, options, correct_answer, question_type, explanation)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		q.ID, q.TopicID, q.Domain, q.Prompt, string(optionsJSON), q.CorrectAnswer, string(q.Type), q.Explanation,
	)
	if err != nil {
		return false, fmt.Errorf("add question %s: %w", q.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

const questionColumns = "id, topic_id, domain, prompt, options, correct_answer, question_type, explanation"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (question.Question, error) {
	var q question.Question
	var optionsJSON, qType string
	if err := row.Scan(&q.ID, &q.TopicID, &q.Domain, &q.Prompt, &optionsJSON, &q.CorrectAnswer, &qType, &q.Explanation); err != nil {
		return q, err
	}
	q.Type = question.Type(qType)
	if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
		return q, fmt.Errorf("unmarshal options for %s: %w", q.ID, err)
	}
	return q, nil
}

func (s *SQLiteStore) QuestionByID(ctx context.Context, id string) (*question.Question, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+questionColumns+" FROM questions WHERE id = ?", id)
	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question %s: %w", id, err)
	}
	return &q, nil
}

// QuestionsByTopic returns the topic's questions in insertion order.
func (s *SQLiteStore) QuestionsByTopic(ctx context.Context, topicID string) ([]question.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+questionColumns+" FROM questions WHERE topic_id = ? ORDER BY rowid", topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions for topic %s: %w", topicID, err)
	}
	defer rows.Close()

	var questions []question.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

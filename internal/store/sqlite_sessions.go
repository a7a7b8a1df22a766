package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
)

// StoredEntry is the JSON form of a graded answer inside the rounds table.
type StoredEntry struct {
	QuestionID    string          `json:"question_id"`
	Selected      question.Answer `json:"selected"`
	CorrectAnswer string          `json:"correct_answer"`
	IsCorrect     bool            `json:"is_correct"`
	Explanation   string          `json:"explanation,omitempty"`
}

func toStoredEntries(entries []review.Entry) []StoredEntry {
	stored := make([]StoredEntry, len(entries))
	for i, e := range entries {
		stored[i] = StoredEntry{
			QuestionID:    e.QuestionID,
			Selected:      e.Selected,
			CorrectAnswer: e.CorrectAnswer,
			IsCorrect:     e.IsCorrect,
			Explanation:   e.Explanation,
		}
	}
	return stored
}

func fromStoredEntries(stored []StoredEntry) []review.Entry {
	entries := make([]review.Entry, len(stored))
	for i, e := range stored {
		entries[i] = review.Entry{
			QuestionID:    e.QuestionID,
			Selected:      e.Selected,
			CorrectAnswer: e.CorrectAnswer,
			IsCorrect:     e.IsCorrect,
			Explanation:   e.Explanation,
		}
	}
	return entries
}

const sessionColumns = "id, user_id, topic_id, round, remaining, status, mastery_achieved, started_at, updated_at, completed_at, version"

// ============================================================================
// Review sessions
// ============================================================================

// CreateSession inserts a new session with version 1 together with any
// history it already carries.
func (s *SQLiteStore) CreateSession(ctx context.Context, sess *review.Session) error {
	remaining, err := json.Marshal(nonNil(sess.Remaining))
	if err != nil {
		return fmt.Errorf("marshal remaining for %s: %w", sess.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO review_sessions (`+sessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1)
	`,
		sess.ID, sess.UserID, sess.TopicID, sess.Round, string(remaining), string(sess.Status),
		sess.MasteryAchieved, formatTime(sess.StartedAt), formatTime(sess.UpdatedAt), nullTime(sess),
	)
	if err != nil {
		return fmt.Errorf("create session %s: %w", sess.ID, err)
	}

	if err := insertRounds(ctx, tx, sess.ID, sess.History); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session %s: %w", sess.ID, err)
	}
	sess.Version = 1
	return nil
}

// SaveSession overwrites the mutable fields of a session and appends any
// rounds not yet stored. It fails with ErrConflict when the stored version
// no longer matches sess.Version, and bumps sess.Version on success.
func (s *SQLiteStore) SaveSession(ctx context.Context, sess *review.Session) error {
	remaining, err := json.Marshal(nonNil(sess.Remaining))
	if err != nil {
		return fmt.Errorf("marshal remaining for %s: %w", sess.ID, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE review_sessions
		SET round = ?, remaining = ?, status = ?, mastery_achieved = ?,
		    updated_at = ?, completed_at = ?, version = version + 1
		WHERE id = ? AND version = ?
	`,
		sess.Round, string(remaining), string(sess.Status), sess.MasteryAchieved,
		formatTime(sess.UpdatedAt), nullTime(sess), sess.ID, sess.Version,
	)
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT 1 FROM review_sessions WHERE id = ?", sess.ID).Scan(&exists)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("check session %s: %w", sess.ID, err)
		}
		return ErrConflict
	}

	if err := insertRounds(ctx, tx, sess.ID, sess.History); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session %s: %w", sess.ID, err)
	}
	sess.Version++
	return nil
}

// insertRounds appends history rows. Rounds already stored are immutable
// and skipped.
func insertRounds(ctx context.Context, tx *sql.Tx, sessionID string, history []review.RoundSummary) error {
	for _, r := range history {
		entries, err := json.Marshal(toStoredEntries(r.Entries))
		if err != nil {
			return fmt.Errorf("marshal round %d entries: %w", r.Round, err)
		}
		incorrect, err := json.Marshal(nonNil(r.IncorrectIDs))
		if err != nil {
			return fmt.Errorf("marshal round %d incorrect ids: %w", r.Round, err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO rounds
				(session_id, round, entries, correct, total, percentage, incorrect_ids, submitted_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (session_id, round) DO NOTHING
		`,
			sessionID, r.Round, string(entries), r.Score.Correct, r.Score.Total, r.Score.Percentage,
			string(incorrect), formatTime(r.SubmittedAt),
		)
		if err != nil {
			return fmt.Errorf("insert round %d of %s: %w", r.Round, sessionID, err)
		}
	}
	return nil
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*review.Session, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+sessionColumns+" FROM review_sessions WHERE id = ?", id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session %s: %w", id, err)
	}

	history, err := s.loadRounds(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	sess.History = nonNilHistory(history[id])
	return sess, nil
}

func (s *SQLiteStore) ListSessionsByUser(ctx context.Context, userID string) ([]*review.Session, error) {
	return s.listSessions(ctx, "WHERE user_id = ?", userID)
}

func (s *SQLiteStore) ListSessionsByUserAndTopic(ctx context.Context, userID, topicID string) ([]*review.Session, error) {
	return s.listSessions(ctx, "WHERE user_id = ? AND topic_id = ?", userID, topicID)
}

func (s *SQLiteStore) listSessions(ctx context.Context, where string, args ...any) ([]*review.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+sessionColumns+" FROM review_sessions "+where+" ORDER BY started_at, id", args...,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*review.Session
	var ids []string
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
		ids = append(ids, sess.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return sessions, nil
	}

	history, err := s.loadRounds(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, sess := range sessions {
		sess.History = nonNilHistory(history[sess.ID])
	}
	return sessions, nil
}

func scanSession(row rowScanner) (*review.Session, error) {
	var (
		sess        review.Session
		remaining   string
		status      string
		startedAt   string
		updatedAt   string
		completedAt sql.NullString
	)
	err := row.Scan(
		&sess.ID, &sess.UserID, &sess.TopicID, &sess.Round, &remaining, &status,
		&sess.MasteryAchieved, &startedAt, &updatedAt, &completedAt, &sess.Version,
	)
	if err != nil {
		return nil, err
	}

	sess.Status = review.Status(status)
	if err := json.Unmarshal([]byte(remaining), &sess.Remaining); err != nil {
		return nil, fmt.Errorf("unmarshal remaining for %s: %w", sess.ID, err)
	}
	if sess.Remaining == nil {
		sess.Remaining = []string{}
	}
	if sess.StartedAt, err = parseTime(startedAt); err != nil {
		return nil, err
	}
	if sess.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t, err := parseTime(completedAt.String)
		if err != nil {
			return nil, err
		}
		sess.CompletedAt = &t
	}
	return &sess, nil
}

// loadRounds fetches the history of every given session in one query.
func (s *SQLiteStore) loadRounds(ctx context.Context, sessionIDs []string) (map[string][]review.RoundSummary, error) {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(sessionIDs)), ",")
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, round, entries, correct, total, percentage, incorrect_ids, submitted_at
		FROM rounds
		WHERE session_id IN (`+placeholders+`)
		ORDER BY session_id, round
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("load rounds: %w", err)
	}
	defer rows.Close()

	history := make(map[string][]review.RoundSummary, len(sessionIDs))
	for rows.Next() {
		var (
			sessionID   string
			r           review.RoundSummary
			entries     string
			incorrect   string
			submittedAt string
		)
		if err := rows.Scan(&sessionID, &r.Round, &entries, &r.Score.Correct, &r.Score.Total,
			&r.Score.Percentage, &incorrect, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan round: %w", err)
		}

		var stored []StoredEntry
		if err := json.Unmarshal([]byte(entries), &stored); err != nil {
			return nil, fmt.Errorf("unmarshal round %d entries of %s: %w", r.Round, sessionID, err)
		}
		r.Entries = fromStoredEntries(stored)
		if err := json.Unmarshal([]byte(incorrect), &r.IncorrectIDs); err != nil {
			return nil, fmt.Errorf("unmarshal round %d incorrect ids of %s: %w", r.Round, sessionID, err)
		}
		if len(r.IncorrectIDs) == 0 {
			r.IncorrectIDs = nil
		}
		t, err := parseTime(submittedAt)
		if err != nil {
			return nil, err
		}
		r.SubmittedAt = t

		history[sessionID] = append(history[sessionID], r)
	}
	return history, rows.Err()
}

func nullTime(sess *review.Session) sql.NullString {
	if sess.CompletedAt == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*sess.CompletedAt), Valid: true}
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func nonNilHistory(h []review.RoundSummary) []review.RoundSummary {
	if h == nil {
		return []review.RoundSummary{}
	}
	return h
}

package review_test

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/review"
)

var start = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func createQuestions(n int) ([]string, map[string]question.Question) {
	ids := make([]string, n)
	byID := make(map[string]question.Question, n)
	for i := 0; i < n; i++ {
		qid := fmt.Sprintf("q%d", i+1)
		ids[i] = qid
		byID[qid] = question.Question{
			ID:      qid,
			TopicID: "go-basics",
			Prompt:  "Question " + qid,
			Options: []question.Option{
				{Key: "A", Text: "right"},
				{Key: "B", Text: "wrong"},
				{Key: "C", Text: "also wrong"},
			},
			CorrectAnswer: "A",
			Type:          question.TypeSingle,
			Explanation:   "A is right for " + qid,
		}
	}
	return ids, byID
}

// answer builds submissions for the given ids: correct ("A") unless listed in wrong.
func answer(ids []string, wrong ...string) []review.Submission {
	miss := make(map[string]bool, len(wrong))
	for _, w := range wrong {
		miss[w] = true
	}
	subs := make([]review.Submission, len(ids))
	for i, qid := range ids {
		key := "A"
		if miss[qid] {
			key = "B"
		}
		subs[i] = review.Submission{QuestionID: qid, Selected: question.SingleAnswer(key)}
	}
	return subs
}

func newSession(t *testing.T, n int) (*review.Session, map[string]question.Question) {
	t.Helper()
	ids, byID := createQuestions(n)
	s, err := review.NewSession("user-1", "go-basics", ids, start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s, byID
}

func TestNewSession_StartsAtRoundOne(t *testing.T) {
	s, _ := newSession(t, 5)

	if s.Round != 1 {
		t.Errorf("expected round 1, got %d", s.Round)
	}
	if len(s.Remaining) != 5 {
		t.Errorf("expected 5 remaining questions, got %d", len(s.Remaining))
	}
	if len(s.History) != 0 {
		t.Errorf("expected empty history, got %d rounds", len(s.History))
	}
	if s.Status != review.StatusActive {
		t.Errorf("expected status active, got %s", s.Status)
	}
	if s.ID == "" {
		t.Error("expected non-empty ID")
	}
}

func TestNewSession_EmptyTopic(t *testing.T) {
	_, err := review.NewSession("user-1", "empty", nil, start)
	if !errors.Is(err, review.ErrEmptyTopic) {
		t.Errorf("expected ErrEmptyTopic, got %v", err)
	}
}

func TestApplyRound_MasteryAfterTwoRounds(t *testing.T) {
	s, byID := newSession(t, 5)
	cfg := review.DefaultConfig()

	r1, err := s.ApplyRound(byID, answer(s.Remaining, "q2", "q4"), cfg, start.Add(time.Minute))
	if err != nil {
		t.Fatalf("round 1: %v", err)
	}
	if r1.IsComplete {
		t.Fatal("expected session to continue after round 1")
	}
	if r1.Score.Correct != 3 || r1.Score.Total != 5 || r1.Score.Percentage != 60 {
		t.Errorf("unexpected round 1 score: %+v", r1.Score)
	}
	if !reflect.DeepEqual(r1.NextQuestionIDs, []string{"q2", "q4"}) {
		t.Errorf("expected q2 and q4 to carry over, got %v", r1.NextQuestionIDs)
	}
	if s.Round != 2 || !reflect.DeepEqual(s.Remaining, []string{"q2", "q4"}) {
		t.Fatalf("expected round 2 with [q2 q4], got round %d with %v", s.Round, s.Remaining)
	}

	r2, err := s.ApplyRound(byID, answer(s.Remaining), cfg, start.Add(2*time.Minute))
	if err != nil {
		t.Fatalf("round 2: %v", err)
	}
	if !r2.IsComplete || !r2.MasteryAchieved {
		t.Errorf("expected completion with mastery, got complete=%v mastery=%v", r2.IsComplete, r2.MasteryAchieved)
	}
	if len(r2.NextQuestionIDs) != 0 {
		t.Errorf("expected no next questions, got %v", r2.NextQuestionIDs)
	}

	sum := s.Summary()
	if sum.TotalRounds != 2 {
		t.Errorf("expected 2 rounds, got %d", sum.TotalRounds)
	}
	if sum.FinalScore != 100 {
		t.Errorf("expected final score 100, got %d", sum.FinalScore)
	}
	if sum.TimeSpent != 2*time.Minute {
		t.Errorf("expected 2m spent, got %v", sum.TimeSpent)
	}
	if s.CompletedAt == nil || !s.CompletedAt.Equal(start.Add(2*time.Minute)) {
		t.Errorf("unexpected completedAt %v", s.CompletedAt)
	}
}

func TestApplyRound_OmittedAnswersAreIncorrect(t *testing.T) {
	s, byID := newSession(t, 3)

	res, err := s.ApplyRound(byID, answer([]string{"q1"}), review.DefaultConfig(), start)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(res.NextQuestionIDs, []string{"q2", "q3"}) {
		t.Errorf("expected omitted questions to carry over, got %v", res.NextQuestionIDs)
	}
	if len(res.Entries) != 3 {
		t.Fatalf("expected an entry per question, got %d", len(res.Entries))
	}
	if !res.Entries[1].Selected.IsEmpty() {
		t.Errorf("expected empty selection for omitted question, got %v", res.Entries[1].Selected)
	}
	if res.Entries[1].CorrectAnswer != "A" || res.Entries[1].Explanation == "" {
		t.Errorf("expected correct answer and explanation in entry, got %+v", res.Entries[1])
	}
}

func TestApplyRound_InvalidSubmissionLeavesStateUnchanged(t *testing.T) {
	s, byID := newSession(t, 5)
	if _, err := s.ApplyRound(byID, answer(s.Remaining, "q1", "q2"), review.DefaultConfig(), start); err != nil {
		t.Fatalf("round 1: %v", err)
	}

	before := *s
	before.Remaining = append([]string(nil), s.Remaining...)
	before.History = append([]review.RoundSummary(nil), s.History...)

	// q3 was answered correctly in round 1, so it is not part of round 2.
	subs := append(answer([]string{"q1"}), review.Submission{QuestionID: "q3", Selected: question.SingleAnswer("A")})
	_, err := s.ApplyRound(byID, subs, review.DefaultConfig(), start.Add(time.Minute))
	if !errors.Is(err, review.ErrInvalidRoundSubmission) {
		t.Fatalf("expected ErrInvalidRoundSubmission, got %v", err)
	}

	if !reflect.DeepEqual(before, *s) {
		t.Errorf("expected session unchanged after rejected submission\nbefore: %+v\nafter:  %+v", before, *s)
	}
}

func TestApplyRound_DuplicateAnswerRejected(t *testing.T) {
	s, byID := newSession(t, 2)
	subs := append(answer([]string{"q1"}), answer([]string{"q1"}, "q1")...)

	_, err := s.ApplyRound(byID, subs, review.DefaultConfig(), start)
	if !errors.Is(err, review.ErrInvalidRoundSubmission) {
		t.Errorf("expected ErrInvalidRoundSubmission, got %v", err)
	}
	if s.Round != 1 || len(s.History) != 0 {
		t.Error("expected session unchanged")
	}
}

func TestApplyRound_CompletedSession(t *testing.T) {
	s, byID := newSession(t, 2)
	if _, err := s.ApplyRound(byID, answer(s.Remaining), review.DefaultConfig(), start); err != nil {
		t.Fatalf("round 1: %v", err)
	}

	_, err := s.ApplyRound(byID, nil, review.DefaultConfig(), start)
	if !errors.Is(err, review.ErrSessionAlreadyCompleted) {
		t.Errorf("expected ErrSessionAlreadyCompleted, got %v", err)
	}
}

func TestApplyRound_UnresolvedQuestion(t *testing.T) {
	s, byID := newSession(t, 2)
	delete(byID, "q2")

	if _, err := s.ApplyRound(byID, answer(s.Remaining), review.DefaultConfig(), start); err == nil {
		t.Fatal("expected error for unresolved question")
	}
	if len(s.History) != 0 {
		t.Error("expected no history after failed round")
	}
}

func TestApplyRound_RoundCap(t *testing.T) {
	s, byID := newSession(t, 3)
	cfg := review.Config{MaxRounds: 2}

	if _, err := s.ApplyRound(byID, answer(s.Remaining, "q1", "q2"), cfg, start); err != nil {
		t.Fatalf("round 1: %v", err)
	}
	res, err := s.ApplyRound(byID, answer(s.Remaining, "q2"), cfg, start.Add(time.Minute))
	if err != nil {
		t.Fatalf("round 2: %v", err)
	}

	if !res.IsComplete {
		t.Fatal("expected cap to complete the session")
	}
	if res.MasteryAchieved || s.MasteryAchieved {
		t.Error("expected no mastery when the cap is hit")
	}
	if len(res.NextQuestionIDs) != 0 {
		t.Errorf("expected no next round, got %v", res.NextQuestionIDs)
	}
	if !reflect.DeepEqual(s.Remaining, []string{"q2"}) {
		t.Errorf("expected unmastered q2 to remain, got %v", s.Remaining)
	}

	// 2 of 3 questions were eventually answered correctly.
	if got := s.Summary().FinalScore; got != 67 {
		t.Errorf("expected final score 67, got %d", got)
	}
}

func TestApplyRound_NoCap(t *testing.T) {
	s, byID := newSession(t, 1)
	cfg := review.Config{MaxRounds: 0}

	for i := 0; i < 25; i++ {
		res, err := s.ApplyRound(byID, answer(s.Remaining, "q1"), cfg, start)
		if err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
		if res.IsComplete {
			t.Fatalf("expected no cap, session completed at round %d", i+1)
		}
	}
	if s.Round != 26 {
		t.Errorf("expected round 26, got %d", s.Round)
	}
}

func TestApplyRound_RemainingNeverGrows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		s, byID := newSession(t, 8)
		cfg := review.Config{MaxRounds: 0}
		prev := len(s.Remaining)

		for !s.IsCompleted() {
			var wrong []string
			for _, qid := range s.Remaining {
				if rng.Intn(3) == 0 {
					wrong = append(wrong, qid)
				}
			}
			res, err := s.ApplyRound(byID, answer(s.Remaining, wrong...), cfg, start)
			if err != nil {
				t.Fatalf("trial %d: %v", trial, err)
			}

			if len(s.Remaining) > prev {
				t.Fatalf("trial %d: remaining grew from %d to %d", trial, prev, len(s.Remaining))
			}
			if len(wrong) < prev && len(s.Remaining) >= prev {
				t.Fatalf("trial %d: remaining did not shrink after correct answers", trial)
			}
			if res.IsComplete != (len(wrong) == 0) {
				t.Fatalf("trial %d: completion %v with %d incorrect", trial, res.IsComplete, len(wrong))
			}
			prev = len(s.Remaining)
		}

		if !s.MasteryAchieved {
			t.Errorf("trial %d: expected mastery without a cap", trial)
		}
	}
}

func TestForceComplete_Idempotent(t *testing.T) {
	s, byID := newSession(t, 4)
	if _, err := s.ApplyRound(byID, answer(s.Remaining, "q4"), review.DefaultConfig(), start.Add(time.Minute)); err != nil {
		t.Fatalf("round 1: %v", err)
	}

	if !s.ForceComplete(start.Add(5 * time.Minute)) {
		t.Fatal("expected first ForceComplete to change the session")
	}
	first := s.Summary()

	if s.ForceComplete(start.Add(time.Hour)) {
		t.Error("expected second ForceComplete to be a no-op")
	}
	second := s.Summary()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical summaries\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if first.MasteryAchieved {
		t.Error("expected no mastery on forced completion")
	}
	if first.FinalScore != 75 {
		t.Errorf("expected final score 75, got %d", first.FinalScore)
	}
	if first.TimeSpent != 5*time.Minute {
		t.Errorf("expected 5m spent, got %v", first.TimeSpent)
	}
}

func TestSummary_BeforeAnyRound(t *testing.T) {
	s, _ := newSession(t, 3)
	s.ForceComplete(start)

	sum := s.Summary()
	if sum.TotalRounds != 0 || sum.FinalScore != 0 {
		t.Errorf("expected zero rounds and score, got %+v", sum)
	}
}

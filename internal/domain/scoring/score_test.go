package scoring_test

import (
	"testing"

	"github.com/quizreview/backend/internal/domain/scoring"
)

func results(pattern ...bool) []scoring.Result {
	out := make([]scoring.Result, len(pattern))
	for i, ok := range pattern {
		out[i] = scoring.Result{QuestionID: string(rune('a' + i)), IsCorrect: ok}
	}
	return out
}

func TestScore_Empty(t *testing.T) {
	got := scoring.Score(nil)
	want := scoring.Summary{Correct: 0, Total: 0, Percentage: 0}

	if got != want {
		t.Errorf("Score(nil) = %+v, want %+v", got, want)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		results []scoring.Result
		want    scoring.Summary
	}{
		{"all correct", results(true, true, true), scoring.Summary{Correct: 3, Total: 3, Percentage: 100}},
		{"none correct", results(false, false), scoring.Summary{Correct: 0, Total: 2, Percentage: 0}},
		{"rounds down", results(true, false, false), scoring.Summary{Correct: 1, Total: 3, Percentage: 33}},
		{"rounds up", results(true, true, false), scoring.Summary{Correct: 2, Total: 3, Percentage: 67}},
		{"half", results(true, false), scoring.Summary{Correct: 1, Total: 2, Percentage: 50}},
		{"three of five", results(true, true, true, false, false), scoring.Summary{Correct: 3, Total: 5, Percentage: 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.Score(tt.results); got != tt.want {
				t.Errorf("Score() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPercentage_HalfRoundsAwayFromZero(t *testing.T) {
	// 1/8 = 12.5%
	if got := scoring.Percentage(1, 8); got != 13 {
		t.Errorf("Percentage(1, 8) = %d, want 13", got)
	}
}

func TestPercentage_ZeroTotal(t *testing.T) {
	if got := scoring.Percentage(5, 0); got != 0 {
		t.Errorf("Percentage(5, 0) = %d, want 0", got)
	}
}

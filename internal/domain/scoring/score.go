package scoring

import "math"

// Result is the outcome of grading a single question.
type Result struct {
	QuestionID string
	IsCorrect  bool
}

// Summary aggregates a list of results.
type Summary struct {
	Correct    int `json:"correct"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"` // 0-100
}

// Score counts correct results and computes the rounded percentage.
// An empty list scores 0%.
func Score(results []Result) Summary {
	correct := 0
	for _, r := range results {
		if r.IsCorrect {
			correct++
		}
	}
	return Summary{
		Correct:    correct,
		Total:      len(results),
		Percentage: Percentage(correct, len(results)),
	}
}

// Percentage returns round(part/total*100), or 0 when total is 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

package questionsource

import (
	"context"
	"fmt"

	"github.com/quizreview/backend/internal/domain/question"
	"github.com/quizreview/backend/internal/domain/topic"
)

// Importer is the write side of the question store.
type Importer interface {
	SaveTopic(ctx context.Context, t *topic.Topic) error
	AddQuestion(ctx context.Context, q question.Question) (bool, error)
}

// Result counts what an import changed.
type Result struct {
	Topics  int
	Added   int
	Skipped int // questions whose id was already stored
}

// Import saves every topic and adds the questions not stored yet. Stored
// questions are never overwritten.
func Import(ctx context.Context, importer Importer, files []File) (Result, error) {
	var res Result
	topics := make(map[string]bool)

	for _, f := range files {
		if !topics[f.Topic.ID] {
			t := f.Topic
			if err := importer.SaveTopic(ctx, &t); err != nil {
				return res, fmt.Errorf("%s: save topic %s: %w", f.Path, t.ID, err)
			}
			topics[t.ID] = true
			res.Topics++
		}

		for _, q := range f.Questions {
			added, err := importer.AddQuestion(ctx, q)
			if err != nil {
				return res, fmt.Errorf("%s: %w", f.Path, err)
			}
			if added {
				res.Added++
			} else {
				res.Skipped++
			}
		}
	}
	return res, nil
}

package topic

import "errors"

// Topic is a grouping key over questions that scopes a review session.
// Topics live inside a broader domain, e.g. "Programming" → "Go basics".
type Topic struct {
	ID     string
	Name   string
	Domain string
}

// New creates a Topic, falling back to the id when no name is given.
func New(id, name, domain string) (*Topic, error) {
	if id == "" {
		return nil, errors.New("topic id cannot be empty")
	}
	if name == "" {
		name = id
	}
	return &Topic{
		ID:     id,
		Name:   name,
		Domain: domain,
	}, nil
}

// Summary is a topic together with how many questions it holds.
type Summary struct {
	Topic
	QuestionCount int
}

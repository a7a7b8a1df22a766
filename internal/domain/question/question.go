package question

import (
	"errors"
	"fmt"
	"strings"
)

type Type string

const (
	TypeSingle   Type = "single"
	TypeMultiple Type = "multiple"
)

const (
	MinOptions = 3
	MaxOptions = 5
)

// Option is one selectable choice, identified by a short key such as "A".
type Option struct {
	Key  string `json:"key" koanf:"key"`
	Text string `json:"text" koanf:"text"`
}

// Question is a multiple-choice question belonging to a topic.
// Questions are immutable once stored.
type Question struct {
	ID            string
	Domain        string
	TopicID       string
	Prompt        string
	Options       []Option
	CorrectAnswer string // single key, or comma-separated keys for TypeMultiple
	Type          Type
	Explanation   string
}

// Public is the answer-stripped view of a question served to clients.
type Public struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Type    Type     `json:"type"`
	Options []Option `json:"options"`
}

// Public strips the correct answer and explanation.
func (q Question) Public() Public {
	options := make([]Option, len(q.Options))
	copy(options, q.Options)
	return Public{
		ID:      q.ID,
		Prompt:  q.Prompt,
		Type:    q.Type,
		Options: options,
	}
}

// PublicAll strips answers from a list of questions, preserving order.
func PublicAll(questions []Question) []Public {
	out := make([]Public, len(questions))
	for i, q := range questions {
		out[i] = q.Public()
	}
	return out
}

// Check reports whether the question is well formed: it has an id, a topic,
// a prompt, 3-5 uniquely keyed options, and a correct answer that references
// those keys in a shape matching its type.
func (q Question) Check() error {
	if q.ID == "" {
		return errors.New("question id cannot be empty")
	}
	if q.TopicID == "" {
		return errors.New("question topic cannot be empty")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		return errors.New("question prompt cannot be empty")
	}
	if len(q.Options) < MinOptions || len(q.Options) > MaxOptions {
		return fmt.Errorf("question %s: expected %d-%d options, got %d", q.ID, MinOptions, MaxOptions, len(q.Options))
	}

	keys := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		if o.Key == "" {
			return fmt.Errorf("question %s: option key cannot be empty", q.ID)
		}
		if keys[o.Key] {
			return fmt.Errorf("question %s: duplicate option key %q", q.ID, o.Key)
		}
		keys[o.Key] = true
	}

	correct := ParseCorrectKeys(q.CorrectAnswer)
	switch q.Type {
	case TypeSingle:
		if len(correct) != 1 || strings.Contains(q.CorrectAnswer, ",") {
			return fmt.Errorf("question %s: single-choice answer must be exactly one key", q.ID)
		}
	case TypeMultiple:
		if len(correct) == 0 {
			return fmt.Errorf("question %s: multiple-choice answer cannot be empty", q.ID)
		}
	default:
		return fmt.Errorf("question %s: unknown type %q", q.ID, q.Type)
	}

	for key := range correct {
		if !keys[key] {
			return fmt.Errorf("question %s: correct answer references unknown option %q", q.ID, key)
		}
	}
	return nil
}

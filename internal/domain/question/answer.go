package question

import (
	"bytes"
	"encoding/json"
	"strings"
)

type answerKind int

const (
	kindNone answerKind = iota
	kindSingle
	kindMultiple
)

// Answer is what a user selected for one question: either a single option
// key or a set of option keys. The zero value is an empty answer, which
// never validates.
type Answer struct {
	kind   answerKind
	single string
	keys   []string
}

// SingleAnswer builds an answer selecting one option.
func SingleAnswer(key string) Answer {
	return Answer{kind: kindSingle, single: key}
}

// MultipleAnswer builds an answer selecting a set of options.
func MultipleAnswer(keys ...string) Answer {
	k := make([]string, len(keys))
	copy(k, keys)
	return Answer{kind: kindMultiple, keys: k}
}

// IsEmpty reports whether nothing was selected.
func (a Answer) IsEmpty() bool {
	switch a.kind {
	case kindSingle:
		return a.single == ""
	case kindMultiple:
		return len(a.keys) == 0
	default:
		return true
	}
}

// String renders the answer the way correct answers are stored:
// a key, or comma-separated keys.
func (a Answer) String() string {
	switch a.kind {
	case kindSingle:
		return a.single
	case kindMultiple:
		return strings.Join(a.keys, ",")
	default:
		return ""
	}
}

// MarshalJSON encodes a single answer as a string and a multiple answer as
// an array of strings.
func (a Answer) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case kindSingle:
		return json.Marshal(a.single)
	case kindMultiple:
		return json.Marshal(a.keys)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a string or an array of strings. Any other shape
// decodes to the empty answer rather than failing, so a malformed selection
// is simply graded as incorrect.
func (a *Answer) UnmarshalJSON(data []byte) error {
	*a = Answer{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*a = SingleAnswer(s)
		}
	case '[':
		var keys []string
		if err := json.Unmarshal(data, &keys); err == nil {
			*a = MultipleAnswer(keys...)
		}
	}
	return nil
}

// ParseCorrectKeys parses the comma-separated correct answer keys into a set.
// Whitespace around keys is trimmed and empty entries are dropped.
func ParseCorrectKeys(keys string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(keys, ",") {
		if key := strings.TrimSpace(part); key != "" {
			set[key] = true
		}
	}
	return set
}

// Validate reports whether selected matches correct for a question of
// type t. It never panics; malformed input is simply incorrect.
func Validate(selected Answer, correct string, t Type) bool {
	if selected.IsEmpty() {
		return false
	}

	switch t {
	case TypeSingle:
		if selected.kind != kindSingle {
			return false
		}
		return selected.single == correct

	case TypeMultiple:
		if selected.kind != kindMultiple {
			return false
		}
		chosen := make(map[string]bool, len(selected.keys))
		for _, key := range selected.keys {
			if key == "" || chosen[key] {
				return false
			}
			chosen[key] = true
		}
		want := ParseCorrectKeys(correct)
		if len(chosen) != len(want) {
			return false
		}
		for key := range chosen {
			if !want[key] {
				return false
			}
		}
		return true

	default:
		return false
	}
}

// Grade validates an answer against this question.
func (q Question) Grade(selected Answer) bool {
	return Validate(selected, q.CorrectAnswer, q.Type)
}

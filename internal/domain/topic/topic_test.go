package topic_test

import (
	"testing"

	"github.com/quizreview/backend/internal/domain/topic"
)

func TestNewTopic(t *testing.T) {
	tp, err := topic.New("go-basics", "Go basics", "Programming")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tp.Name != "Go basics" {
		t.Errorf("expected name %q, got %q", "Go basics", tp.Name)
	}
	if tp.Domain != "Programming" {
		t.Errorf("expected domain %q, got %q", "Programming", tp.Domain)
	}
}

func TestNewTopic_NameDefaultsToID(t *testing.T) {
	tp, err := topic.New("sql", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tp.Name != "sql" {
		t.Errorf("expected name to default to id, got %q", tp.Name)
	}
}

func TestNewTopic_EmptyID(t *testing.T) {
	if _, err := topic.New("", "Name", ""); err == nil {
		t.Error("expected error for empty id, got nil")
	}
}

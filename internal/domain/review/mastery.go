package review

import (
	"sort"
	"time"

	"github.com/quizreview/backend/internal/domain/topic"
)

type MasteryLevel string

const (
	LevelNotStarted MasteryLevel = "not-started"
	LevelInProgress MasteryLevel = "in-progress"
	LevelMastered   MasteryLevel = "mastered"
)

// MasteryRecord aggregates a user's sessions for one topic.
type MasteryRecord struct {
	TopicID            string
	TopicName          string
	Level              MasteryLevel
	Sessions           int
	MasteredSessions   int
	RoundsToMasteryAvg float64 // mean rounds over mastered sessions, 0 if none
	LastPracticed      *time.Time
	TimeSpent          time.Duration
}

// Overview is a user's mastery across every topic.
type Overview struct {
	UserID                 string
	Topics                 []MasteryRecord
	Mastered               int
	InProgress             int
	NotStarted             int
	AverageRoundsToMastery float64 // mean of per-topic averages over mastered topics
	TotalTimeSpent         time.Duration
}

// BuildOverview classifies every known topic for a user. Sessions for topics
// missing from the catalogue are still reported under their id.
func BuildOverview(userID string, topics []topic.Topic, sessions []*Session) Overview {
	records := make(map[string]*MasteryRecord, len(topics))
	order := make([]string, 0, len(topics))

	add := func(id, name string) *MasteryRecord {
		if r, ok := records[id]; ok {
			return r
		}
		r := &MasteryRecord{TopicID: id, TopicName: name, Level: LevelNotStarted}
		records[id] = r
		order = append(order, id)
		return r
	}

	for _, t := range topics {
		add(t.ID, t.Name)
	}

	roundsByTopic := make(map[string]int)
	overview := Overview{UserID: userID}

	for _, s := range sessions {
		r := add(s.TopicID, s.TopicID)
		r.Sessions++

		spent := s.TimeSpent()
		r.TimeSpent += spent
		overview.TotalTimeSpent += spent

		practiced := s.UpdatedAt
		if r.LastPracticed == nil || practiced.After(*r.LastPracticed) {
			p := practiced
			r.LastPracticed = &p
		}

		if s.IsCompleted() && s.MasteryAchieved {
			r.MasteredSessions++
			roundsByTopic[s.TopicID] += len(s.History)
		}
	}

	var masteredRounds float64
	for _, id := range order {
		r := records[id]
		switch {
		case r.MasteredSessions > 0:
			r.Level = LevelMastered
			r.RoundsToMasteryAvg = float64(roundsByTopic[id]) / float64(r.MasteredSessions)
			masteredRounds += r.RoundsToMasteryAvg
			overview.Mastered++
		case r.Sessions > 0:
			r.Level = LevelInProgress
			overview.InProgress++
		default:
			overview.NotStarted++
		}
	}

	if overview.Mastered > 0 {
		overview.AverageRoundsToMastery = masteredRounds / float64(overview.Mastered)
	}

	sort.Strings(order)
	overview.Topics = make([]MasteryRecord, 0, len(order))
	for _, id := range order {
		overview.Topics = append(overview.Topics, *records[id])
	}
	return overview
}

// CompletedHistory returns the completed sessions summarised and ordered by
// start time, oldest first.
func CompletedHistory(sessions []*Session) []Summary {
	completed := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		if s.IsCompleted() {
			completed = append(completed, s)
		}
	}

	sort.SliceStable(completed, func(i, j int) bool {
		return completed[i].StartedAt.Before(completed[j].StartedAt)
	})

	summaries := make([]Summary, len(completed))
	for i, s := range completed {
		summaries[i] = s.Summary()
	}
	return summaries
}

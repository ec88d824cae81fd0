// Package stats maintains lifetime per-topic accuracy and classifies
// topics as weak or strong for targeted practice.
package stats

import (
	"fmt"
	"sort"
)

// Classification thresholds, in percent. A topic strictly below
// WeakThreshold is weak; at or above StrongThreshold it is strong.
const (
	WeakThreshold   = 60.0
	StrongThreshold = 80.0
)

// TopicStat holds the lifetime tally for one topic.
type TopicStat struct {
	Correct  int     `json:"correct"`
	Total    int     `json:"total"`
	Accuracy float64 `json:"accuracy"`
}

// UserStats is the persisted aggregate across all submitted exams.
// WeakTopics and StrongTopics are recomputed in full from TopicStats on
// every update rather than patched incrementally, so they can never
// drift from the tallies.
type UserStats struct {
	OverallAccuracy float64              `json:"overallAccuracy"`
	TopicStats      map[string]TopicStat `json:"topicStats"`
	WeakTopics      []string             `json:"weakTopics"`
	StrongTopics    []string             `json:"strongTopics"`
}

// DefaultUserStats returns the empty shape used when nothing has been
// persisted yet or the stored record is unreadable.
func DefaultUserStats() UserStats {
	return UserStats{
		TopicStats:   map[string]TopicStat{},
		WeakTopics:   []string{},
		StrongTopics: []string{},
	}
}

// Result is one graded question fed into the aggregator.
type Result struct {
	Topic   string
	Correct bool
}

// Store persists the UserStats record. The SQLite store implements it;
// tests substitute an in-memory fake.
type Store interface {
	LoadUserStats() (UserStats, error)
	SaveUserStats(UserStats) error
}

// Aggregator folds graded results into the persisted statistics.
type Aggregator struct {
	store Store
}

// NewAggregator creates an Aggregator backed by the given store.
func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// Update applies the results to the persisted stats and returns the
// updated value. A topic not seen before starts at 0/0. An empty
// results slice is a no-op apart from reclassification.
func (a *Aggregator) Update(results []Result) (UserStats, error) {
	us, err := a.store.LoadUserStats()
	if err != nil {
		return us, fmt.Errorf("load user stats: %w", err)
	}
	// Copy the topic table before mutating so the UserStats returned by a
	// previous Update never aliases the state modified by this one.
	ts := make(map[string]TopicStat, len(us.TopicStats))
	for k, v := range us.TopicStats {
		ts[k] = v
	}
	us.TopicStats = ts

	for _, r := range results {
		ts := us.TopicStats[r.Topic]
		ts.Total++
		if r.Correct {
			ts.Correct++
		}
		ts.Accuracy = 100 * float64(ts.Correct) / float64(ts.Total)
		us.TopicStats[r.Topic] = ts
	}

	reclassify(&us)

	if err := a.store.SaveUserStats(us); err != nil {
		return us, fmt.Errorf("save user stats: %w", err)
	}
	return us, nil
}

// Current returns the persisted stats without modifying them.
func (a *Aggregator) Current() (UserStats, error) {
	return a.store.LoadUserStats()
}

// reclassify recomputes weak/strong sets and the overall accuracy from
// the complete topic table. Topic lists are sorted for deterministic
// output.
func reclassify(us *UserStats) {
	weak := []string{}
	strong := []string{}
	totalCorrect := 0
	totalAttempted := 0

	for topic, ts := range us.TopicStats {
		totalCorrect += ts.Correct
		totalAttempted += ts.Total
		if ts.Total == 0 {
			continue
		}
		if ts.Accuracy < WeakThreshold {
			weak = append(weak, topic)
		}
		if ts.Accuracy >= StrongThreshold {
			strong = append(strong, topic)
		}
	}

	sort.Strings(weak)
	sort.Strings(strong)
	us.WeakTopics = weak
	us.StrongTopics = strong

	if totalAttempted == 0 {
		us.OverallAccuracy = 0
		return
	}
	us.OverallAccuracy = 100 * float64(totalCorrect) / float64(totalAttempted)
}

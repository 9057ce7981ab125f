package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	SchemaVersion = 1

	// DefaultPoolID names the pool the legacy single-pool layout maps
	// to.
	DefaultPoolID = "default"

	// MaxEvents bounds the persisted log after age filtering.
	MaxEvents = 200
	// MaxEventAge is the retention window of the persisted log.
	MaxEventAge = 30 * 24 * time.Hour
)

// Score is the outcome of a comparison expressed for the first item:
// 1 first item won, 0 second item won, 0.5 draw.
type Score float64

const (
	ScoreWinA Score = 1
	ScoreWinB Score = 0
	ScoreDraw Score = 0.5
)

func (s Score) Validate() error {
	switch s {
	case ScoreWinA, ScoreWinB, ScoreDraw:
		return nil
	default:
		return fmt.Errorf("unsupported outcome score %v", float64(s))
	}
}

// ComparisonEvent is one immutable pairwise outcome. The JSON tags are
// the persisted wire form of the events document.
type ComparisonEvent struct {
	At    int64  `json:"t"`
	ItemA string `json:"a"`
	ItemB string `json:"b"`
	Score Score  `json:"s"`
}

func (e ComparisonEvent) Validate() error {
	if e.At <= 0 {
		return fmt.Errorf("event timestamp must be positive")
	}
	if strings.TrimSpace(e.ItemA) == "" || strings.TrimSpace(e.ItemB) == "" {
		return fmt.Errorf("event item ids are required")
	}
	if e.ItemA == e.ItemB {
		return fmt.Errorf("event items must be distinct")
	}
	return e.Score.Validate()
}

// RatingRecord is the materialized projection of all events affecting
// one item. The JSON tags are the wire form of the ratings document.
type RatingRecord struct {
	Rating float64 `json:"rating"`
	Games  int     `json:"games"`
	Pool   string  `json:"pool"`
	Last   string  `json:"last,omitempty"`
}

func (r RatingRecord) Validate() error {
	if r.Games < 0 {
		return fmt.Errorf("games must not be negative")
	}
	if strings.TrimSpace(r.Pool) == "" {
		return fmt.Errorf("rating record pool is required")
	}
	return nil
}

// Store pairs the bounded event log with the materialized ratings of
// one pool. Ratings should be derivable by replaying events from
// defaults, but direct mutation alongside each append is the working
// mode; the events list is lossy past the retention bounds while the
// ratings keep the cumulative effect.
type Store struct {
	Events  []ComparisonEvent
	Ratings map[string]RatingRecord
}

// NewStore returns the empty default store.
func NewStore() Store {
	return Store{Events: []ComparisonEvent{}, Ratings: map[string]RatingRecord{}}
}

// DateOf renders an event timestamp as the calendar date kept in
// rating records.
func DateOf(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02")
}

// RebuildStore folds events into a fresh store for one pool. Ratings
// are materialized by replaying every event from defaults, so even
// events the bounded log no longer retains contribute their effect.
// The log itself is rebuilt as if events had been appended one at a
// time, which re-applies the retention policy.
func RebuildStore(poolID string, events []ComparisonEvent) Store {
	ordered := make([]ComparisonEvent, 0, len(events))
	for _, e := range events {
		if e.Validate() != nil {
			continue
		}
		ordered = append(ordered, e)
	}
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].At < ordered[b].At })

	store := NewStore()
	for _, e := range ordered {
		rA, rB := float64(DefaultRating), float64(DefaultRating)
		gamesA, gamesB := 0, 0
		if rec, ok := store.Ratings[e.ItemA]; ok {
			rA, gamesA = rec.Rating, rec.Games
		}
		if rec, ok := store.Ratings[e.ItemB]; ok {
			rB, gamesB = rec.Rating, rec.Games
		}
		newA, newB := UpdateRatings(rA, rB, e.Score)
		day := DateOf(e.At)
		store.Ratings[e.ItemA] = RatingRecord{Rating: newA, Games: gamesA + 1, Pool: poolID, Last: day}
		store.Ratings[e.ItemB] = RatingRecord{Rating: newB, Games: gamesB + 1, Pool: poolID, Last: day}
		store.Events = AppendEvent(store.Events, e)
	}
	return store
}

// AppendEvent adds event to the log, dropping entries older than the
// retention window first and then truncating to the newest MaxEvents.
// The age cutoff is measured against the appended event's timestamp.
func AppendEvent(events []ComparisonEvent, event ComparisonEvent) []ComparisonEvent {
	cutoff := event.At - MaxEventAge.Milliseconds()
	kept := make([]ComparisonEvent, 0, len(events)+1)
	for _, e := range events {
		if e.At < cutoff {
			continue
		}
		kept = append(kept, e)
	}
	kept = append(kept, event)
	if len(kept) > MaxEvents {
		kept = kept[len(kept)-MaxEvents:]
	}
	return kept
}

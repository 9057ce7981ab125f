package domain

import (
	"fmt"
	"math/rand"
)

// SessionState names the lifecycle phase of a comparison session.
type SessionState string

const (
	StateUninitialized SessionState = "uninitialized"
	StateLoading       SessionState = "loading"
	StateReady         SessionState = "ready"
	StateComparing     SessionState = "comparing"
)

// Contender is the live working copy of one comparable item. The live
// Rating and GamesPlayed come from the pool's store, not the source
// property; the source property only marked the item as comparable.
type Contender struct {
	ID           string
	DisplayName  string
	Rating       float64
	GamesPlayed  int
	PoolID       string
	LastCompared string
}

// MergeContenders overlays the materialized records onto the source
// items. An item with no record starts at DefaultRating with zero
// games. Source ordering is preserved.
func MergeContenders(items []Contender, ratings map[string]RatingRecord) []Contender {
	merged := make([]Contender, len(items))
	for i, item := range items {
		item.Rating = DefaultRating
		item.GamesPlayed = 0
		item.LastCompared = ""
		if rec, ok := ratings[item.ID]; ok {
			item.Rating = rec.Rating
			item.GamesPlayed = rec.Games
			item.LastCompared = rec.Last
		}
		merged[i] = item
	}
	return merged
}

// Session is the comparison state machine for one pool. All methods
// mutate pure in-memory state; persistence and fan-out belong to the
// service layer. Store and items load independently, and the merge of
// the two runs exactly once per Begin, so mid-session store writes
// never clobber live contender state.
type Session struct {
	PoolID     string
	State      SessionState
	Contenders []Contender
	Pair       Pair
	History    []HistoryEntry
	Store      Store

	source      []Contender
	itemsLoaded bool
	storeLoaded bool
	merged      bool
}

func NewSession(poolID string) *Session {
	return &Session{PoolID: poolID, State: StateUninitialized, Store: NewStore()}
}

// Begin restarts the loading lifecycle. Results attached for a
// previous Begin are rejected by the state guards, so a stale load
// cannot clobber a newer one.
func (s *Session) Begin() {
	s.State = StateLoading
	s.itemsLoaded = false
	s.storeLoaded = false
	s.merged = false
	s.Pair = Pair{}
}

func (s *Session) guard(op string, allowed ...SessionState) error {
	for _, state := range allowed {
		if s.State == state {
			return nil
		}
	}
	return fmt.Errorf("%s not allowed in state %s", op, s.State)
}

// StoreLoaded reports whether the pool's store arrived. Outcomes must
// not be recorded before it does, or the first persisted write would
// silently drop everything the stored documents held.
func (s *Session) StoreLoaded() bool { return s.storeLoaded }

// AttachContenders installs the source item list. The merge with the
// store runs once both sides have arrived.
func (s *Session) AttachContenders(items []Contender) error {
	if err := s.guard("attach items", StateLoading); err != nil {
		return err
	}
	s.source = make([]Contender, len(items))
	copy(s.source, items)
	s.itemsLoaded = true
	s.maybeMerge()
	return nil
}

// AttachStore installs the loaded store counterpart of AttachContenders.
func (s *Session) AttachStore(store Store) error {
	if err := s.guard("attach store", StateLoading); err != nil {
		return err
	}
	if store.Ratings == nil {
		store.Ratings = map[string]RatingRecord{}
	}
	s.Store = store
	s.storeLoaded = true
	s.maybeMerge()
	return nil
}

func (s *Session) maybeMerge() {
	if !s.itemsLoaded || !s.storeLoaded || s.merged {
		return
	}
	s.Contenders = MergeContenders(s.source, s.Store.Ratings)
	s.History = reversed(ReconstructHistory(s.Contenders, s.Store))
	s.merged = true
	s.State = StateReady
}

// NextPair selects the next comparison and enters Comparing. With
// fewer than two contenders the pair is degenerate and the session
// stays Ready.
func (s *Session) NextPair(rng *rand.Rand) (Pair, error) {
	if err := s.guard("select pair", StateReady, StateComparing); err != nil {
		return Pair{}, err
	}
	s.Pair = SelectPair(s.Contenders, rng)
	if s.Pair.Degenerate() {
		s.State = StateReady
	} else {
		s.State = StateComparing
	}
	return s.Pair, nil
}

// RecordOutcome applies the score for the on-screen pair: updates both
// contenders, prepends a history entry for decisive outcomes, appends
// the event under the retention policy, and rewrites the two involved
// rating records. The caller persists the returned state and selects
// the next pair. at is epoch milliseconds, today a calendar date.
func (s *Session) RecordOutcome(score Score, at int64, today string) (ComparisonEvent, error) {
	if err := s.guard("record outcome", StateComparing); err != nil {
		return ComparisonEvent{}, err
	}
	if !s.storeLoaded {
		return ComparisonEvent{}, fmt.Errorf("record outcome: store not loaded")
	}
	if err := score.Validate(); err != nil {
		return ComparisonEvent{}, err
	}
	if s.Pair.Degenerate() || s.Pair.A >= len(s.Contenders) || s.Pair.B >= len(s.Contenders) {
		return ComparisonEvent{}, fmt.Errorf("record outcome: no valid pair selected")
	}

	a := &s.Contenders[s.Pair.A]
	b := &s.Contenders[s.Pair.B]
	oldA, oldB := a.Rating, b.Rating
	newA, newB := UpdateRatings(oldA, oldB, score)

	event := ComparisonEvent{At: at, ItemA: a.ID, ItemB: b.ID, Score: score}
	if err := event.Validate(); err != nil {
		return ComparisonEvent{}, err
	}

	a.Rating, b.Rating = newA, newB
	a.GamesPlayed++
	b.GamesPlayed++
	a.LastCompared, b.LastCompared = today, today

	if score != ScoreDraw {
		entry := HistoryEntry{At: at}
		if score == ScoreWinA {
			entry.WinnerID, entry.WinnerName = a.ID, a.DisplayName
			entry.LoserID, entry.LoserName = b.ID, b.DisplayName
			entry.WinnerBefore, entry.WinnerAfter = oldA, newA
			entry.LoserBefore, entry.LoserAfter = oldB, newB
		} else {
			entry.WinnerID, entry.WinnerName = b.ID, b.DisplayName
			entry.LoserID, entry.LoserName = a.ID, a.DisplayName
			entry.WinnerBefore, entry.WinnerAfter = oldB, newB
			entry.LoserBefore, entry.LoserAfter = oldA, newA
		}
		s.History = append([]HistoryEntry{entry}, s.History...)
	}

	s.Store.Events = AppendEvent(s.Store.Events, event)
	s.Store.Ratings[a.ID] = RatingRecord{Rating: a.Rating, Games: a.GamesPlayed, Pool: s.PoolID, Last: today}
	s.Store.Ratings[b.ID] = RatingRecord{Rating: b.Rating, Games: b.GamesPlayed, Pool: s.PoolID, Last: today}

	s.State = StateReady
	return event, nil
}

// RemoveContender drops one item from the working set without touching
// the store. The caller re-derives the pair.
func (s *Session) RemoveContender(index int) error {
	if err := s.guard("remove item", StateReady, StateComparing); err != nil {
		return err
	}
	if index < 0 || index >= len(s.Contenders) {
		return fmt.Errorf("remove item: index %d out of range", index)
	}
	s.Contenders = append(s.Contenders[:index], s.Contenders[index+1:]...)
	s.Pair = Pair{}
	s.State = StateReady
	return nil
}

// Reset wipes the store and returns the working set to defaults.
// Items removed from the working set stay removed until the next
// Begin. Confirmation is the caller's gate.
func (s *Session) Reset() error {
	if err := s.guard("reset", StateReady, StateComparing); err != nil {
		return err
	}
	s.Store = NewStore()
	s.Contenders = MergeContenders(s.Contenders, s.Store.Ratings)
	s.History = nil
	s.Pair = Pair{}
	s.State = StateReady
	return nil
}

func reversed(entries []HistoryEntry) []HistoryEntry {
	out := make([]HistoryEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	return out
}

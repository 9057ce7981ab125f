package domain_test

import (
	"math/rand"
	"testing"
	"time"

	"mdrank/internal/modules/duel/domain"
)

func readySession(t *testing.T, ids ...string) *domain.Session {
	t.Helper()
	s := domain.NewSession("p")
	s.Begin()
	if err := s.AttachContenders(namedContenders(ids...)); err != nil {
		t.Fatalf("attach items: %v", err)
	}
	if err := s.AttachStore(domain.NewStore()); err != nil {
		t.Fatalf("attach store: %v", err)
	}
	if s.State != domain.StateReady {
		t.Fatalf("expected ready after both loads, got %s", s.State)
	}
	return s
}

func TestSessionGuardsBeforeBegin(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("p")
	if err := s.AttachContenders(namedContenders("a.md")); err == nil {
		t.Fatalf("expected attach to fail while uninitialized")
	}
	if _, err := s.RecordOutcome(domain.ScoreWinA, time.Now().UnixMilli(), "2026-01-01"); err == nil {
		t.Fatalf("expected record to fail while uninitialized")
	}
}

func TestSessionStaysLoadingUntilBothSidesArrive(t *testing.T) {
	t.Parallel()
	s := domain.NewSession("p")
	s.Begin()
	if err := s.AttachContenders(namedContenders("a.md", "b.md")); err != nil {
		t.Fatalf("attach items: %v", err)
	}
	if s.State != domain.StateLoading {
		t.Fatalf("items alone must not complete the load, state %s", s.State)
	}
	if s.StoreLoaded() {
		t.Fatalf("store must not be marked loaded")
	}
	if err := s.AttachStore(domain.NewStore()); err != nil {
		t.Fatalf("attach store: %v", err)
	}
	if s.State != domain.StateReady || !s.StoreLoaded() {
		t.Fatalf("expected ready with store loaded, got %s", s.State)
	}
}

func TestSessionRecordOutcomeUpdatesEverything(t *testing.T) {
	t.Parallel()
	s := readySession(t, "a.md", "b.md")
	rng := rand.New(rand.NewSource(3))
	pair, err := s.NextPair(rng)
	if err != nil {
		t.Fatalf("next pair: %v", err)
	}
	if pair.Degenerate() || s.State != domain.StateComparing {
		t.Fatalf("expected comparing with a live pair, got %s %+v", s.State, pair)
	}

	at := time.Now().UnixMilli()
	ev, err := s.RecordOutcome(domain.ScoreWinA, at, "2026-08-26")
	if err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	if s.State != domain.StateReady {
		t.Fatalf("expected ready after record, got %s", s.State)
	}
	winner := s.Contenders[pair.A]
	loser := s.Contenders[pair.B]
	if winner.Rating != 1016 || loser.Rating != 984 {
		t.Fatalf("ratings not applied: %v/%v", winner.Rating, loser.Rating)
	}
	if winner.GamesPlayed != 1 || winner.LastCompared != "2026-08-26" {
		t.Fatalf("contender bookkeeping missing: %+v", winner)
	}
	if len(s.History) != 1 || s.History[0].WinnerID != winner.ID {
		t.Fatalf("history entry not prepended: %+v", s.History)
	}
	if len(s.Store.Events) != 1 || s.Store.Events[0] != ev {
		t.Fatalf("event not appended: %+v", s.Store.Events)
	}
	if s.Store.Ratings[winner.ID].Rating != 1016 {
		t.Fatalf("rating record not rewritten: %+v", s.Store.Ratings[winner.ID])
	}
}

func TestSessionRecordRejectedWithoutPair(t *testing.T) {
	t.Parallel()
	s := readySession(t, "a.md", "b.md")
	if _, err := s.RecordOutcome(domain.ScoreWinA, time.Now().UnixMilli(), "2026-01-01"); err == nil {
		t.Fatalf("expected record to fail before a pair is selected")
	}
}

func TestSessionDegeneratePairStaysReady(t *testing.T) {
	t.Parallel()
	s := readySession(t, "a.md")
	rng := rand.New(rand.NewSource(1))
	pair, err := s.NextPair(rng)
	if err != nil {
		t.Fatalf("next pair: %v", err)
	}
	if !pair.Degenerate() || s.State != domain.StateReady {
		t.Fatalf("single contender must stay ready, got %s %+v", s.State, pair)
	}
}

func TestSessionRemoveContender(t *testing.T) {
	t.Parallel()
	s := readySession(t, "a.md", "b.md", "c.md")
	if err := s.RemoveContender(5); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if err := s.RemoveContender(1); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Contenders) != 2 {
		t.Fatalf("expected 2 contenders, got %d", len(s.Contenders))
	}
	if !s.Pair.Degenerate() {
		t.Fatalf("removal must invalidate the pair")
	}
	// The store keeps the removed item's record.
	if s.StoreLoaded() != true {
		t.Fatalf("store state must be untouched")
	}
}

func TestSessionResetWipesStoreAndRatings(t *testing.T) {
	t.Parallel()
	s := readySession(t, "a.md", "b.md")
	rng := rand.New(rand.NewSource(9))
	if _, err := s.NextPair(rng); err != nil {
		t.Fatalf("next pair: %v", err)
	}
	if _, err := s.RecordOutcome(domain.ScoreWinA, time.Now().UnixMilli(), "2026-08-26"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := s.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if len(s.Store.Events) != 0 || len(s.Store.Ratings) != 0 {
		t.Fatalf("store not wiped: %+v", s.Store)
	}
	for _, c := range s.Contenders {
		if c.Rating != domain.DefaultRating || c.GamesPlayed != 0 {
			t.Fatalf("contender not reset: %+v", c)
		}
	}
	if len(s.History) != 0 {
		t.Fatalf("history must be cleared")
	}
}

func TestSessionBeginRejectsStaleAttach(t *testing.T) {
	t.Parallel()
	s := readySession(t, "a.md", "b.md")
	// Ready sessions reject attach calls; a stale load result arriving
	// after a newer Begin completed cannot clobber the merged state.
	if err := s.AttachStore(domain.NewStore()); err == nil {
		t.Fatalf("expected attach to fail outside loading")
	}
}

func TestMergeContendersOverlaysRecords(t *testing.T) {
	t.Parallel()
	items := namedContenders("a.md", "b.md")
	items[0].Rating = 1500 // source property seed is ignored
	ratings := map[string]domain.RatingRecord{
		"b.md": {Rating: 1100, Games: 4, Pool: "p", Last: "2026-08-01"},
	}
	merged := domain.MergeContenders(items, ratings)
	if merged[0].Rating != domain.DefaultRating || merged[0].GamesPlayed != 0 {
		t.Fatalf("unrecorded item must start at defaults: %+v", merged[0])
	}
	if merged[1].Rating != 1100 || merged[1].GamesPlayed != 4 || merged[1].LastCompared != "2026-08-01" {
		t.Fatalf("record not overlaid: %+v", merged[1])
	}
}

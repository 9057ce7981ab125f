package domain_test

import (
	"reflect"
	"testing"
	"time"

	"mdrank/internal/modules/duel/domain"
)

func namedContenders(ids ...string) []domain.Contender {
	out := make([]domain.Contender, len(ids))
	for i, id := range ids {
		out[i] = domain.Contender{ID: id, DisplayName: id}
	}
	return out
}

func TestReconstructHistoryDecisiveEntries(t *testing.T) {
	t.Parallel()
	base := time.Now().UnixMilli()
	store := domain.NewStore()
	store.Events = []domain.ComparisonEvent{
		event(base, "a.md", "b.md", domain.ScoreWinA),
		event(base+1, "a.md", "b.md", domain.ScoreWinB),
	}

	entries := domain.ReconstructHistory(namedContenders("a.md", "b.md"), store)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	first := entries[0]
	if first.WinnerID != "a.md" || first.LoserID != "b.md" {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	if first.WinnerBefore != 1000 || first.WinnerAfter != 1016 || first.LoserAfter != 984 {
		t.Fatalf("unexpected first ratings: %+v", first)
	}
	second := entries[1]
	if second.WinnerID != "b.md" || second.WinnerBefore != 984 {
		t.Fatalf("second entry must continue from the working state: %+v", second)
	}
}

func TestReconstructHistorySkipsDraws(t *testing.T) {
	t.Parallel()
	base := time.Now().UnixMilli()
	store := domain.NewStore()
	store.Events = []domain.ComparisonEvent{
		event(base, "a.md", "b.md", domain.ScoreDraw),
		event(base+1, "a.md", "b.md", domain.ScoreWinA),
	}

	entries := domain.ReconstructHistory(namedContenders("a.md", "b.md"), store)
	if len(entries) != 1 {
		t.Fatalf("draws must not produce entries, got %d", len(entries))
	}
	// The draw still advanced games; ratings stayed level so the win
	// pays the fresh-pair amount.
	if entries[0].WinnerAfter != 1016 {
		t.Fatalf("unexpected post-win rating: %+v", entries[0])
	}
}

func TestReconstructHistorySkipsUnknownIDs(t *testing.T) {
	t.Parallel()
	base := time.Now().UnixMilli()
	store := domain.NewStore()
	store.Events = []domain.ComparisonEvent{
		event(base, "a.md", "gone.md", domain.ScoreWinA),
		event(base+1, "a.md", "b.md", domain.ScoreWinA),
	}

	entries := domain.ReconstructHistory(namedContenders("a.md", "b.md"), store)
	if len(entries) != 1 {
		t.Fatalf("expected the unknown-id event skipped, got %d entries", len(entries))
	}
	// The skipped event must not have advanced a.md's working state.
	if entries[0].WinnerBefore != 1000 {
		t.Fatalf("skipped event leaked into working state: %+v", entries[0])
	}
}

func TestReconstructHistorySeedsFromMaterializedRecords(t *testing.T) {
	t.Parallel()
	base := time.Now().UnixMilli()
	store := domain.NewStore()
	store.Ratings["a.md"] = domain.RatingRecord{Rating: 1200, Games: 9, Pool: "p"}
	store.Events = []domain.ComparisonEvent{
		event(base, "a.md", "b.md", domain.ScoreWinA),
	}

	entries := domain.ReconstructHistory(namedContenders("a.md", "b.md"), store)
	if len(entries) != 1 || entries[0].WinnerBefore != 1200 {
		t.Fatalf("expected replay seeded from the record, got %+v", entries)
	}
}

func TestReconstructHistoryIsRepeatable(t *testing.T) {
	t.Parallel()
	base := time.Now().UnixMilli()
	store := domain.NewStore()
	store.Events = []domain.ComparisonEvent{
		event(base, "a.md", "b.md", domain.ScoreWinA),
		event(base+1, "b.md", "c.md", domain.ScoreWinB),
		event(base+2, "c.md", "a.md", domain.ScoreDraw),
	}
	contenders := namedContenders("a.md", "b.md", "c.md")

	first := domain.ReconstructHistory(contenders, store)
	second := domain.ReconstructHistory(contenders, store)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("reconstruction must be deterministic:\n%+v\n%+v", first, second)
	}
}

package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"mdrank/internal/modules/rivals/adapter/out"
)

func newStore(t *testing.T) *out.SQLiteRivalryStore {
	t.Helper()
	store, err := out.NewSQLiteRivalryStore(filepath.Join(t.TempDir(), "mdrank.db"))
	if err != nil {
		t.Fatalf("new rivalry store: %v", err)
	}
	return store
}

func TestRecordNormalizesPairOrder(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	// b.md shown first and winning is the same rivalry as a.md shown
	// first and losing.
	if err := store.Record(ctx, "p", "b.md", "a.md", 1, 100); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p", "a.md", "b.md", 0, 300); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p", "a.md", "b.md", 0.5, 200); err != nil {
		t.Fatalf("record: %v", err)
	}

	rivalry, err := store.Get(ctx, "p", "b.md", "a.md")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rivalry.ItemA != "a.md" || rivalry.ItemB != "b.md" {
		t.Fatalf("pair not canonical: %+v", rivalry)
	}
	if rivalry.WinsA != 0 || rivalry.WinsB != 2 || rivalry.Draws != 1 {
		t.Fatalf("expected 0-2-1 for a.md, got %d-%d-%d", rivalry.WinsA, rivalry.WinsB, rivalry.Draws)
	}
	if rivalry.Total() != 3 {
		t.Fatalf("expected 3 games, got %d", rivalry.Total())
	}
	if rivalry.LastAt != 300 {
		t.Fatalf("last_at must keep the newest timestamp, got %d", rivalry.LastAt)
	}
}

func TestOpponentsListsBothSides(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	// b.md sits on the canonical right of one pair and the left of
	// the other.
	if err := store.Record(ctx, "p", "a.md", "b.md", 1, 100); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p", "b.md", "c.md", 0, 200); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p", "b.md", "c.md", 0.5, 300); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p", "a.md", "c.md", 1, 400); err != nil {
		t.Fatalf("record: %v", err)
	}

	opponents, err := store.Opponents(ctx, "p", "b.md")
	if err != nil {
		t.Fatalf("opponents: %v", err)
	}
	if len(opponents) != 2 {
		t.Fatalf("expected 2 rivalries for b.md, got %+v", opponents)
	}
	if opponents[0].ItemA != "b.md" || opponents[0].ItemB != "c.md" || opponents[0].Total() != 2 {
		t.Fatalf("most-played rivalry must sort first: %+v", opponents[0])
	}
	if opponents[1].ItemA != "a.md" || opponents[1].ItemB != "b.md" {
		t.Fatalf("unexpected second rivalry: %+v", opponents[1])
	}
}

func TestGetUnplayedPairIsZero(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	rivalry, err := store.Get(context.Background(), "p", "x.md", "y.md")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rivalry.Total() != 0 {
		t.Fatalf("expected empty record, got %+v", rivalry)
	}
	if rivalry.LabelA != "x.md" || rivalry.LabelB != "y.md" {
		t.Fatalf("labels must fall back to ids: %+v", rivalry)
	}
}

func TestListOrdersByGames(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := store.Record(ctx, "p", "a.md", "b.md", 1, 500); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	if err := store.Record(ctx, "p", "a.md", "c.md", 0, 400); err != nil {
		t.Fatalf("record: %v", err)
	}

	list, err := store.List(ctx, "p", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rivalries, got %d", len(list))
	}
	if list[0].ItemB != "b.md" || list[0].Total() != 3 {
		t.Fatalf("most-played rivalry must sort first: %+v", list[0])
	}

	limited, err := store.List(ctx, "p", 1)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("limit not applied, got %d", len(limited))
	}
}

func TestBeatPathBFS(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	// a beats b, b beats c; a never faced c.
	if err := store.Record(ctx, "p", "a.md", "b.md", 1, 500); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p", "b.md", "c.md", 1, 500); err != nil {
		t.Fatalf("record: %v", err)
	}

	nodes, err := store.BeatPath(ctx, "p", "a.md", "c.md")
	if err != nil {
		t.Fatalf("beat path: %v", err)
	}
	if len(nodes) != 3 {
		t.Fatalf("expected 3-hop chain, got %+v", nodes)
	}
	if nodes[0].ItemID != "a.md" || nodes[1].ItemID != "b.md" || nodes[2].ItemID != "c.md" {
		t.Fatalf("unexpected chain: %+v", nodes)
	}

	// The reverse direction has no chain of victories.
	reverse, err := store.BeatPath(ctx, "p", "c.md", "a.md")
	if err != nil {
		t.Fatalf("beat path: %v", err)
	}
	if len(reverse) != 0 {
		t.Fatalf("expected no path, got %+v", reverse)
	}
}

func TestBeatPathRequiresWinningRecord(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()

	// a took one game off b but lost the series 1-9; only b holds a
	// winning record.
	if err := store.Record(ctx, "p", "a.md", "b.md", 1, 100); err != nil {
		t.Fatalf("record: %v", err)
	}
	for i := 0; i < 9; i++ {
		if err := store.Record(ctx, "p", "a.md", "b.md", 0, int64(200+i)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	nodes, err := store.BeatPath(ctx, "p", "a.md", "b.md")
	if err != nil {
		t.Fatalf("beat path: %v", err)
	}
	if len(nodes) != 0 {
		t.Fatalf("a 1-9 record must not count as beating: %+v", nodes)
	}

	nodes, err = store.BeatPath(ctx, "p", "b.md", "a.md")
	if err != nil {
		t.Fatalf("beat path: %v", err)
	}
	if len(nodes) != 2 || nodes[0].ItemID != "b.md" || nodes[1].ItemID != "a.md" {
		t.Fatalf("series winner must hold the edge: %+v", nodes)
	}
}

func TestBeatPathDegenerateInputs(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	if nodes, err := store.BeatPath(ctx, "p", "a.md", "a.md"); err != nil || len(nodes) != 0 {
		t.Fatalf("identical endpoints must yield no path: %v %+v", err, nodes)
	}
	if nodes, err := store.BeatPath(ctx, "p", "", "a.md"); err != nil || len(nodes) != 0 {
		t.Fatalf("blank endpoint must yield no path: %v %+v", err, nodes)
	}
}

func TestResetClearsOnlyThePool(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx := context.Background()
	if err := store.Record(ctx, "p1", "a.md", "b.md", 1, 600); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Record(ctx, "p2", "a.md", "b.md", 1, 700); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := store.Reset(ctx, "p1"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	cleared, err := store.List(ctx, "p1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cleared) != 0 {
		t.Fatalf("p1 must be empty, got %+v", cleared)
	}
	kept, err := store.List(ctx, "p2", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(kept) != 1 {
		t.Fatalf("p2 must survive, got %+v", kept)
	}
}

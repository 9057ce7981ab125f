package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mdrank/internal/modules/duel/adapter/out"
	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
	"mdrank/internal/platform/logger"
)

func newGateway(t *testing.T) (duelout.StoreGateway, string) {
	t.Helper()
	root := t.TempDir()
	return out.NewJSONStoreGateway(out.NewOSDocumentStore(root), logger.Nop()), root
}

func writeDoc(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()
	gw, _ := newGateway(t)
	ctx := context.Background()

	at := time.Now().UnixMilli()
	store := domain.NewStore()
	store.Events = []domain.ComparisonEvent{{At: at, ItemA: "a.md", ItemB: "b.md", Score: domain.ScoreWinA}}
	store.Ratings = map[string]domain.RatingRecord{
		"a.md": {Rating: 1016, Games: 1, Pool: "books", Last: domain.DateOf(at)},
		"b.md": {Rating: 984, Games: 1, Pool: "books", Last: domain.DateOf(at)},
	}
	if err := gw.Save(ctx, "books", store); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := gw.Load(ctx, "books")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Events) != 1 || loaded.Events[0] != store.Events[0] {
		t.Fatalf("events mismatch: %+v", loaded.Events)
	}
	if loaded.Ratings["a.md"] != store.Ratings["a.md"] {
		t.Fatalf("ratings mismatch: %+v", loaded.Ratings["a.md"])
	}
}

func TestLoadMissingYieldsEmptyDefault(t *testing.T) {
	t.Parallel()
	gw, _ := newGateway(t)
	store, err := gw.Load(context.Background(), "books")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(store.Events) != 0 || len(store.Ratings) != 0 {
		t.Fatalf("expected empty store, got %+v", store)
	}
}

func TestLoadCorruptDocumentsDegradeSilently(t *testing.T) {
	t.Parallel()
	gw, root := newGateway(t)
	writeDoc(t, root, "history/events-books.json", "{not json")
	writeDoc(t, root, "history/ratings-books.json", `{"a.md": {"rating": 1, "games": -3, "pool": "books"}}`)

	store, err := gw.Load(context.Background(), "books")
	if err != nil {
		t.Fatalf("corrupt documents must not surface an error: %v", err)
	}
	if len(store.Events) != 0 || len(store.Ratings) != 0 {
		t.Fatalf("corrupt documents must degrade to empty, got %+v", store)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	gw, root := newGateway(t)
	writeDoc(t, root, "history/events-books.json",
		`[{"t": 1700000000000, "a": "a.md", "b": "b.md", "s": 1, "extra": true}]`)

	store, err := gw.Load(context.Background(), "books")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(store.Events) != 0 {
		t.Fatalf("document with unknown fields must fail closed, got %+v", store.Events)
	}
}

func TestLegacyDocumentsMigrateToDefaultPool(t *testing.T) {
	t.Parallel()
	gw, root := newGateway(t)
	writeDoc(t, root, "history/events.json",
		`[{"t": 1700000000000, "a": "a.md", "b": "b.md", "s": 0.5}]`)
	writeDoc(t, root, "history/ratings.json",
		`{"a.md": {"rating": 1000, "games": 1, "pool": "default"}}`)

	store, err := gw.Load(context.Background(), domain.DefaultPoolID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(store.Events) != 1 || store.Events[0].Score != domain.ScoreDraw {
		t.Fatalf("legacy events not migrated: %+v", store.Events)
	}
	if store.Ratings["a.md"].Games != 1 {
		t.Fatalf("legacy ratings not migrated: %+v", store.Ratings)
	}
	if _, err := os.Stat(filepath.Join(root, "history", "events.json")); !os.IsNotExist(err) {
		t.Fatalf("legacy events document should be removed after migration")
	}
	if _, err := os.Stat(filepath.Join(root, "history", "events-default.json")); err != nil {
		t.Fatalf("migrated document missing: %v", err)
	}
}

func TestLegacyMigrationDoesNotClobberSuffixed(t *testing.T) {
	t.Parallel()
	gw, root := newGateway(t)
	writeDoc(t, root, "history/events-default.json",
		`[{"t": 1700000000001, "a": "x.md", "b": "y.md", "s": 1}]`)
	writeDoc(t, root, "history/events.json",
		`[{"t": 1700000000000, "a": "a.md", "b": "b.md", "s": 0}]`)

	store, err := gw.Load(context.Background(), domain.DefaultPoolID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(store.Events) != 1 || store.Events[0].ItemA != "x.md" {
		t.Fatalf("suffixed document must win over legacy: %+v", store.Events)
	}
}

func TestDeleteRemovesBothDocuments(t *testing.T) {
	t.Parallel()
	gw, root := newGateway(t)
	ctx := context.Background()
	if err := gw.Save(ctx, "books", domain.NewStore()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := gw.Delete(ctx, "books"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	for _, rel := range []string{"history/events-books.json", "history/ratings-books.json"} {
		if _, err := os.Stat(filepath.Join(root, rel)); !os.IsNotExist(err) {
			t.Fatalf("%s should be gone", rel)
		}
	}
	// Deleting an absent pool is not an error.
	if err := gw.Delete(ctx, "books"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

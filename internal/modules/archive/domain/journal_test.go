package domain_test

import (
	"testing"

	"mdrank/internal/modules/archive/domain"
)

func entry(id string, at int64) domain.JournalEntry {
	return domain.JournalEntry{
		ID:   id,
		Node: "local",
		At:   at,
		Pool: "books",
		Event: domain.EventRecord{
			At:    at,
			ItemA: "a.md",
			ItemB: "b.md",
			Score: 1,
		},
	}
}

func validBundle() domain.Bundle {
	return domain.Bundle{
		SchemaVersion: domain.BundleSchemaVersion,
		Pool:          "books",
		Node:          "local",
		ExportedAt:    1700000000000,
		Entries:       []domain.JournalEntry{entry("e1", 1), entry("e2", 2)},
	}
}

func TestEventRecordValidate(t *testing.T) {
	t.Parallel()
	valid := domain.EventRecord{At: 1, ItemA: "a.md", ItemB: "b.md", Score: 0.5}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	bad := valid
	bad.Score = 0.3
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for score 0.3")
	}
	bad = valid
	bad.ItemB = "a.md"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for identical items")
	}
}

func TestBundleSignAndVerify(t *testing.T) {
	t.Parallel()
	key := []byte("shared-secret")
	bundle := validBundle().Signed(key)
	if bundle.Signature == "" {
		t.Fatalf("signing must attach a signature")
	}
	if err := bundle.Verify(key); err != nil {
		t.Fatalf("verify with the right key: %v", err)
	}
	if err := bundle.Verify([]byte("other-secret")); err != domain.ErrBadSignature {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestBundleVerifyDetectsTampering(t *testing.T) {
	t.Parallel()
	key := []byte("shared-secret")
	bundle := validBundle().Signed(key)
	bundle.Entries[0].Event.Score = 0
	if err := bundle.Verify(key); err != domain.ErrBadSignature {
		t.Fatalf("tampered bundle must fail verification, got %v", err)
	}
}

func TestBundleVerifyUnsigned(t *testing.T) {
	t.Parallel()
	if err := validBundle().Verify([]byte("k")); err != domain.ErrUnsignedBundle {
		t.Fatalf("expected ErrUnsignedBundle, got %v", err)
	}
}

func TestBundleValidate(t *testing.T) {
	t.Parallel()
	if err := validBundle().Validate(); err != nil {
		t.Fatalf("valid bundle rejected: %v", err)
	}
	wrongSchema := validBundle()
	wrongSchema.SchemaVersion = 99
	if err := wrongSchema.Validate(); err == nil {
		t.Fatalf("expected schema mismatch error")
	}
	crossPool := validBundle()
	crossPool.Entries[1].Pool = "other"
	if err := crossPool.Validate(); err == nil {
		t.Fatalf("expected cross-pool entry error")
	}
}

func TestMergeEntriesIdempotent(t *testing.T) {
	t.Parallel()
	existing := []domain.JournalEntry{entry("e1", 1), entry("e2", 2)}
	incoming := []domain.JournalEntry{entry("e2", 2), entry("e3", 3), entry("e0", 0)}

	added, skipped := domain.MergeEntries(existing, incoming)
	if skipped != 1 {
		t.Fatalf("expected e2 skipped, got %d", skipped)
	}
	if len(added) != 2 || added[0].ID != "e0" || added[1].ID != "e3" {
		t.Fatalf("added entries must be event-time ordered: %+v", added)
	}

	again, skippedAgain := domain.MergeEntries(append(existing, added...), incoming)
	if len(again) != 0 || skippedAgain != 3 {
		t.Fatalf("re-merge must be a no-op, got %d added %d skipped", len(again), skippedAgain)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	entries := []domain.JournalEntry{entry("e1", 5), entry("e2", 2), entry("e3", 9)}
	entries[2].Node = "laptop"

	stats := domain.Summarize("books", entries)
	if stats.EntryCount != 3 || stats.FirstAt != 2 || stats.LastAt != 9 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.Nodes) != 2 || stats.Nodes[0] != "laptop" || stats.Nodes[1] != "local" {
		t.Fatalf("nodes must be sorted and deduplicated: %+v", stats.Nodes)
	}
	if stats.GamesByItem["a.md"] != 3 || stats.GamesByItem["b.md"] != 3 {
		t.Fatalf("both pair members count every entry: %+v", stats.GamesByItem)
	}
}

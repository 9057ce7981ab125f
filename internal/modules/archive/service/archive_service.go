package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"mdrank/internal/modules/archive/domain"
	archiveout "mdrank/internal/modules/archive/port/out"
	"mdrank/internal/platform/clock"
	"mdrank/internal/platform/id"
)

// ArchiveService keeps the durable journal behind the lossy store and
// moves signed bundles between machines. With no key configured,
// bundles are exported unsigned and imported without verification.
type ArchiveService struct {
	clock   clock.Clock
	idGen   id.Generator
	node    string
	key     []byte
	journal archiveout.JournalStore
	bundles archiveout.BundleStore
}

func NewArchiveService(
	clk clock.Clock,
	idGen id.Generator,
	node string,
	key []byte,
	journal archiveout.JournalStore,
	bundles archiveout.BundleStore,
) *ArchiveService {
	return &ArchiveService{clock: clk, idGen: idGen, node: node, key: key, journal: journal, bundles: bundles}
}

func (s *ArchiveService) AppendEntry(ctx context.Context, pool string, event domain.EventRecord) (domain.JournalEntry, error) {
	entry := domain.JournalEntry{
		ID:    s.idGen.New(),
		Node:  s.node,
		At:    clock.Millis(s.clock),
		Pool:  pool,
		Event: event,
	}
	if err := entry.Validate(); err != nil {
		return domain.JournalEntry{}, err
	}
	if err := s.journal.Append(ctx, entry); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("append journal entry: %w", err)
	}
	return entry, nil
}

func (s *ArchiveService) Stats(ctx context.Context, pool string) (domain.Stats, error) {
	entries, err := s.journal.List(ctx, pool)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("list journal: %w", err)
	}
	return domain.Summarize(pool, entries), nil
}

func (s *ArchiveService) Export(ctx context.Context, pool, path string) (domain.Bundle, error) {
	entries, err := s.journal.List(ctx, pool)
	if err != nil {
		return domain.Bundle{}, fmt.Errorf("list journal: %w", err)
	}
	bundle := domain.Bundle{
		SchemaVersion: domain.BundleSchemaVersion,
		Pool:          pool,
		Node:          s.node,
		ExportedAt:    clock.Millis(s.clock),
		Entries:       entries,
	}
	if len(s.key) > 0 {
		bundle = bundle.Signed(s.key)
	}
	if err := s.bundles.Write(ctx, path, bundle); err != nil {
		return domain.Bundle{}, fmt.Errorf("write bundle: %w", err)
	}
	return bundle, nil
}

// Import merges a bundle into the pool's journal, skipping entries
// whose ids are already present. With a key configured the bundle
// must carry a valid signature.
func (s *ArchiveService) Import(ctx context.Context, path string) (pool string, imported, skipped int, err error) {
	bundle, err := s.bundles.Read(ctx, path)
	if err != nil {
		return "", 0, 0, fmt.Errorf("read bundle: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		return "", 0, 0, err
	}
	if len(s.key) > 0 {
		if err := bundle.Verify(s.key); err != nil {
			return "", 0, 0, err
		}
	}
	existing, err := s.journal.List(ctx, bundle.Pool)
	if err != nil {
		return "", 0, 0, fmt.Errorf("list journal: %w", err)
	}
	added, skipped := domain.MergeEntries(existing, bundle.Entries)
	for _, entry := range added {
		if err := s.journal.Append(ctx, entry); err != nil {
			return "", 0, 0, fmt.Errorf("append imported entry: %w", err)
		}
	}
	return bundle.Pool, len(added), skipped, nil
}

// Events returns the journal's events for one pool in event-time
// order, deduplicated by entry id.
func (s *ArchiveService) Events(ctx context.Context, pool string) ([]domain.EventRecord, error) {
	entries, err := s.journal.List(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	seen := map[string]struct{}{}
	events := make([]domain.EventRecord, 0, len(entries))
	for _, entry := range entries {
		key := strings.TrimSpace(entry.ID)
		if key != "" {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		events = append(events, entry.Event)
	}
	sort.SliceStable(events, func(a, b int) bool { return events[a].At < events[b].At })
	return events, nil
}

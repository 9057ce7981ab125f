package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

const BundleSchemaVersion = 1

var (
	ErrBadSignature    = errors.New("bundle signature is invalid")
	ErrUnsignedBundle  = errors.New("bundle is not signed")
	ErrSchemaMismatch  = errors.New("bundle schema version is not supported")
	ErrUnknownPool     = errors.New("bundle names no pool")
	ErrDuplicateEntry  = errors.New("journal entry id already present")
	ErrInvalidEntry    = errors.New("journal entry is invalid")
	ErrInvalidEventRec = errors.New("event record is invalid")
)

// EventRecord is one comparison outcome as the journal keeps it. The
// field names mirror the store's event documents.
type EventRecord struct {
	At    int64   `json:"t"`
	ItemA string  `json:"a"`
	ItemB string  `json:"b"`
	Score float64 `json:"s"`
}

func (e EventRecord) Validate() error {
	if e.At <= 0 {
		return fmt.Errorf("%w: timestamp must be positive", ErrInvalidEventRec)
	}
	if strings.TrimSpace(e.ItemA) == "" || strings.TrimSpace(e.ItemB) == "" {
		return fmt.Errorf("%w: item ids are required", ErrInvalidEventRec)
	}
	if e.ItemA == e.ItemB {
		return fmt.Errorf("%w: items must be distinct", ErrInvalidEventRec)
	}
	if e.Score != 0 && e.Score != 0.5 && e.Score != 1 {
		return fmt.Errorf("%w: unsupported score %v", ErrInvalidEventRec, e.Score)
	}
	return nil
}

// JournalEntry wraps an event with provenance. Unlike the store's
// bounded log the journal never truncates, so a store can always be
// rebuilt from it.
type JournalEntry struct {
	ID    string      `json:"id"`
	Node  string      `json:"node"`
	At    int64       `json:"at"`
	Pool  string      `json:"pool"`
	Event EventRecord `json:"event"`
}

func (e JournalEntry) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidEntry)
	}
	if strings.TrimSpace(e.Pool) == "" {
		return fmt.Errorf("%w: pool is required", ErrInvalidEntry)
	}
	if e.At <= 0 {
		return fmt.Errorf("%w: timestamp must be positive", ErrInvalidEntry)
	}
	return e.Event.Validate()
}

// Bundle is the portable export of one pool's journal. The signature
// covers every field except itself.
type Bundle struct {
	SchemaVersion int            `json:"schema_version"`
	Pool          string         `json:"pool"`
	Node          string         `json:"node"`
	ExportedAt    int64          `json:"exported_at"`
	Entries       []JournalEntry `json:"entries"`
	Signature     string         `json:"signature,omitempty"`
}

func (b Bundle) Validate() error {
	if b.SchemaVersion != BundleSchemaVersion {
		return fmt.Errorf("%w: got %d", ErrSchemaMismatch, b.SchemaVersion)
	}
	if strings.TrimSpace(b.Pool) == "" {
		return ErrUnknownPool
	}
	for i, entry := range b.Entries {
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if entry.Pool != b.Pool {
			return fmt.Errorf("entry %d: pool %s does not match bundle pool %s", i, entry.Pool, b.Pool)
		}
	}
	return nil
}

// Signed returns a copy carrying the HMAC-SHA256 tag of the bundle
// content.
func (b Bundle) Signed(key []byte) Bundle {
	clone := b
	clone.Signature = ""
	payload, _ := json.Marshal(clone)
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write(payload)
	b.Signature = hex.EncodeToString(mac.Sum(nil))
	return b
}

// Verify checks the signature against the given key.
func (b Bundle) Verify(key []byte) error {
	if b.Signature == "" {
		return ErrUnsignedBundle
	}
	expected := b.Signed(key).Signature
	given, err := hex.DecodeString(b.Signature)
	if err != nil {
		return ErrBadSignature
	}
	want, err := hex.DecodeString(expected)
	if err != nil {
		return ErrBadSignature
	}
	if !hmac.Equal(given, want) {
		return ErrBadSignature
	}
	return nil
}

// Stats summarizes one pool's journal.
type Stats struct {
	Pool        string
	EntryCount  int
	Nodes       []string
	FirstAt     int64
	LastAt      int64
	GamesByItem map[string]int
}

// Summarize folds journal entries into their stats. Node names are
// sorted and deduplicated.
func Summarize(pool string, entries []JournalEntry) Stats {
	stats := Stats{Pool: pool, EntryCount: len(entries), GamesByItem: map[string]int{}}
	seen := map[string]struct{}{}
	for _, entry := range entries {
		if stats.FirstAt == 0 || entry.At < stats.FirstAt {
			stats.FirstAt = entry.At
		}
		if entry.At > stats.LastAt {
			stats.LastAt = entry.At
		}
		stats.GamesByItem[entry.Event.ItemA]++
		stats.GamesByItem[entry.Event.ItemB]++
		node := strings.TrimSpace(entry.Node)
		if node == "" {
			continue
		}
		if _, ok := seen[node]; ok {
			continue
		}
		seen[node] = struct{}{}
		stats.Nodes = append(stats.Nodes, node)
	}
	sort.Strings(stats.Nodes)
	return stats
}

// MergeEntries appends the incoming entries whose ids are not already
// present, keeping existing entries untouched. The new entries are
// returned in event-time order.
func MergeEntries(existing, incoming []JournalEntry) (added []JournalEntry, skipped int) {
	present := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		present[entry.ID] = struct{}{}
	}
	for _, entry := range incoming {
		if _, ok := present[entry.ID]; ok {
			skipped++
			continue
		}
		present[entry.ID] = struct{}{}
		added = append(added, entry)
	}
	sort.SliceStable(added, func(a, b int) bool { return added[a].At < added[b].At })
	return added, skipped
}

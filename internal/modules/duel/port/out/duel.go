package out

import (
	"context"

	"mdrank/internal/modules/duel/domain"
)

// DocumentStore is the raw key-value document surface the store
// gateway persists through. Keys are paths relative to the data
// directory.
type DocumentStore interface {
	Exists(ctx context.Context, path string) (bool, error)
	Read(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, data []byte) error
	Remove(ctx context.Context, path string) error
	MkdirAll(ctx context.Context, dir string) error
}

// StoreGateway loads and saves one pool's events and ratings
// documents. Load degrades to the empty default store when documents
// are absent or unparsable; Save writes both documents without
// atomicity across the two.
type StoreGateway interface {
	Load(ctx context.Context, poolID string) (domain.Store, error)
	Save(ctx context.Context, poolID string, store domain.Store) error
	Delete(ctx context.Context, poolID string) error
}

// ContenderProvider supplies the configured pools and the comparable
// items of each.
type ContenderProvider interface {
	Pools(ctx context.Context) ([]string, error)
	Contenders(ctx context.Context, poolID string) ([]domain.Contender, error)
}

// StandingsProjector mirrors rating records into a queryable ranking
// read model.
type StandingsProjector interface {
	Upsert(ctx context.Context, poolID string, row domain.StandingRow) error
	Top(ctx context.Context, poolID string, limit int) ([]domain.StandingRow, error)
	Reset(ctx context.Context, poolID string) error
}

// RivalryRecorder forwards each decisive outcome to the head-to-head
// ledger.
type RivalryRecorder interface {
	RecordOutcome(ctx context.Context, poolID string, event domain.ComparisonEvent) error
}

// Journal appends comparison events to the durable append-only log
// kept outside the lossy store retention.
type Journal interface {
	Append(ctx context.Context, poolID string, event domain.ComparisonEvent) error
}

// NotePublisher rewrites the managed standings block of a pool's
// vault note.
type NotePublisher interface {
	Publish(ctx context.Context, poolID string, rows []domain.StandingRow) (string, error)
}

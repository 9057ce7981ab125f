package out

import (
	"context"

	"mdrank/internal/modules/archive/domain"
)

// JournalStore persists one append-only journal per pool.
type JournalStore interface {
	Append(ctx context.Context, entry domain.JournalEntry) error
	List(ctx context.Context, pool string) ([]domain.JournalEntry, error)
}

// BundleStore moves export bundles in and out of arbitrary files.
type BundleStore interface {
	Write(ctx context.Context, path string, bundle domain.Bundle) error
	Read(ctx context.Context, path string) (domain.Bundle, error)
}

package out

import (
	"context"

	"mdrank/internal/modules/preview/domain"
)

type NoteReader interface {
	Read(ctx context.Context, path string) (string, error)
}

type PDFReader interface {
	ReadPage(ctx context.Context, path string, page int) (domain.Page, int, error)
}

type ItemResolver interface {
	Resolve(ctx context.Context, poolID, itemID string) (domain.ItemRef, error)
}

type ExternalLauncher interface {
	Open(ctx context.Context, target string) error
}

package out

import (
	"context"

	"mdrank/internal/modules/rivals/domain"
)

// RivalryStore keeps the head-to-head ledger. Record takes the pair
// in on-screen order with score expressed for the first item; the
// store canonicalizes the pair itself.
type RivalryStore interface {
	Record(ctx context.Context, poolID, itemA, itemB string, score float64, at int64) error
	Get(ctx context.Context, poolID, itemA, itemB string) (domain.Rivalry, error)
	List(ctx context.Context, poolID string, limit int) ([]domain.Rivalry, error)
	Opponents(ctx context.Context, poolID, itemID string) ([]domain.Rivalry, error)
	BeatPath(ctx context.Context, poolID, fromID, toID string) ([]domain.PathNode, error)
	Reset(ctx context.Context, poolID string) error
}

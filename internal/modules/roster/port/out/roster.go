package out

import (
	"context"

	"mdrank/internal/modules/roster/domain"
)

// ItemSource lists the candidate items of a pool. Files without a
// usable rating property are excluded, not errors.
type ItemSource interface {
	List(ctx context.Context, pool domain.Pool) ([]domain.Item, error)
}

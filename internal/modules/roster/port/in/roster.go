package in

import (
	"context"

	"mdrank/internal/modules/roster/dto"
)

type Usecase interface {
	ListPools(ctx context.Context) ([]dto.PoolOutput, error)
	ListItems(ctx context.Context, poolID string) ([]dto.ItemOutput, error)
	GetItem(ctx context.Context, poolID, itemID string) (dto.ItemOutput, error)
}

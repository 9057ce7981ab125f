package usecase

import (
	"context"

	"mdrank/internal/modules/roster/domain"
	"mdrank/internal/modules/roster/dto"
	rosterin "mdrank/internal/modules/roster/port/in"
	"mdrank/internal/modules/roster/service"
)

type Interactor struct {
	svc *service.RosterService
}

func NewInteractor(svc *service.RosterService) rosterin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListPools(ctx context.Context) ([]dto.PoolOutput, error) {
	pools := i.svc.Pools(ctx)
	out := make([]dto.PoolOutput, 0, len(pools))
	for _, pool := range pools {
		items, err := i.svc.Items(ctx, pool.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.PoolOutput{
			ID:        pool.ID,
			Name:      pool.Name,
			Folder:    pool.Folder,
			Property:  pool.Property,
			ItemCount: len(items),
		})
	}
	return out, nil
}

func (i *Interactor) ListItems(ctx context.Context, poolID string) ([]dto.ItemOutput, error) {
	items, err := i.svc.Items(ctx, poolID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, mapItem(item))
	}
	return out, nil
}

func (i *Interactor) GetItem(ctx context.Context, poolID, itemID string) (dto.ItemOutput, error) {
	item, err := i.svc.Item(ctx, poolID, itemID)
	if err != nil {
		return dto.ItemOutput{}, err
	}
	return mapItem(item), nil
}

func mapItem(item domain.Item) dto.ItemOutput {
	return dto.ItemOutput{
		ID:           item.ID,
		DisplayName:  item.DisplayName,
		Rating:       item.Rating,
		GamesPlayed:  item.GamesPlayed,
		PoolID:       item.PoolID,
		LastCompared: item.LastCompared,
	}
}

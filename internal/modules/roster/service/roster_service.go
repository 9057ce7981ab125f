package service

import (
	"context"
	"fmt"

	"mdrank/internal/modules/roster/domain"
	rosterout "mdrank/internal/modules/roster/port/out"
	apperrors "mdrank/internal/platform/errors"
)

type RosterService struct {
	pools  []domain.Pool
	source rosterout.ItemSource
}

func NewRosterService(pools []domain.Pool, source rosterout.ItemSource) (*RosterService, error) {
	if len(pools) == 0 {
		return nil, fmt.Errorf("at least one pool is required: %w", apperrors.ErrInvalidInput)
	}
	for _, pool := range pools {
		if err := pool.Validate(); err != nil {
			return nil, fmt.Errorf("pool %q: %w", pool.ID, err)
		}
	}
	return &RosterService{pools: pools, source: source}, nil
}

func (s *RosterService) Pools(_ context.Context) []domain.Pool {
	out := make([]domain.Pool, len(s.pools))
	copy(out, s.pools)
	return out
}

func (s *RosterService) PoolByID(_ context.Context, poolID string) (domain.Pool, error) {
	for _, pool := range s.pools {
		if pool.ID == poolID {
			return pool, nil
		}
	}
	return domain.Pool{}, fmt.Errorf("pool %q: %w", poolID, apperrors.ErrNotFound)
}

func (s *RosterService) Items(ctx context.Context, poolID string) ([]domain.Item, error) {
	pool, err := s.PoolByID(ctx, poolID)
	if err != nil {
		return nil, err
	}
	items, err := s.source.List(ctx, pool)
	if err != nil {
		return nil, fmt.Errorf("list items for pool %q: %w", poolID, err)
	}
	return items, nil
}

func (s *RosterService) Item(ctx context.Context, poolID, itemID string) (domain.Item, error) {
	items, err := s.Items(ctx, poolID)
	if err != nil {
		return domain.Item{}, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return domain.Item{}, fmt.Errorf("item %q in pool %q: %w", itemID, poolID, apperrors.ErrNotFound)
}

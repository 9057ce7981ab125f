package out

import (
	"context"

	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
	rosterin "mdrank/internal/modules/roster/port/in"
)

// RosterContenderAdapter sources a session's contenders from the
// roster module's eligible items.
type RosterContenderAdapter struct {
	roster rosterin.Usecase
}

func NewRosterContenderAdapter(roster rosterin.Usecase) duelout.ContenderProvider {
	return &RosterContenderAdapter{roster: roster}
}

func (a *RosterContenderAdapter) Pools(ctx context.Context) ([]string, error) {
	pools, err := a.roster.ListPools(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(pools))
	for i, pool := range pools {
		ids[i] = pool.ID
	}
	return ids, nil
}

func (a *RosterContenderAdapter) Contenders(ctx context.Context, poolID string) ([]domain.Contender, error) {
	items, err := a.roster.ListItems(ctx, poolID)
	if err != nil {
		return nil, err
	}
	contenders := make([]domain.Contender, len(items))
	for i, item := range items {
		contenders[i] = domain.Contender{
			ID:           item.ID,
			DisplayName:  item.DisplayName,
			Rating:       item.Rating,
			GamesPlayed:  item.GamesPlayed,
			PoolID:       item.PoolID,
			LastCompared: item.LastCompared,
		}
	}
	return contenders, nil
}

package out

import (
	"context"
	"path/filepath"

	"mdrank/internal/modules/preview/domain"
	previewout "mdrank/internal/modules/preview/port/out"
	rosterin "mdrank/internal/modules/roster/port/in"
)

// RosterItemAdapter resolves item IDs, which are vault-relative note
// paths, to absolute file paths through the roster.
type RosterItemAdapter struct {
	roster    rosterin.Usecase
	vaultPath string
}

func NewRosterItemAdapter(roster rosterin.Usecase, vaultPath string) previewout.ItemResolver {
	return &RosterItemAdapter{roster: roster, vaultPath: vaultPath}
}

func (a *RosterItemAdapter) Resolve(ctx context.Context, poolID, itemID string) (domain.ItemRef, error) {
	item, err := a.roster.GetItem(ctx, poolID, itemID)
	if err != nil {
		return domain.ItemRef{}, err
	}
	return domain.ItemRef{
		ID:     item.ID,
		Title:  item.DisplayName,
		PoolID: item.PoolID,
		Path:   filepath.Join(a.vaultPath, filepath.FromSlash(item.ID)),
	}, nil
}

package out

import (
	"context"

	"mdrank/internal/modules/duel/domain"
	duelout "mdrank/internal/modules/duel/port/out"
	rivalsdto "mdrank/internal/modules/rivals/dto"
	rivalsin "mdrank/internal/modules/rivals/port/in"
)

// RivalsRecorderAdapter feeds each outcome to the head-to-head
// ledger.
type RivalsRecorderAdapter struct {
	rivals rivalsin.Usecase
}

func NewRivalsRecorderAdapter(rivals rivalsin.Usecase) duelout.RivalryRecorder {
	return &RivalsRecorderAdapter{rivals: rivals}
}

func (a *RivalsRecorderAdapter) RecordOutcome(ctx context.Context, poolID string, event domain.ComparisonEvent) error {
	return a.rivals.RecordOutcome(ctx, rivalsdto.RecordInput{
		PoolID: poolID,
		ItemA:  event.ItemA,
		ItemB:  event.ItemB,
		Score:  float64(event.Score),
		At:     event.At,
	})
}

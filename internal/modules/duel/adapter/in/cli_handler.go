package in

import (
	"context"

	dueldto "mdrank/internal/modules/duel/dto"
	duelin "mdrank/internal/modules/duel/port/in"
)

type CLIHandler struct {
	usecase duelin.Usecase
}

func NewCLIHandler(usecase duelin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Standings(ctx context.Context, poolID string, limit int) ([]dueldto.StandingOutput, error) {
	return h.usecase.Standings(ctx, poolID, limit)
}

func (h CLIHandler) History(ctx context.Context, poolID string) ([]dueldto.HistoryEntryOutput, error) {
	return h.usecase.History(ctx, poolID)
}

func (h CLIHandler) Reset(ctx context.Context, poolID string, confirm bool) (dueldto.SessionOutput, error) {
	return h.usecase.ResetPool(ctx, dueldto.ResetInput{PoolID: poolID, Confirm: confirm})
}

func (h CLIHandler) PublishStandings(ctx context.Context, poolID string) (dueldto.PublishOutput, error) {
	return h.usecase.PublishStandings(ctx, poolID)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) ListEvents(ctx context.Context, poolID string) ([]dueldto.EventOutput, error) {
	return h.usecase.ListEvents(ctx, poolID)
}

func (h CLIHandler) RestoreStore(ctx context.Context, poolID string, events []dueldto.EventOutput, confirm bool) (dueldto.SessionOutput, error) {
	return h.usecase.RestoreStore(ctx, dueldto.RestoreStoreInput{PoolID: poolID, Events: events, Confirm: confirm})
}

func (h CLIHandler) DeletePoolStore(ctx context.Context, poolID string, confirm bool) error {
	return h.usecase.DeletePoolStore(ctx, dueldto.DeletePoolStoreInput{PoolID: poolID, Confirm: confirm})
}

package in

import (
	"context"

	"mdrank/internal/modules/rivals/dto"
	rivalsin "mdrank/internal/modules/rivals/port/in"
)

type CLIHandler struct {
	usecase rivalsin.Usecase
}

func NewCLIHandler(usecase rivalsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Rivalry(ctx context.Context, poolID, itemA, itemB string) (dto.RivalryOutput, error) {
	return h.usecase.Rivalry(ctx, poolID, itemA, itemB)
}

func (h CLIHandler) TopRivalries(ctx context.Context, poolID string, limit int) ([]dto.RivalryOutput, error) {
	return h.usecase.TopRivalries(ctx, poolID, limit)
}

func (h CLIHandler) Opponents(ctx context.Context, poolID, itemID string) ([]dto.RivalryOutput, error) {
	return h.usecase.Opponents(ctx, poolID, itemID)
}

func (h CLIHandler) BeatPath(ctx context.Context, poolID, fromID, toID string) (dto.BeatPathOutput, error) {
	return h.usecase.BeatPath(ctx, poolID, fromID, toID)
}

func (h CLIHandler) Rebuild(ctx context.Context, input dto.RebuildInput) error {
	return h.usecase.Rebuild(ctx, input)
}

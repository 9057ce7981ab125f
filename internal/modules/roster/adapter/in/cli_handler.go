package in

import (
	"context"

	"mdrank/internal/modules/roster/dto"
	rosterin "mdrank/internal/modules/roster/port/in"
)

type CLIHandler struct {
	usecase rosterin.Usecase
}

func NewCLIHandler(usecase rosterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListPools(ctx context.Context) ([]dto.PoolOutput, error) {
	return h.usecase.ListPools(ctx)
}

func (h CLIHandler) ListItems(ctx context.Context, poolID string) ([]dto.ItemOutput, error) {
	return h.usecase.ListItems(ctx, poolID)
}

package in

import (
	"context"

	"mdrank/internal/modules/archive/dto"
	archivein "mdrank/internal/modules/archive/port/in"
)

type CLIHandler struct {
	usecase archivein.Usecase
}

func NewCLIHandler(usecase archivein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stats(ctx context.Context, pool string) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx, pool)
}

func (h CLIHandler) Export(ctx context.Context, pool, path string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Pool: pool, Path: path})
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportOutput, error) {
	return h.usecase.Import(ctx, dto.ImportInput{Path: path})
}

func (h CLIHandler) Events(ctx context.Context, pool string) ([]dto.EventOutput, error) {
	return h.usecase.Events(ctx, pool)
}

package in

import (
	"context"

	"mdrank/internal/modules/archive/dto"
)

type Usecase interface {
	AppendEntry(ctx context.Context, input dto.AppendInput) (dto.EntryOutput, error)
	Stats(ctx context.Context, pool string) (dto.StatsOutput, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
	Import(ctx context.Context, input dto.ImportInput) (dto.ImportOutput, error)
	Events(ctx context.Context, pool string) ([]dto.EventOutput, error)
}

package in

import (
	"context"

	"mdrank/internal/modules/exporter/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ExporterInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	ListFormats(ctx context.Context, exporterName string) ([]dto.FormatInfo, error)
	Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error)
}

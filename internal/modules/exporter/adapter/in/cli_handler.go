package in

import (
	"context"

	"mdrank/internal/modules/exporter/dto"
	exporterin "mdrank/internal/modules/exporter/port/in"
)

type CLIHandler struct {
	usecase exporterin.Usecase
}

func NewCLIHandler(usecase exporterin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ExporterInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) ListFormats(ctx context.Context, exporterName string) ([]dto.FormatInfo, error) {
	return h.usecase.ListFormats(ctx, exporterName)
}

func (h CLIHandler) Render(ctx context.Context, input dto.RenderInput) (dto.RenderOutput, error) {
	return h.usecase.Render(ctx, input)
}

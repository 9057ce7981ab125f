package in

import (
	"context"

	"mdrank/internal/modules/preview/dto"
	previewin "mdrank/internal/modules/preview/port/in"
)

type CLIHandler struct {
	usecase previewin.Usecase
}

func NewCLIHandler(usecase previewin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Load(ctx context.Context, input dto.LoadInput) (dto.DocumentOutput, error) {
	return h.usecase.Load(ctx, input)
}

func (h CLIHandler) OpenExternal(ctx context.Context, input dto.OpenExternalInput) (dto.OpenExternalOutput, error) {
	return h.usecase.OpenExternal(ctx, input)
}

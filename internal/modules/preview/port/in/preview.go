package in

import (
	"context"

	"mdrank/internal/modules/preview/dto"
)

type Usecase interface {
	Load(ctx context.Context, input dto.LoadInput) (dto.DocumentOutput, error)
	OpenExternal(ctx context.Context, input dto.OpenExternalInput) (dto.OpenExternalOutput, error)
}

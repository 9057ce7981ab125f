package in

import (
	"context"

	"mdrank/internal/modules/preview/dto"
	previewin "mdrank/internal/modules/preview/port/in"
)

type TUIHandler struct {
	usecase previewin.Usecase
}

func NewTUIHandler(usecase previewin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Load(ctx context.Context, poolID, itemID string, page int) (dto.DocumentOutput, error) {
	return h.usecase.Load(ctx, dto.LoadInput{PoolID: poolID, ItemID: itemID, Page: page})
}

func (h TUIHandler) OpenExternal(ctx context.Context, poolID, itemID string) (dto.OpenExternalOutput, error) {
	return h.usecase.OpenExternal(ctx, dto.OpenExternalInput{PoolID: poolID, ItemID: itemID})
}

package usecase

import (
	"context"

	"mdrank/internal/modules/preview/dto"
	previewin "mdrank/internal/modules/preview/port/in"
	"mdrank/internal/modules/preview/service"
)

type Interactor struct {
	svc *service.PreviewService
}

func NewInteractor(svc *service.PreviewService) previewin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context, input dto.LoadInput) (dto.DocumentOutput, error) {
	doc, err := i.svc.Load(ctx, input.PoolID, input.ItemID, input.Mode, input.Page)
	if err != nil {
		return dto.DocumentOutput{}, err
	}
	return dto.DocumentOutput{
		ItemID:     doc.ItemID,
		Title:      doc.Title,
		Kind:       string(doc.Kind),
		Page:       doc.Page,
		TotalPages: doc.TotalPages,
		Content:    doc.Body,
		Path:       doc.Path,
	}, nil
}

func (i *Interactor) OpenExternal(ctx context.Context, input dto.OpenExternalInput) (dto.OpenExternalOutput, error) {
	target, err := i.svc.OpenExternal(ctx, input.PoolID, input.ItemID)
	if err != nil {
		return dto.OpenExternalOutput{}, err
	}
	return dto.OpenExternalOutput{ItemID: input.ItemID, Target: target}, nil
}

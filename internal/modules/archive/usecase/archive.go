package usecase

import (
	"context"
	"fmt"

	"mdrank/internal/modules/archive/domain"
	archivedto "mdrank/internal/modules/archive/dto"
	archivein "mdrank/internal/modules/archive/port/in"
	"mdrank/internal/modules/archive/service"
	apperrors "mdrank/internal/platform/errors"
)

type Interactor struct {
	svc *service.ArchiveService
}

func NewInteractor(svc *service.ArchiveService) archivein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AppendEntry(ctx context.Context, input archivedto.AppendInput) (archivedto.EntryOutput, error) {
	if input.Pool == "" {
		return archivedto.EntryOutput{}, fmt.Errorf("%w: pool is required", apperrors.ErrInvalidInput)
	}
	entry, err := i.svc.AppendEntry(ctx, input.Pool, domain.EventRecord{
		At:    input.Event.At,
		ItemA: input.Event.ItemA,
		ItemB: input.Event.ItemB,
		Score: input.Event.Score,
	})
	if err != nil {
		return archivedto.EntryOutput{}, err
	}
	return archivedto.EntryOutput{ID: entry.ID, Node: entry.Node, At: entry.At, Pool: entry.Pool}, nil
}

func (i *Interactor) Stats(ctx context.Context, pool string) (archivedto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx, pool)
	if err != nil {
		return archivedto.StatsOutput{}, err
	}
	return archivedto.StatsOutput{
		Pool:       stats.Pool,
		EntryCount: stats.EntryCount,
		Nodes:      stats.Nodes,
		FirstAt:    stats.FirstAt,
		LastAt:     stats.LastAt,
		Games:      stats.GamesByItem,
	}, nil
}

func (i *Interactor) Export(ctx context.Context, input archivedto.ExportInput) (archivedto.ExportOutput, error) {
	if input.Pool == "" || input.Path == "" {
		return archivedto.ExportOutput{}, fmt.Errorf("%w: pool and path are required", apperrors.ErrInvalidInput)
	}
	bundle, err := i.svc.Export(ctx, input.Pool, input.Path)
	if err != nil {
		return archivedto.ExportOutput{}, err
	}
	return archivedto.ExportOutput{
		Pool:       bundle.Pool,
		Path:       input.Path,
		EntryCount: len(bundle.Entries),
		Signed:     bundle.Signature != "",
	}, nil
}

func (i *Interactor) Import(ctx context.Context, input archivedto.ImportInput) (archivedto.ImportOutput, error) {
	if input.Path == "" {
		return archivedto.ImportOutput{}, fmt.Errorf("%w: path is required", apperrors.ErrInvalidInput)
	}
	pool, imported, skipped, err := i.svc.Import(ctx, input.Path)
	if err != nil {
		return archivedto.ImportOutput{}, err
	}
	return archivedto.ImportOutput{Pool: pool, Imported: imported, Skipped: skipped}, nil
}

func (i *Interactor) Events(ctx context.Context, pool string) ([]archivedto.EventOutput, error) {
	events, err := i.svc.Events(ctx, pool)
	if err != nil {
		return nil, err
	}
	out := make([]archivedto.EventOutput, len(events))
	for idx, event := range events {
		out[idx] = archivedto.EventOutput{At: event.At, ItemA: event.ItemA, ItemB: event.ItemB, Score: event.Score}
	}
	return out, nil
}

package usecase

import (
	"context"

	"mdrank/internal/modules/rivals/domain"
	rivalsdto "mdrank/internal/modules/rivals/dto"
	rivalsin "mdrank/internal/modules/rivals/port/in"
	"mdrank/internal/modules/rivals/service"
)

type Interactor struct {
	svc *service.RivalsService
}

func NewInteractor(svc *service.RivalsService) rivalsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) RecordOutcome(ctx context.Context, input rivalsdto.RecordInput) error {
	return i.svc.RecordOutcome(ctx, input.PoolID, input.ItemA, input.ItemB, input.Score, input.At)
}

func (i *Interactor) Rivalry(ctx context.Context, poolID, itemA, itemB string) (rivalsdto.RivalryOutput, error) {
	rivalry, err := i.svc.Rivalry(ctx, poolID, itemA, itemB)
	if err != nil {
		return rivalsdto.RivalryOutput{}, err
	}
	return mapRivalry(rivalry), nil
}

func (i *Interactor) TopRivalries(ctx context.Context, poolID string, limit int) ([]rivalsdto.RivalryOutput, error) {
	rivalries, err := i.svc.TopRivalries(ctx, poolID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]rivalsdto.RivalryOutput, len(rivalries))
	for idx, rivalry := range rivalries {
		out[idx] = mapRivalry(rivalry)
	}
	return out, nil
}

func (i *Interactor) Opponents(ctx context.Context, poolID, itemID string) ([]rivalsdto.RivalryOutput, error) {
	rivalries, err := i.svc.Opponents(ctx, poolID, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]rivalsdto.RivalryOutput, len(rivalries))
	for idx, rivalry := range rivalries {
		out[idx] = mapRivalry(rivalry)
	}
	return out, nil
}

func (i *Interactor) BeatPath(ctx context.Context, poolID, fromID, toID string) (rivalsdto.BeatPathOutput, error) {
	nodes, err := i.svc.BeatPath(ctx, poolID, fromID, toID)
	if err != nil {
		return rivalsdto.BeatPathOutput{}, err
	}
	out := rivalsdto.BeatPathOutput{
		PoolID: poolID,
		FromID: fromID,
		ToID:   toID,
		Found:  len(nodes) > 0,
		Nodes:  make([]rivalsdto.PathNodeOutput, len(nodes)),
	}
	for idx, node := range nodes {
		out.Nodes[idx] = rivalsdto.PathNodeOutput{ItemID: node.ItemID, Label: node.Label}
	}
	return out, nil
}

func (i *Interactor) Rebuild(ctx context.Context, input rivalsdto.RebuildInput) error {
	results := make([]service.Result, len(input.Events))
	for idx, event := range input.Events {
		results[idx] = service.Result{ItemA: event.ItemA, ItemB: event.ItemB, Score: event.Score, At: event.At}
	}
	return i.svc.Rebuild(ctx, input.PoolID, results)
}

func mapRivalry(rivalry domain.Rivalry) rivalsdto.RivalryOutput {
	return rivalsdto.RivalryOutput{
		PoolID: rivalry.PoolID,
		ItemA:  rivalry.ItemA,
		ItemB:  rivalry.ItemB,
		LabelA: rivalry.LabelA,
		LabelB: rivalry.LabelB,
		WinsA:  rivalry.WinsA,
		WinsB:  rivalry.WinsB,
		Draws:  rivalry.Draws,
		Total:  rivalry.Total(),
		LastAt: rivalry.LastAt,
	}
}

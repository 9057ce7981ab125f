package in

import (
	"context"

	"mdrank/internal/modules/rivals/dto"
)

type Usecase interface {
	RecordOutcome(ctx context.Context, input dto.RecordInput) error
	Rivalry(ctx context.Context, poolID, itemA, itemB string) (dto.RivalryOutput, error)
	TopRivalries(ctx context.Context, poolID string, limit int) ([]dto.RivalryOutput, error)
	Opponents(ctx context.Context, poolID, itemID string) ([]dto.RivalryOutput, error)
	BeatPath(ctx context.Context, poolID, fromID, toID string) (dto.BeatPathOutput, error)
	Rebuild(ctx context.Context, input dto.RebuildInput) error
}

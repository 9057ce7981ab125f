package in

import (
	"context"

	"mdrank/internal/modules/duel/dto"
)

type Usecase interface {
	StartSession(ctx context.Context, poolID string) (dto.SessionOutput, error)
	NextPair(ctx context.Context, poolID string) (dto.SessionOutput, error)
	RecordOutcome(ctx context.Context, input dto.RecordOutcomeInput) (dto.SessionOutput, error)
	Skip(ctx context.Context, poolID string) (dto.SessionOutput, error)
	RemoveItem(ctx context.Context, poolID string, index int) (dto.SessionOutput, error)
	ResetPool(ctx context.Context, input dto.ResetInput) (dto.SessionOutput, error)
	History(ctx context.Context, poolID string) ([]dto.HistoryEntryOutput, error)
	Standings(ctx context.Context, poolID string, limit int) ([]dto.StandingOutput, error)
	PublishStandings(ctx context.Context, poolID string) (dto.PublishOutput, error)
	Reindex(ctx context.Context) error
	ListEvents(ctx context.Context, poolID string) ([]dto.EventOutput, error)
	RestoreStore(ctx context.Context, input dto.RestoreStoreInput) (dto.SessionOutput, error)
	DeletePoolStore(ctx context.Context, input dto.DeletePoolStoreInput) error
}

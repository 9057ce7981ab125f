package usecase

import (
	"context"
	"errors"
	"fmt"

	"mdrank/internal/modules/duel/domain"
	dueldto "mdrank/internal/modules/duel/dto"
	duelin "mdrank/internal/modules/duel/port/in"
	"mdrank/internal/modules/duel/service"
	apperrors "mdrank/internal/platform/errors"
)

type Interactor struct {
	svc *service.DuelService
}

func NewInteractor(svc *service.DuelService) duelin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) StartSession(ctx context.Context, poolID string) (dueldto.SessionOutput, error) {
	if poolID == "" {
		return dueldto.SessionOutput{}, fmt.Errorf("%w: pool id is required", apperrors.ErrInvalidInput)
	}
	session, err := i.svc.StartSession(ctx, poolID)
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) NextPair(ctx context.Context, poolID string) (dueldto.SessionOutput, error) {
	session, err := i.svc.NextPair(ctx, poolID)
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) RecordOutcome(ctx context.Context, input dueldto.RecordOutcomeInput) (dueldto.SessionOutput, error) {
	score, err := scoreOf(input.Outcome)
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	session, err := i.svc.RecordOutcome(ctx, input.PoolID, score)
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) Skip(ctx context.Context, poolID string) (dueldto.SessionOutput, error) {
	return i.NextPair(ctx, poolID)
}

func (i *Interactor) RemoveItem(ctx context.Context, poolID string, index int) (dueldto.SessionOutput, error) {
	session, err := i.svc.RemoveItem(ctx, poolID, index)
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

func (i *Interactor) ResetPool(ctx context.Context, input dueldto.ResetInput) (dueldto.SessionOutput, error) {
	if !input.Confirm {
		return dueldto.SessionOutput{}, apperrors.ErrConfirmationRequired
	}
	session, err := i.svc.ResetPool(ctx, input.PoolID)
	if errors.Is(err, apperrors.ErrNotFound) {
		if _, startErr := i.svc.StartSession(ctx, input.PoolID); startErr != nil {
			return dueldto.SessionOutput{}, startErr
		}
		session, err = i.svc.ResetPool(ctx, input.PoolID)
	}
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	return mapSession(session), nil
}

// History returns the replayed comparison log most recent first.
func (i *Interactor) History(ctx context.Context, poolID string) ([]dueldto.HistoryEntryOutput, error) {
	entries, err := i.svc.History(ctx, poolID)
	if err != nil {
		return nil, err
	}
	out := make([]dueldto.HistoryEntryOutput, len(entries))
	for idx, entry := range entries {
		out[len(entries)-1-idx] = mapHistoryEntry(entry)
	}
	return out, nil
}

func (i *Interactor) Standings(ctx context.Context, poolID string, limit int) ([]dueldto.StandingOutput, error) {
	rows, err := i.svc.Standings(ctx, poolID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dueldto.StandingOutput, len(rows))
	for idx, row := range rows {
		out[idx] = dueldto.StandingOutput{
			Rank:        row.Rank,
			ItemID:      row.ItemID,
			DisplayName: row.DisplayName,
			Rating:      row.Rating,
			Games:       row.Games,
			Last:        row.Last,
		}
	}
	return out, nil
}

func (i *Interactor) PublishStandings(ctx context.Context, poolID string) (dueldto.PublishOutput, error) {
	path, count, err := i.svc.PublishStandings(ctx, poolID)
	if err != nil {
		return dueldto.PublishOutput{}, err
	}
	return dueldto.PublishOutput{PoolID: poolID, NotePath: path, RowCount: count}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) ListEvents(ctx context.Context, poolID string) ([]dueldto.EventOutput, error) {
	events, err := i.svc.Events(ctx, poolID)
	if err != nil {
		return nil, err
	}
	out := make([]dueldto.EventOutput, len(events))
	for idx, event := range events {
		out[idx] = dueldto.EventOutput{
			At:    event.At,
			ItemA: event.ItemA,
			ItemB: event.ItemB,
			Score: float64(event.Score),
		}
	}
	return out, nil
}

func (i *Interactor) RestoreStore(ctx context.Context, input dueldto.RestoreStoreInput) (dueldto.SessionOutput, error) {
	if !input.Confirm {
		return dueldto.SessionOutput{}, apperrors.ErrConfirmationRequired
	}
	events := make([]domain.ComparisonEvent, len(input.Events))
	for idx, event := range input.Events {
		events[idx] = domain.ComparisonEvent{
			At:    event.At,
			ItemA: event.ItemA,
			ItemB: event.ItemB,
			Score: domain.Score(event.Score),
		}
	}
	store, err := i.svc.RestoreStore(ctx, input.PoolID, events)
	if err != nil {
		return dueldto.SessionOutput{}, err
	}
	return dueldto.SessionOutput{PoolID: input.PoolID, EventCount: len(store.Events)}, nil
}

func (i *Interactor) DeletePoolStore(ctx context.Context, input dueldto.DeletePoolStoreInput) error {
	if !input.Confirm {
		return apperrors.ErrConfirmationRequired
	}
	return i.svc.DeletePoolStore(ctx, input.PoolID)
}

func scoreOf(outcome dueldto.Outcome) (domain.Score, error) {
	switch outcome {
	case dueldto.OutcomeFirst:
		return domain.ScoreWinA, nil
	case dueldto.OutcomeSecond:
		return domain.ScoreWinB, nil
	case dueldto.OutcomeDraw:
		return domain.ScoreDraw, nil
	default:
		return 0, fmt.Errorf("%w: unsupported outcome %q", apperrors.ErrInvalidInput, string(outcome))
	}
}

func mapSession(session domain.Session) dueldto.SessionOutput {
	out := dueldto.SessionOutput{
		PoolID:     session.PoolID,
		State:      string(session.State),
		Contenders: make([]dueldto.ContenderOutput, len(session.Contenders)),
		History:    make([]dueldto.HistoryEntryOutput, len(session.History)),
		EventCount: len(session.Store.Events),
	}
	for idx, c := range session.Contenders {
		out.Contenders[idx] = mapContender(c)
	}
	for idx, entry := range session.History {
		out.History[idx] = mapHistoryEntry(entry)
	}
	out.Pair.Degenerate = session.Pair.Degenerate()
	if !out.Pair.Degenerate && session.Pair.B < len(session.Contenders) {
		out.Pair.First = mapContender(session.Contenders[session.Pair.A])
		out.Pair.Second = mapContender(session.Contenders[session.Pair.B])
	}
	return out
}

func mapContender(c domain.Contender) dueldto.ContenderOutput {
	return dueldto.ContenderOutput{
		ID:           c.ID,
		DisplayName:  c.DisplayName,
		Rating:       c.Rating,
		GamesPlayed:  c.GamesPlayed,
		PoolID:       c.PoolID,
		LastCompared: c.LastCompared,
	}
}

func mapHistoryEntry(entry domain.HistoryEntry) dueldto.HistoryEntryOutput {
	return dueldto.HistoryEntryOutput{
		At:           entry.At,
		WinnerID:     entry.WinnerID,
		WinnerName:   entry.WinnerName,
		LoserID:      entry.LoserID,
		LoserName:    entry.LoserName,
		WinnerBefore: entry.WinnerBefore,
		WinnerAfter:  entry.WinnerAfter,
		LoserBefore:  entry.LoserBefore,
		LoserAfter:   entry.LoserAfter,
	}
}

package service

import (
	"context"
	"fmt"
	"strings"

	"mdrank/internal/modules/rivals/domain"
	rivalsout "mdrank/internal/modules/rivals/port/out"
)

// RivalsService maintains the head-to-head ledger fed by recorded
// comparisons.
type RivalsService struct {
	store rivalsout.RivalryStore
}

func NewRivalsService(store rivalsout.RivalryStore) *RivalsService {
	return &RivalsService{store: store}
}

func (s *RivalsService) RecordOutcome(ctx context.Context, poolID, itemA, itemB string, score float64, at int64) error {
	if err := validateResult(poolID, itemA, itemB, score); err != nil {
		return err
	}
	return s.store.Record(ctx, poolID, itemA, itemB, score, at)
}

func (s *RivalsService) Rivalry(ctx context.Context, poolID, itemA, itemB string) (domain.Rivalry, error) {
	if strings.TrimSpace(itemA) == "" || strings.TrimSpace(itemB) == "" {
		return domain.Rivalry{}, fmt.Errorf("both item ids are required")
	}
	return s.store.Get(ctx, poolID, itemA, itemB)
}

func (s *RivalsService) TopRivalries(ctx context.Context, poolID string, limit int) ([]domain.Rivalry, error) {
	return s.store.List(ctx, poolID, limit)
}

func (s *RivalsService) Opponents(ctx context.Context, poolID, itemID string) ([]domain.Rivalry, error) {
	if strings.TrimSpace(itemID) == "" {
		return nil, fmt.Errorf("item id is required")
	}
	return s.store.Opponents(ctx, poolID, itemID)
}

func (s *RivalsService) BeatPath(ctx context.Context, poolID, fromID, toID string) ([]domain.PathNode, error) {
	return s.store.BeatPath(ctx, poolID, fromID, toID)
}

// Rebuild replaces the pool's ledger with one re-derived from the
// given results.
func (s *RivalsService) Rebuild(ctx context.Context, poolID string, results []Result) error {
	if err := s.store.Reset(ctx, poolID); err != nil {
		return fmt.Errorf("reset rivalries: %w", err)
	}
	for _, r := range results {
		if err := validateResult(poolID, r.ItemA, r.ItemB, r.Score); err != nil {
			return err
		}
		if err := s.store.Record(ctx, poolID, r.ItemA, r.ItemB, r.Score, r.At); err != nil {
			return err
		}
	}
	return nil
}

// Result is one comparison outcome as the ledger consumes it.
type Result struct {
	ItemA string
	ItemB string
	Score float64
	At    int64
}

func validateResult(poolID, itemA, itemB string, score float64) error {
	if strings.TrimSpace(poolID) == "" {
		return fmt.Errorf("pool id is required")
	}
	if strings.TrimSpace(itemA) == "" || strings.TrimSpace(itemB) == "" {
		return fmt.Errorf("both item ids are required")
	}
	if itemA == itemB {
		return fmt.Errorf("items must be distinct")
	}
	if score != 0 && score != 0.5 && score != 1 {
		return fmt.Errorf("unsupported score %v", score)
	}
	return nil
}

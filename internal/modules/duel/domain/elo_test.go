package domain_test

import (
	"testing"

	"mdrank/internal/modules/duel/domain"
)

func TestExpectedScoreEqualRatings(t *testing.T) {
	t.Parallel()
	if got := domain.ExpectedScore(1000, 1000); got != 0.5 {
		t.Fatalf("expected 0.5 for equal ratings, got %v", got)
	}
}

func TestUpdateRatingsFreshWin(t *testing.T) {
	t.Parallel()
	newA, newB := domain.UpdateRatings(1000, 1000, domain.ScoreWinA)
	if newA != 1016 || newB != 984 {
		t.Fatalf("expected 1016/984, got %v/%v", newA, newB)
	}
}

func TestUpdateRatingsEqualDrawIsNoop(t *testing.T) {
	t.Parallel()
	newA, newB := domain.UpdateRatings(1200, 1200, domain.ScoreDraw)
	if newA != 1200 || newB != 1200 {
		t.Fatalf("equal-rating draw must not move ratings, got %v/%v", newA, newB)
	}
}

func TestUpdateRatingsZeroSum(t *testing.T) {
	t.Parallel()
	cases := []struct {
		rA, rB float64
		score  domain.Score
	}{
		{1000, 1000, domain.ScoreWinA},
		{1350, 900, domain.ScoreWinB},
		{800, 1600, domain.ScoreWinA},
		{1100, 1084, domain.ScoreDraw},
		{-50, 200, domain.ScoreWinB},
	}
	for _, tc := range cases {
		newA, newB := domain.UpdateRatings(tc.rA, tc.rB, tc.score)
		deltaA := newA - tc.rA
		deltaB := newB - tc.rB
		if deltaA != -deltaB {
			t.Fatalf("deltas must cancel for %v/%v score %v: %v vs %v", tc.rA, tc.rB, tc.score, deltaA, deltaB)
		}
	}
}

func TestUpdateRatingsUnderdogWinMovesMore(t *testing.T) {
	t.Parallel()
	underdogNew, _ := domain.UpdateRatings(900, 1300, domain.ScoreWinA)
	favoriteNew, _ := domain.UpdateRatings(1300, 900, domain.ScoreWinA)
	underdogGain := underdogNew - 900
	favoriteGain := favoriteNew - 1300
	if underdogGain <= favoriteGain {
		t.Fatalf("upset must pay more than expected win: %v vs %v", underdogGain, favoriteGain)
	}
}

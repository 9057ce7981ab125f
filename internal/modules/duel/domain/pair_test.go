package domain_test

import (
	"math/rand"
	"testing"

	"mdrank/internal/modules/duel/domain"
)

func contendersWithGames(games ...int) []domain.Contender {
	out := make([]domain.Contender, len(games))
	for i, g := range games {
		out[i] = domain.Contender{ID: string(rune('a' + i)), GamesPlayed: g}
	}
	return out
}

func TestSelectPairDegenerateBelowTwo(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(1))
	if p := domain.SelectPair(nil, rng); !p.Degenerate() {
		t.Fatalf("empty list must yield degenerate pair, got %+v", p)
	}
	if p := domain.SelectPair(contendersWithGames(3), rng); !p.Degenerate() {
		t.Fatalf("single contender must yield degenerate pair, got %+v", p)
	}
}

func TestSelectPairIndicesDistinct(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	contenders := contendersWithGames(0, 5, 2, 2, 9, 0)
	for i := 0; i < 500; i++ {
		p := domain.SelectPair(contenders, rng)
		if p.A == p.B {
			t.Fatalf("iteration %d produced identical indices %d", i, p.A)
		}
		if p.A < 0 || p.A >= len(contenders) || p.B < 0 || p.B >= len(contenders) {
			t.Fatalf("iteration %d produced out-of-range pair %+v", i, p)
		}
	}
}

func TestSelectPairFirstFromMinGamesSet(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(7))
	contenders := contendersWithGames(4, 1, 6, 1, 3)
	for i := 0; i < 500; i++ {
		p := domain.SelectPair(contenders, rng)
		if contenders[p.A].GamesPlayed != 1 {
			t.Fatalf("iteration %d: first pick index %d has %d games, want the min set",
				i, p.A, contenders[p.A].GamesPlayed)
		}
	}
}

func TestSelectPairSecondFromLowerHalf(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(11))
	// One starved item, the rest strictly ordered by games. The second
	// pick is confined to the lower half (ceiling) of the remainder.
	contenders := contendersWithGames(0, 1, 2, 3, 4)
	for i := 0; i < 500; i++ {
		p := domain.SelectPair(contenders, rng)
		if p.A != 0 {
			t.Fatalf("iteration %d: expected sole min-games item first, got %d", i, p.A)
		}
		if contenders[p.B].GamesPlayed > 2 {
			t.Fatalf("iteration %d: second pick %d outside lower half", i, p.B)
		}
	}
}

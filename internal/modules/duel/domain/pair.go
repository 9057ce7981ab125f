package domain

import (
	"math/rand"
	"sort"
)

// Pair holds the indices of the two contenders currently on screen.
// Degenerate pairs are (0,0) when fewer than two contenders exist.
type Pair struct {
	A int
	B int
}

func (p Pair) Degenerate() bool { return p.A == p.B }

// SelectPair picks the next comparison. The first pick is uniform over
// the contenders with the minimum games played; the second is uniform
// over the lower half (ceiling) of the rest sorted by games ascending.
// The bias favors currently starved items without becoming a fixed
// cycle; it is not a global fairness guarantee.
func SelectPair(contenders []Contender, rng *rand.Rand) Pair {
	n := len(contenders)
	if n < 2 {
		return Pair{}
	}

	minGames := contenders[0].GamesPlayed
	for _, c := range contenders[1:] {
		if c.GamesPlayed < minGames {
			minGames = c.GamesPlayed
		}
	}
	minSet := make([]int, 0, n)
	for i, c := range contenders {
		if c.GamesPlayed == minGames {
			minSet = append(minSet, i)
		}
	}
	if len(minSet) == 0 {
		return randomDistinctPair(n, rng)
	}
	first := minSet[rng.Intn(len(minSet))]

	remaining := make([]int, 0, n-1)
	for i := range contenders {
		if i != first {
			remaining = append(remaining, i)
		}
	}
	sort.SliceStable(remaining, func(a, b int) bool {
		return contenders[remaining[a]].GamesPlayed < contenders[remaining[b]].GamesPlayed
	})
	half := (len(remaining) + 1) / 2
	second := remaining[rng.Intn(half)]
	return Pair{A: first, B: second}
}

func randomDistinctPair(n int, rng *rand.Rand) Pair {
	first := rng.Intn(n)
	second := rng.Intn(n - 1)
	if second >= first {
		second++
	}
	return Pair{A: first, B: second}
}

package domain

import "sort"

// Markers delimiting the standings block a publish rewrites inside a
// vault note. Text outside the block is never touched.
const (
	ManagedStandingsStart = "<!-- mdrank:standings:start -->"
	ManagedStandingsEnd   = "<!-- mdrank:standings:end -->"
)

// StandingRow is one line of a pool's ranking table.
type StandingRow struct {
	Rank        int
	ItemID      string
	DisplayName string
	Rating      float64
	Games       int
	Last        string
}

// AssignRanks orders rows by rating descending, display name as the
// tiebreak, and numbers them with competition ranking: equal ratings
// share a rank and the following rank skips accordingly.
func AssignRanks(rows []StandingRow) []StandingRow {
	ranked := make([]StandingRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Rating != ranked[b].Rating {
			return ranked[a].Rating > ranked[b].Rating
		}
		return ranked[a].DisplayName < ranked[b].DisplayName
	})
	for i := range ranked {
		if i > 0 && ranked[i].Rating == ranked[i-1].Rating {
			ranked[i].Rank = ranked[i-1].Rank
			continue
		}
		ranked[i].Rank = i + 1
	}
	return ranked
}

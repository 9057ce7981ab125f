package domain

// HistoryEntry is one decisive comparison as shown to the user, with
// the working ratings on both sides of the update.
type HistoryEntry struct {
	At           int64
	WinnerID     string
	WinnerName   string
	LoserID      string
	LoserName    string
	WinnerBefore float64
	WinnerAfter  float64
	LoserBefore  float64
	LoserAfter   float64
}

type workingState struct {
	rating float64
	games  int
}

// ReconstructHistory replays the store's events in log order against
// the current contender list. Working ratings are seeded from the
// materialized records, falling back to DefaultRating for unknown ids.
// Draws advance the working state but produce no entry. Events naming
// an id absent from contenders are skipped entirely and advance
// nothing, so the result is scoped to the loaded pool. Output is
// chronological; reversal is the caller's presentation concern.
func ReconstructHistory(contenders []Contender, store Store) []HistoryEntry {
	names := make(map[string]string, len(contenders))
	working := make(map[string]*workingState, len(contenders))
	for _, c := range contenders {
		names[c.ID] = c.DisplayName
		state := workingState{rating: DefaultRating}
		if rec, ok := store.Ratings[c.ID]; ok {
			state = workingState{rating: rec.Rating, games: rec.Games}
		}
		w := state
		working[c.ID] = &w
	}

	entries := make([]HistoryEntry, 0, len(store.Events))
	for _, event := range store.Events {
		wA, okA := working[event.ItemA]
		wB, okB := working[event.ItemB]
		if !okA || !okB {
			continue
		}
		oldA, oldB := wA.rating, wB.rating
		newA, newB := UpdateRatings(oldA, oldB, event.Score)
		wA.rating, wB.rating = newA, newB
		wA.games++
		wB.games++
		if event.Score == ScoreDraw {
			continue
		}

		entry := HistoryEntry{At: event.At}
		if event.Score == ScoreWinA {
			entry.WinnerID, entry.WinnerName = event.ItemA, names[event.ItemA]
			entry.LoserID, entry.LoserName = event.ItemB, names[event.ItemB]
			entry.WinnerBefore, entry.WinnerAfter = oldA, newA
			entry.LoserBefore, entry.LoserAfter = oldB, newB
		} else {
			entry.WinnerID, entry.WinnerName = event.ItemB, names[event.ItemB]
			entry.LoserID, entry.LoserName = event.ItemA, names[event.ItemA]
			entry.WinnerBefore, entry.WinnerAfter = oldB, newB
			entry.LoserBefore, entry.LoserAfter = oldA, newA
		}
		entries = append(entries, entry)
	}
	return entries
}

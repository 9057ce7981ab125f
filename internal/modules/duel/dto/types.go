package dto

// Outcome is the user's decision for the on-screen pair.
type Outcome string

const (
	OutcomeFirst  Outcome = "a"
	OutcomeSecond Outcome = "b"
	OutcomeDraw   Outcome = "draw"
)

type ContenderOutput struct {
	ID           string
	DisplayName  string
	Rating       float64
	GamesPlayed  int
	PoolID       string
	LastCompared string
}

type PairOutput struct {
	First      ContenderOutput
	Second     ContenderOutput
	Degenerate bool
}

type SessionOutput struct {
	PoolID     string
	State      string
	Contenders []ContenderOutput
	Pair       PairOutput
	History    []HistoryEntryOutput
	EventCount int
}

type RecordOutcomeInput struct {
	PoolID  string
	Outcome Outcome
}

type HistoryEntryOutput struct {
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

type StandingOutput struct {
	Rank        int
	ItemID      string
	DisplayName string
	Rating      float64
	Games       int
	Last        string
}

type EventOutput struct {
	At    int64
	ItemA string
	ItemB string
	Score float64
}

type ResetInput struct {
	PoolID  string
	Confirm bool
}

type DeletePoolStoreInput struct {
	PoolID  string
	Confirm bool
}

type RestoreStoreInput struct {
	PoolID  string
	Events  []EventOutput
	Confirm bool
}

type PublishOutput struct {
	PoolID   string
	NotePath string
	RowCount int
}

package domain

// Rivalry is the cumulative head-to-head record between two items of
// one pool. Rows are keyed with ItemA ordered before ItemB so each
// pair has exactly one row no matter who was shown first. Labels are
// display names resolved at read time and may fall back to the ids.
type Rivalry struct {
	PoolID string
	ItemA  string
	ItemB  string
	LabelA string
	LabelB string
	WinsA  int
	WinsB  int
	Draws  int
	LastAt int64
}

func (r Rivalry) Total() int { return r.WinsA + r.WinsB + r.Draws }

// OrderPair returns the canonical ordering of a pair and whether the
// inputs were swapped to reach it.
func OrderPair(a, b string) (first, second string, swapped bool) {
	if b < a {
		return b, a, true
	}
	return a, b, false
}

// PathNode is one hop of a beat path: a chain of items where each
// holds a winning record against the next.
type PathNode struct {
	ItemID string
	Label  string
}

package clock

import "time"

// DateLayout is the format of persisted last-compared dates.
const DateLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// Today renders the clock's current day in DateLayout.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// Millis returns the clock's current time as milliseconds since epoch.
func Millis(c Clock) int64 {
	return c.Now().UnixMilli()
}

package ledgergo

import (
	"time"
)

// Clock holds the simulated date shared by the central bank and its
// watchers. Dates are normalized to midnight UTC so that day arithmetic
// never drifts across DST or sub-day offsets.
type Clock struct {
	date time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{date: midnightUTC(start)}
}

// Now returns the current simulated date.
func (c *Clock) Now() time.Time {
	return c.date
}

// AdvanceDay moves the clock forward exactly one calendar day.
func (c *Clock) AdvanceDay() {
	c.date = c.date.AddDate(0, 0, 1)
}

func midnightUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Day() == 1
}

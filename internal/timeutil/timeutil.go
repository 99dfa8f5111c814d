// Package timeutil maps simulated days onto the in-game calendar.
package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// SeasonDate is the calendar date of a season day. Seasons open on the
// first of January of their year.
func SeasonDate(year, daysPassed int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, daysPassed)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

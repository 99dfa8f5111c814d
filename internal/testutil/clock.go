package testutil

import "time"

// NowAt freezes a wall clock at t. Runners, writers, and the archive stamp
// times through an injectable now func.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses v or panics.
func MustParseRFC3339(v string) time.Time {
	at, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return at
}

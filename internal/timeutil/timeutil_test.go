package timeutil

import (
	"testing"
	"time"
)

func TestSeasonDate(t *testing.T) {
	cases := []struct {
		year, days int
		want       string
	}{
		{2026, 0, "2026-01-01"},
		{2026, 31, "2026-02-01"},
		{2028, 59, "2028-02-29"},
		{2026, 365, "2027-01-01"},
	}
	for _, tc := range cases {
		if got := FormatDate(SeasonDate(tc.year, tc.days)); got != tc.want {
			t.Fatalf("SeasonDate(%d, %d) = %s, want %s", tc.year, tc.days, got, tc.want)
		}
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

package domain

import (
	"math"
	"time"
)

// DayOf returns the calendar day containing t: midnight in t's location.
// Streak and daily-refresh comparisons use calendar days, never raw 24h deltas.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayOf(a).Equal(DayOf(b))
}

// DaysBetween returns the number of calendar days from a's day to b's day.
// Negative if b is before a. Rounded to absorb DST-shortened days.
func DaysBetween(a, b time.Time) int {
	diff := DayOf(b).Sub(DayOf(a))
	return int(math.Round(diff.Hours() / 24))
}

// DayKey formats t's calendar day as "2006-01-02" for use as a storage key.
func DayKey(t time.Time) string {
	return DayOf(t).Format("2006-01-02")
}

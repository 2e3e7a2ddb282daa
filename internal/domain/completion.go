// Package domain holds the core data model of the Touchwood progress engine:
// completion events, streaks, daily challenges, achievements, seasonal events,
// and mood analytics types. Domain types are pure — no infrastructure dependency.
package domain

import "time"

// CompletionEvent is the central fact of the engine: one ritual performed at
// one point in time. Events are immutable and retained indefinitely — every
// derived aggregate (streaks, challenge progress, mood analytics) can be
// rebuilt from the event log.
type CompletionEvent struct {
	ID        string    `json:"id"`
	RitualID  string    `json:"ritual_id"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
	Mood      int       `json:"mood,omitempty"` // 1..5, 0 = not recorded
	Note      string    `json:"note,omitempty"`
}

// HasMood reports whether the event carries a mood annotation.
func (e CompletionEvent) HasMood() bool {
	return e.Mood >= 1 && e.Mood <= 5
}

// Streak tracks consecutive calendar days with at least one completion.
// Invariant: CurrentCount <= BestCount after every update.
type Streak struct {
	CurrentCount     int       `json:"current_count"`
	BestCount        int       `json:"best_count"`
	LastCompletedDay time.Time `json:"last_completed_day"`
}

// Advanced returns the streak state after a completion on the given day,
// applying the calendar-day rule: same day is a no-op, exactly one day after
// the last completion extends the run, anything else resets to 1.
func (s Streak) Advanced(day time.Time) Streak {
	day = DayOf(day)

	switch {
	case s.LastCompletedDay.IsZero():
		s.CurrentCount = 1
	case SameDay(day, s.LastCompletedDay):
		// Already counted today.
		return s
	case DaysBetween(s.LastCompletedDay, day) == 1:
		s.CurrentCount++
	default:
		s.CurrentCount = 1
	}

	s.LastCompletedDay = day
	if s.CurrentCount > s.BestCount {
		s.BestCount = s.CurrentCount
	}
	return s
}

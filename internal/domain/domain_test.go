package domain

import (
	"testing"
	"time"
)

func day(yyyy int, m time.Month, d int) time.Time {
	return time.Date(yyyy, m, d, 12, 0, 0, 0, time.UTC)
}

func TestStreak_Advanced_FirstCompletion(t *testing.T) {
	var s Streak
	s = s.Advanced(day(2026, 3, 1))
	if s.CurrentCount != 1 || s.BestCount != 1 {
		t.Errorf("expected 1/1, got %d/%d", s.CurrentCount, s.BestCount)
	}
}

func TestStreak_Advanced_SameDayNoop(t *testing.T) {
	var s Streak
	s = s.Advanced(day(2026, 3, 1))
	s = s.Advanced(day(2026, 3, 1).Add(4 * time.Hour))
	if s.CurrentCount != 1 {
		t.Errorf("same-day completion should not extend streak, got %d", s.CurrentCount)
	}
}

func TestStreak_Advanced_SkippedDayResetsToOne(t *testing.T) {
	// Completions on day 1, 2, 4 yield streak sequence 1, 2, 1.
	var s Streak
	want := []int{1, 2, 1}
	for i, d := range []int{1, 2, 4} {
		s = s.Advanced(day(2026, 3, d))
		if s.CurrentCount != want[i] {
			t.Errorf("day %d: expected streak %d, got %d", d, want[i], s.CurrentCount)
		}
	}
	if s.BestCount != 2 {
		t.Errorf("best should stay at 2, got %d", s.BestCount)
	}
}

func TestStreak_BestNeverBelowCurrent(t *testing.T) {
	var s Streak
	for i := 0; i < 10; i++ {
		s = s.Advanced(day(2026, 3, 1+i))
		if s.BestCount < s.CurrentCount {
			t.Fatalf("invariant violated: best %d < current %d", s.BestCount, s.CurrentCount)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b time.Time
		want int
	}{
		{day(2026, 3, 1), day(2026, 3, 1), 0},
		{day(2026, 3, 1), day(2026, 3, 2), 1},
		{day(2026, 3, 2), day(2026, 3, 1), -1},
		{day(2026, 2, 28), day(2026, 3, 1), 1}, // not a leap year
		{day(2026, 12, 31), day(2027, 1, 1), 1},
		// Different clock times on adjacent days are still 1 day apart.
		{time.Date(2026, 3, 1, 23, 50, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 10, 0, 0, time.UTC), 1},
	}
	for _, tt := range tests {
		if got := DaysBetween(tt.a, tt.b); got != tt.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTimeWindow_Contains(t *testing.T) {
	tests := []struct {
		w    TimeWindow
		hour int
		want bool
	}{
		{WindowMorning, 6, true},
		{WindowMorning, 11, true},
		{WindowMorning, 12, false},
		{WindowMorning, 5, false},
		{WindowEvening, 18, true},
		{WindowEvening, 23, true},
		{WindowEvening, 17, false},
		{WindowNone, 9, false},
	}
	for _, tt := range tests {
		if got := tt.w.Contains(tt.hour); got != tt.want {
			t.Errorf("%s.Contains(%d) = %v, want %v", tt.w, tt.hour, got, tt.want)
		}
	}
}

func TestRequirement_Met(t *testing.T) {
	stats := AggregateStats{
		StreakDays:        7,
		TotalRituals:      50,
		RecentMoodAverage: 4.2,
		RecentMoodCount:   10,
		ShareCount:        3,
		CustomRitualCount: 2,
		PerfectWeek:       true,
	}

	tests := []struct {
		req  Requirement
		want bool
	}{
		{Requirement{Kind: ReqStreakDays, Count: 7}, true},
		{Requirement{Kind: ReqStreakDays, Count: 8}, false},
		{Requirement{Kind: ReqTotalRituals, Count: 50}, true},
		{Requirement{Kind: ReqMoodAverage, Average: 4.0}, true},
		{Requirement{Kind: ReqMoodAverage, Average: 4.5}, false},
		{Requirement{Kind: ReqShareCount, Count: 5}, false},
		{Requirement{Kind: ReqCustomRituals, Count: 1}, true},
		{Requirement{Kind: ReqConsecutiveDays, Count: 7}, true},
		{Requirement{Kind: ReqPerfectWeek}, true},
		{Requirement{Kind: RequirementKind("unknown")}, false},
	}
	for _, tt := range tests {
		if got := tt.req.Met(stats); got != tt.want {
			t.Errorf("%s: Met = %v, want %v", tt.req.Kind, got, tt.want)
		}
	}
}

func TestRequirement_MoodAverageNeedsSamples(t *testing.T) {
	req := Requirement{Kind: ReqMoodAverage, Average: 0.0}
	if req.Met(AggregateStats{RecentMoodCount: 0}) {
		t.Error("mood-average requirement must not pass with zero samples")
	}
}

func TestSeasonalEvent_IsActive_InclusiveBounds(t *testing.T) {
	e := SeasonalEvent{
		StartDate: day(2026, 10, 24),
		EndDate:   day(2026, 10, 31),
	}
	if !e.IsActive(e.StartDate) {
		t.Error("start boundary should be active")
	}
	if !e.IsActive(e.EndDate) {
		t.Error("end boundary should be active")
	}
	if e.IsActive(e.StartDate.Add(-time.Second)) {
		t.Error("before start should not be active")
	}
	if e.IsActive(e.EndDate.Add(time.Second)) {
		t.Error("after end should not be active")
	}
}

// Package progress implements the progress tracker: it records ritual
// completion events — the central fact of the engine — and maintains the
// global streak and running totals derived from them.
package progress

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/catalog"
	"github.com/touchwood-app/touchwood/internal/infra/metrics"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// streakMilestones are the streak lengths worth celebrating.
var streakMilestones = []int{3, 7, 14, 30, 100, 365}

// Tracker records completions and owns streak and today-count state.
// Single-writer: all mutation happens on one logical thread of control.
type Tracker struct {
	db      *sqlite.DB
	catalog *catalog.Catalog
	sink    domain.NotificationSink
}

// NewTracker creates a progress tracker.
func NewTracker(db *sqlite.DB, cat *catalog.Catalog) *Tracker {
	return &Tracker{db: db, catalog: cat}
}

// SetNotificationSink wires the sink streak milestones are announced to.
func (t *Tracker) SetNotificationSink(sink domain.NotificationSink) {
	t.sink = sink
}

// RecordCompletion records a ritual performed now.
func (t *Tracker) RecordCompletion(ritualID string, mood int, note string) (domain.CompletionEvent, error) {
	return t.RecordCompletionAt(ritualID, mood, note, time.Now())
}

// RecordCompletionAt records a ritual performed at a given time. It appends
// to the event log, advances the global streak by the calendar-day rule, and
// updates the today counter. An id unknown to the catalog still records — the
// event simply carries no category.
func (t *Tracker) RecordCompletionAt(ritualID string, mood int, note string, at time.Time) (domain.CompletionEvent, error) {
	if mood != 0 && (mood < 1 || mood > 5) {
		return domain.CompletionEvent{}, domain.ErrInvalidMood
	}

	var category string
	if ritual, err := t.catalog.Resolve(ritualID); err == nil && ritual != nil {
		category = string(ritual.Category)
	}

	event := domain.CompletionEvent{
		ID:        uuid.NewString(),
		RitualID:  ritualID,
		Category:  category,
		Timestamp: at,
		Mood:      mood,
		Note:      note,
	}

	if err := t.db.InsertCompletion(event); err != nil {
		return domain.CompletionEvent{}, fmt.Errorf("append completion: %w", err)
	}

	if err := t.advanceStreak(at); err != nil {
		return event, fmt.Errorf("advance streak: %w", err)
	}

	metrics.RitualsCompleted.WithLabelValues(category).Inc()
	return event, nil
}

// CurrentStreak loads the global streak state.
// A decode failure reads as a fresh streak rather than an error.
func (t *Tracker) CurrentStreak() (domain.Streak, error) {
	var streak domain.Streak

	current, err := t.db.GetState("streak_current")
	if err != nil {
		return streak, fmt.Errorf("get streak_current: %w", err)
	}
	if current != "" {
		streak.CurrentCount, _ = strconv.Atoi(current)
	}

	best, err := t.db.GetState("streak_best")
	if err != nil {
		return streak, fmt.Errorf("get streak_best: %w", err)
	}
	if best != "" {
		streak.BestCount, _ = strconv.Atoi(best)
	}

	lastDay, err := t.db.GetState("streak_last_day")
	if err != nil {
		return streak, fmt.Errorf("get streak_last_day: %w", err)
	}
	if lastDay != "" {
		if ts, err := strconv.ParseInt(lastDay, 10, 64); err == nil {
			streak.LastCompletedDay = time.Unix(ts, 0)
		}
	}

	if streak.BestCount < streak.CurrentCount {
		streak.BestCount = streak.CurrentCount
	}
	return streak, nil
}

// CurrentStreakDays satisfies domain.StreakSource.
func (t *Tracker) CurrentStreakDays() (int, error) {
	streak, err := t.CurrentStreak()
	if err != nil {
		return 0, err
	}
	return streak.CurrentCount, nil
}

// TodayCount returns how many rituals were completed on now's calendar day.
func (t *Tracker) TodayCount(now time.Time) (int, error) {
	return t.db.CompletionCountOn(domain.DayKey(now))
}

// LifetimeCount returns the total number of completions ever recorded.
func (t *Tracker) LifetimeCount() (int, error) {
	return t.db.CompletionCount()
}

// CountByCategory returns lifetime completion counts per ritual category.
func (t *Tracker) CountByCategory() (map[string]int, error) {
	return t.db.CompletionCountByCategory()
}

// Stats assembles the aggregate snapshot fed to achievement evaluation.
// Level is owned by the level service and filled in by the caller.
func (t *Tracker) Stats(now time.Time) (domain.AggregateStats, error) {
	var stats domain.AggregateStats

	streak, err := t.CurrentStreak()
	if err != nil {
		return stats, err
	}
	stats.StreakDays = streak.CurrentCount
	stats.BestStreak = streak.BestCount

	if stats.TotalRituals, err = t.db.CompletionCount(); err != nil {
		return stats, fmt.Errorf("count completions: %w", err)
	}
	if stats.TodayRituals, err = t.db.CompletionCountOn(domain.DayKey(now)); err != nil {
		return stats, fmt.Errorf("count today: %w", err)
	}

	weekAgo := domain.DayOf(now).AddDate(0, 0, -6)
	if stats.RecentMoodAverage, stats.RecentMoodCount, err = t.db.RecentMoodAverage(weekAgo); err != nil {
		return stats, fmt.Errorf("recent mood: %w", err)
	}

	perfect, err := t.perfectWeek(now)
	if err != nil {
		return stats, err
	}
	stats.PerfectWeek = perfect

	if stats.ShareCount, err = t.db.ShareCount(); err != nil {
		return stats, fmt.Errorf("share count: %w", err)
	}
	if stats.CustomRitualCount, err = t.db.CustomRitualCount(); err != nil {
		return stats, fmt.Errorf("custom ritual count: %w", err)
	}

	return stats, nil
}

// advanceStreak applies the calendar-day rule and persists the result.
func (t *Tracker) advanceStreak(at time.Time) error {
	streak, err := t.CurrentStreak()
	if err != nil {
		return err
	}

	if !streak.LastCompletedDay.IsZero() && domain.SameDay(streak.LastCompletedDay, at) {
		// Same-day completion — already counted, nothing to persist.
		metrics.StreakDays.Set(float64(streak.CurrentCount))
		return nil
	}

	streak = streak.Advanced(at)
	pairs := map[string]string{
		"streak_current":  strconv.Itoa(streak.CurrentCount),
		"streak_best":     strconv.Itoa(streak.BestCount),
		"streak_last_day": strconv.FormatInt(streak.LastCompletedDay.Unix(), 10),
	}
	for k, v := range pairs {
		if err := t.db.SetState(k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}

	metrics.StreakDays.Set(float64(streak.CurrentCount))
	t.announceMilestone(streak.CurrentCount)
	return nil
}

// perfectWeek reports whether each of the last 7 calendar days (today
// included) has at least one completion.
func (t *Tracker) perfectWeek(now time.Time) (bool, error) {
	since := domain.DayOf(now).AddDate(0, 0, -6)
	days, err := t.db.ActiveDays(since)
	if err != nil {
		return false, fmt.Errorf("active days: %w", err)
	}
	return len(days) >= 7, nil
}

// announceMilestone emits a streak-milestone notification when the streak
// lands exactly on a milestone length.
func (t *Tracker) announceMilestone(days int) {
	if t.sink == nil {
		return
	}
	for _, m := range streakMilestones {
		if days == m {
			t.sink.Notify(domain.Notification{
				Type:  domain.NotifyStreakMilestone,
				Title: fmt.Sprintf("%d-day streak!", days),
				Body:  fmt.Sprintf("You have touched wood %d days in a row.", days),
			})
			return
		}
	}
}

package domain

import "time"

// ─── Mood Analytics Types ───────────────────────────────────────────────────

// MoodEntry is one row of the mood log: a completion annotated with how the
// user felt (1..5). The log is append-only; all series below derive from it.
type MoodEntry struct {
	ID         int64     `json:"id"`
	RitualID   string    `json:"ritual_id"`
	RitualName string    `json:"ritual_name"`
	Mood       int       `json:"mood"` // 1..5
	Note       string    `json:"note,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// MoodDataPoint is one day of the windowed trend series.
type MoodDataPoint struct {
	Date        time.Time `json:"date"`
	AverageMood float64   `json:"average_mood"`
	Count       int       `json:"count"`
}

// Trend classifies a mood sample sequence by comparing the average of its
// second half against its first half.
type Trend string

const (
	TrendImproving Trend = "improving" // second-half avg exceeds first by > 0.3
	TrendDeclining Trend = "declining" // second-half avg trails first by > 0.3
	TrendStable    Trend = "stable"
)

// RitualMoodData correlates one ritual with the moods logged alongside it.
type RitualMoodData struct {
	RitualName  string  `json:"ritual_name"`
	AverageMood float64 `json:"average_mood"`
	Count       int     `json:"count"`
	Trend       Trend   `json:"trend"`
}

// MoodStreakType classifies a mood streak by its average mood.
// "improving" doubles as the catch-all low-average bucket — kept as-is
// pending a product decision on the label.
type MoodStreakType string

const (
	MoodStreakPositive  MoodStreakType = "positive"  // average >= 4.0
	MoodStreakNeutral   MoodStreakType = "neutral"   // average >= 3.0
	MoodStreakImproving MoodStreakType = "improving" // everything below
)

// MoodStreak is a maximal run of mood entries whose calendar-day gaps are at
// most one, with at least three entries.
type MoodStreak struct {
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Length      int            `json:"length"` // entry count, not day count
	AverageMood float64        `json:"average_mood"`
	Type        MoodStreakType `json:"type"`
}

// InsightPriority orders insights for display: high first, stable within.
type InsightPriority int

const (
	PriorityNormal InsightPriority = 0
	PriorityHigh   InsightPriority = 1
)

// MoodInsight is one textual observation derived from the mood log.
type MoodInsight struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Body     string          `json:"body"`
	Priority InsightPriority `json:"priority"`
}

// MoodReport bundles every derived series the analytics engine recomputes
// after each new entry.
type MoodReport struct {
	Weekly       []MoodDataPoint  `json:"weekly"`        // last 7 days
	Monthly      []MoodDataPoint  `json:"monthly"`       // last 30 days
	ByRitual     []RitualMoodData `json:"by_ritual"`
	ByTimeOfDay  map[string]float64 `json:"by_time_of_day"` // morning/afternoon/evening/night
	Streaks      []MoodStreak     `json:"streaks"`
	Insights     []MoodInsight    `json:"insights"`
	OverallTrend Trend            `json:"overall_trend"`
	EntryCount   int              `json:"entry_count"`
}

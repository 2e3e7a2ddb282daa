package domain

import "time"

// ─── Achievement Types ──────────────────────────────────────────────────────

// AchievementCategory groups achievements by theme.
type AchievementCategory string

const (
	CatBeginnings AchievementCategory = "beginnings"
	CatStreaks    AchievementCategory = "streaks"
	CatDedication AchievementCategory = "dedication"
	CatMood       AchievementCategory = "mood"
	CatSocial     AchievementCategory = "social"
	CatCraft      AchievementCategory = "craft"
)

// RequirementKind discriminates the Requirement tagged union.
type RequirementKind string

const (
	ReqStreakDays      RequirementKind = "streak_days"       // current streak >= Count
	ReqTotalRituals    RequirementKind = "total_rituals"     // lifetime completions >= Count
	ReqMoodAverage     RequirementKind = "mood_average"      // recent-window mood avg >= Average
	ReqShareCount      RequirementKind = "share_count"       // shares >= Count
	ReqCustomRituals   RequirementKind = "custom_rituals"    // custom rituals created >= Count
	ReqConsecutiveDays RequirementKind = "consecutive_days"  // consecutive active days >= Count
	ReqPerfectWeek     RequirementKind = "perfect_week"      // >=1 completion on each of last 7 days
)

// Requirement is a tagged condition evaluated against an AggregateStats
// snapshot. Exactly one payload field is meaningful per kind.
type Requirement struct {
	Kind    RequirementKind `json:"kind"`
	Count   int             `json:"count,omitempty"`
	Average float64         `json:"average,omitempty"`
}

// Met evaluates the requirement against a stats snapshot. The switch is
// exhaustive over RequirementKind; an unknown kind never unlocks.
func (r Requirement) Met(s AggregateStats) bool {
	switch r.Kind {
	case ReqStreakDays:
		return s.StreakDays >= r.Count
	case ReqTotalRituals:
		return s.TotalRituals >= r.Count
	case ReqMoodAverage:
		return s.RecentMoodCount > 0 && s.RecentMoodAverage >= r.Average
	case ReqShareCount:
		return s.ShareCount >= r.Count
	case ReqCustomRituals:
		return s.CustomRitualCount >= r.Count
	case ReqConsecutiveDays:
		return s.StreakDays >= r.Count
	case ReqPerfectWeek:
		return s.PerfectWeek
	default:
		return false
	}
}

// Achievement defines a single unlockable. Once unlocked it never resets and
// its points count toward the total exactly once.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Icon        string              `json:"icon"`
	Requirement Requirement         `json:"requirement"`
	Points      int                 `json:"points"`
}

// UnlockedAchievement records when an achievement was earned.
type UnlockedAchievement struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	Notified   bool      `json:"notified"`
}

// AggregateStats is the snapshot fed to requirement evaluation. Built by the
// progress tracker from the completion log plus the social and catalog stores.
type AggregateStats struct {
	StreakDays        int     `json:"streak_days"`
	BestStreak        int     `json:"best_streak"`
	TotalRituals      int     `json:"total_rituals"`
	TodayRituals      int     `json:"today_rituals"`
	RecentMoodAverage float64 `json:"recent_mood_average"` // over the trailing 7 days
	RecentMoodCount   int     `json:"recent_mood_count"`
	ShareCount        int     `json:"share_count"`
	CustomRitualCount int     `json:"custom_ritual_count"`
	PerfectWeek       bool    `json:"perfect_week"`
	Level             int     `json:"level"`
}

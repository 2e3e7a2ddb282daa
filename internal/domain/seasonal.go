package domain

import "time"

// ─── Seasonal Event Types ───────────────────────────────────────────────────

// SeasonalEvent is a time-windowed event constructed once per calendar year.
// Active iff StartDate <= now <= EndDate (boundaries inclusive). The
// current/upcoming/past partition is recomputed from now, never persisted.
type SeasonalEvent struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	StartDate      time.Time        `json:"start_date"`
	EndDate        time.Time        `json:"end_date"`
	SpecialRituals []SpecialRitual  `json:"special_rituals"`
	Challenges     []EventChallenge `json:"challenges"`
	Rewards        []EventReward    `json:"rewards"`
}

// IsActive reports whether now falls inside the event window, inclusive.
func (e SeasonalEvent) IsActive(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

// EventChallengeType categorizes event-scoped challenges.
type EventChallengeType string

const (
	EventChallengeRituals        EventChallengeType = "rituals"         // any ritual counts
	EventChallengeSpecialRituals EventChallengeType = "special_rituals" // only the event's own rituals count
)

// EventChallenge is a challenge definition scoped to one seasonal event.
// Progress and completion are persisted separately, keyed by ID.
type EventChallenge struct {
	ID           string             `json:"id"`
	EventID      string             `json:"event_id"`
	Type         EventChallengeType `json:"type"`
	Description  string             `json:"description"`
	Target       int                `json:"target"`
	RewardXP     int64              `json:"reward_xp"`
	RewardPoints int                `json:"reward_points"`
}

// EventReward is granted when the event's aggregate progress reaches a
// threshold fraction of completed challenges.
type EventReward struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	RequiredProgress float64 `json:"required_progress"` // 0..1 fraction
}

// ─── Special Rituals ────────────────────────────────────────────────────────

// UnlockKind discriminates the UnlockRequirement tagged union.
type UnlockKind string

const (
	UnlockLevel         UnlockKind = "level"          // level >= Level
	UnlockStreak        UnlockKind = "streak"         // streak days >= StreakDays
	UnlockAchievement   UnlockKind = "achievement"    // named achievement unlocked
	UnlockEventProgress UnlockKind = "event_progress" // event progress fraction >= Fraction
	UnlockSocialShare   UnlockKind = "social_share"   // shares >= Shares
)

// UnlockRequirement gates a special ritual. Exactly one payload field is
// meaningful per kind; evaluation is an exhaustive switch in the seasonal
// engine against snapshots provided by external stat sources.
type UnlockRequirement struct {
	Kind          UnlockKind `json:"kind"`
	Level         int        `json:"level,omitempty"`
	StreakDays    int        `json:"streak_days,omitempty"`
	AchievementID string     `json:"achievement_id,omitempty"`
	Fraction      float64    `json:"fraction,omitempty"`
	Shares        int        `json:"shares,omitempty"`
}

// SpecialRitual belongs to exactly one seasonal event. Unlock state is
// monotonic and survives the event window; usability additionally requires
// the owning event to be currently active and the usage cap unreached.
type SpecialRitual struct {
	ID          string            `json:"id"`
	EventID     string            `json:"event_id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Unlock      UnlockRequirement `json:"unlock"`
	UsageLimit  int               `json:"usage_limit,omitempty"` // 0 = unlimited
}

// Limited reports whether the ritual carries a usage cap.
func (r SpecialRitual) Limited() bool { return r.UsageLimit > 0 }

// UnlockedRitual records a special ritual unlock plus its usage counter.
type UnlockedRitual struct {
	RitualID   string    `json:"ritual_id"`
	EventID    string    `json:"event_id"`
	UnlockedAt time.Time `json:"unlocked_at"`
	UsageCount int       `json:"usage_count"`
}

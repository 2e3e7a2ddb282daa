package domain

import "time"

// ─── Daily Challenge Types ──────────────────────────────────────────────────

// ChallengeType categorizes a daily challenge template.
type ChallengeType string

const (
	ChallengeRituals ChallengeType = "rituals" // complete N rituals
	ChallengeStreak  ChallengeType = "streak"  // reach an N-day streak
	ChallengeMood    ChallengeType = "mood"    // log a mood >= target (pass/fail)
	ChallengeVariety ChallengeType = "variety" // perform N distinct rituals
	ChallengeTime    ChallengeType = "time"    // complete a ritual in a time window
)

// ChallengeTypes is the fixed set of template types the daily draw uses.
var ChallengeTypes = []ChallengeType{
	ChallengeRituals,
	ChallengeStreak,
	ChallengeMood,
	ChallengeVariety,
	ChallengeTime,
}

// TimeWindow narrows a time-type challenge to part of the day.
// Morning is [06:00, 12:00), evening is [18:00, 24:00).
type TimeWindow string

const (
	WindowNone    TimeWindow = ""
	WindowMorning TimeWindow = "morning"
	WindowEvening TimeWindow = "evening"
)

// Contains reports whether the given hour falls inside the window.
func (w TimeWindow) Contains(hour int) bool {
	switch w {
	case WindowMorning:
		return hour >= 6 && hour < 12
	case WindowEvening:
		return hour >= 18 && hour < 24
	default:
		return false
	}
}

// DailyChallenge is one day-scoped objective. Instances are created fresh each
// calendar day and discarded, never carried over. Once Completed flips true the
// reward has been granted exactly once and the instance receives no further
// progress updates.
type DailyChallenge struct {
	ID           string        `json:"id"`
	Type         ChallengeType `json:"type"`
	Window       TimeWindow    `json:"window,omitempty"` // time-type only
	Description  string        `json:"description"`
	Target       int           `json:"target"`
	Progress     int           `json:"progress"`
	RewardXP     int64         `json:"reward_xp"`
	RewardPoints int           `json:"reward_points"`
	Day          string        `json:"day"` // DayKey of the day it belongs to
	Completed    bool          `json:"completed"`
	CompletedAt  time.Time     `json:"completed_at,omitzero"`
}

// ProgressPct returns completion percentage (0-100).
func (c DailyChallenge) ProgressPct() float64 {
	if c.Target <= 0 {
		return 100.0
	}
	pct := float64(c.Progress) / float64(c.Target) * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}

// ChallengeTemplate defines the pool a day's challenges are drawn from.
type ChallengeTemplate struct {
	Type         ChallengeType
	Window       TimeWindow
	Target       int
	Description  string
	RewardXP     int64
	RewardPoints int
}

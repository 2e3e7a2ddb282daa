// Package achievement implements the achievement engine: a fixed catalog of
// tagged unlock conditions evaluated against aggregate stat snapshots.
// Unlocks are monotonic and each achievement's points count exactly once.
package achievement

import (
	"fmt"
	"strconv"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/metrics"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// Engine evaluates the achievement catalog.
type Engine struct {
	db      *sqlite.DB
	catalog []domain.Achievement
	sink    domain.NotificationSink
}

// NewEngine creates an achievement engine with the full catalog.
func NewEngine(db *sqlite.DB) *Engine {
	return &Engine{db: db, catalog: AllAchievements()}
}

// SetNotificationSink wires where unlocks are announced.
func (e *Engine) SetNotificationSink(s domain.NotificationSink) { e.sink = s }

// Evaluate tests every locked achievement against the stats snapshot and
// unlocks the ones whose requirement is met, stamping the unlock time and
// adding points exactly once. Idempotent: a second call with identical stats
// returns an empty batch. The returned batch follows catalog order.
func (e *Engine) Evaluate(stats domain.AggregateStats, now time.Time) ([]domain.Achievement, error) {
	var newlyUnlocked []domain.Achievement

	for _, def := range e.catalog {
		unlocked, err := e.db.IsAchievementUnlocked(def.ID)
		if err != nil {
			return nil, err
		}
		if unlocked || !def.Requirement.Met(stats) {
			continue
		}

		isNew, err := e.db.UnlockAchievement(def.ID, now)
		if err != nil {
			return nil, err
		}
		if !isNew {
			continue
		}

		if err := e.addPoints(def.Points); err != nil {
			return nil, err
		}
		if e.sink != nil {
			e.sink.Notify(domain.Notification{
				Type:  domain.NotifyAchievement,
				Title: "Achievement unlocked!",
				Body:  fmt.Sprintf("%s — %s", def.Name, def.Description),
			})
		}
		metrics.AchievementsUnlocked.WithLabelValues(string(def.Category)).Inc()
		newlyUnlocked = append(newlyUnlocked, def)
	}

	return newlyUnlocked, nil
}

// IsUnlocked reports whether an achievement has been unlocked.
// Satisfies domain.AchievementSource for seasonal unlock checks.
func (e *Engine) IsUnlocked(id string) (bool, error) {
	return e.db.IsAchievementUnlocked(id)
}

// TotalPoints returns the accumulated point total.
func (e *Engine) TotalPoints() (int, error) {
	v, err := e.db.GetState("achievement_points")
	if err != nil {
		return 0, fmt.Errorf("get points: %w", err)
	}
	if v == "" {
		return 0, nil
	}
	points, err := strconv.Atoi(v)
	if err != nil {
		// Corrupt state reads as zero rather than failing (data-loss-tolerant).
		return 0, nil
	}
	return points, nil
}

// ListUnlocked returns all unlocked achievements, newest first.
func (e *Engine) ListUnlocked() ([]domain.UnlockedAchievement, error) {
	return e.db.ListUnlockedAchievements()
}

// UnlockedCount returns how many achievements are unlocked.
func (e *Engine) UnlockedCount() (int, error) {
	return e.db.UnlockedAchievementCount()
}

// TotalCount returns the size of the catalog.
func (e *Engine) TotalCount() int { return len(e.catalog) }

// Definitions returns the full catalog (for display).
func (e *Engine) Definitions() []domain.Achievement { return e.catalog }

func (e *Engine) addPoints(points int) error {
	total, err := e.TotalPoints()
	if err != nil {
		return err
	}
	if err := e.db.SetState("achievement_points", strconv.Itoa(total+points)); err != nil {
		return fmt.Errorf("save points: %w", err)
	}
	return nil
}

// ─── Achievement Catalog ────────────────────────────────────────────────────
// The catalog order is stable; Evaluate returns batches in this order.

// AllAchievements returns the full achievement catalog.
func AllAchievements() []domain.Achievement {
	return []domain.Achievement{
		// ── Beginnings ─────────────────────────────────────────────────
		{
			ID: "first-touch", Name: "First Touch", Category: domain.CatBeginnings,
			Icon: "🪵", Points: 10, Description: "Complete your first ritual",
			Requirement: domain.Requirement{Kind: domain.ReqTotalRituals, Count: 1},
		},
		{
			ID: "ten-touches", Name: "Getting the Hang", Category: domain.CatBeginnings,
			Icon: "✋", Points: 20, Description: "Complete 10 rituals",
			Requirement: domain.Requirement{Kind: domain.ReqTotalRituals, Count: 10},
		},
		{
			ID: "hundred-touches", Name: "Wood Whisperer", Category: domain.CatBeginnings,
			Icon: "🌳", Points: 50, Description: "Complete 100 rituals",
			Requirement: domain.Requirement{Kind: domain.ReqTotalRituals, Count: 100},
		},
		{
			ID: "thousand-touches", Name: "Old Growth", Category: domain.CatBeginnings,
			Icon: "🌲", Points: 200, Description: "Complete 1,000 rituals",
			Requirement: domain.Requirement{Kind: domain.ReqTotalRituals, Count: 1000},
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak-3", Name: "Three in a Row", Category: domain.CatStreaks,
			Icon: "🔥", Points: 15, Description: "Reach a 3-day streak",
			Requirement: domain.Requirement{Kind: domain.ReqStreakDays, Count: 3},
		},
		{
			ID: "streak-7", Name: "Week of Wood", Category: domain.CatStreaks,
			Icon: "🔥", Points: 30, Description: "Reach a 7-day streak",
			Requirement: domain.Requirement{Kind: domain.ReqStreakDays, Count: 7},
		},
		{
			ID: "streak-30", Name: "Monthly Devotion", Category: domain.CatStreaks,
			Icon: "💪", Points: 100, Description: "Reach a 30-day streak",
			Requirement: domain.Requirement{Kind: domain.ReqStreakDays, Count: 30},
		},
		{
			ID: "streak-100", Name: "Centurion", Category: domain.CatStreaks,
			Icon: "🏛️", Points: 300, Description: "Reach a 100-day streak",
			Requirement: domain.Requirement{Kind: domain.ReqStreakDays, Count: 100},
		},

		// ── Dedication ─────────────────────────────────────────────────
		{
			ID: "perfect-week", Name: "Perfect Week", Category: domain.CatDedication,
			Icon: "📅", Points: 50, Description: "Touch wood every day for a week",
			Requirement: domain.Requirement{Kind: domain.ReqPerfectWeek},
		},
		{
			ID: "fortnight", Name: "Fortnight Faithful", Category: domain.CatDedication,
			Icon: "🗓️", Points: 60, Description: "14 consecutive active days",
			Requirement: domain.Requirement{Kind: domain.ReqConsecutiveDays, Count: 14},
		},

		// ── Mood ───────────────────────────────────────────────────────
		{
			ID: "sunny-week", Name: "Sunny Week", Category: domain.CatMood,
			Icon: "☀️", Points: 40, Description: "Average mood of 4+ over the last week",
			Requirement: domain.Requirement{Kind: domain.ReqMoodAverage, Average: 4.0},
		},
		{
			ID: "glowing", Name: "Glowing", Category: domain.CatMood,
			Icon: "✨", Points: 80, Description: "Average mood of 4.5+ over the last week",
			Requirement: domain.Requirement{Kind: domain.ReqMoodAverage, Average: 4.5},
		},

		// ── Social ─────────────────────────────────────────────────────
		{
			ID: "first-share", Name: "Spread the Luck", Category: domain.CatSocial,
			Icon: "🤝", Points: 20, Description: "Share your progress once",
			Requirement: domain.Requirement{Kind: domain.ReqShareCount, Count: 1},
		},
		{
			ID: "five-shares", Name: "Evangelist", Category: domain.CatSocial,
			Icon: "📢", Points: 60, Description: "Share your progress 5 times",
			Requirement: domain.Requirement{Kind: domain.ReqShareCount, Count: 5},
		},

		// ── Craft ──────────────────────────────────────────────────────
		{
			ID: "first-custom", Name: "Ritual Smith", Category: domain.CatCraft,
			Icon: "🛠️", Points: 30, Description: "Create a custom ritual",
			Requirement: domain.Requirement{Kind: domain.ReqCustomRituals, Count: 1},
		},
		{
			ID: "three-customs", Name: "Tradition Maker", Category: domain.CatCraft,
			Icon: "🎨", Points: 70, Description: "Create 3 custom rituals",
			Requirement: domain.Requirement{Kind: domain.ReqCustomRituals, Count: 3},
		},
	}
}

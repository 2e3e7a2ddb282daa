// Package metrics provides Prometheus metrics for Touchwood.
// Counters and gauges for ritual completions, challenge and achievement
// activity, seasonal unlocks, and streak state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Rituals ────────────────────────────────────────────────────────────────

// RitualsCompleted tracks ritual completions by category.
var RitualsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "rituals_completed_total",
	Help:      "Total ritual completions.",
}, []string{"category"})

// StreakDays tracks the current global streak length.
var StreakDays = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "touchwood",
	Name:      "streak_days_current",
	Help:      "Current streak length in days.",
})

// ─── Challenges ─────────────────────────────────────────────────────────────

// ChallengesCompleted tracks daily challenge completions by type.
var ChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "challenges_completed_total",
	Help:      "Total daily challenges completed.",
}, []string{"type"})

// ChallengesRefreshed tracks daily challenge set refreshes.
var ChallengesRefreshed = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "challenges_refreshed_total",
	Help:      "Total daily challenge set refreshes.",
})

// ─── Achievements & Events ──────────────────────────────────────────────────

// AchievementsUnlocked tracks achievement unlocks by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"category"})

// RitualsUnlocked tracks special ritual unlocks by event.
var RitualsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "special_rituals_unlocked_total",
	Help:      "Total special rituals unlocked.",
}, []string{"event"})

// EventChallengesCompleted tracks event challenge completions by event.
var EventChallengesCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "event_challenges_completed_total",
	Help:      "Total seasonal event challenges completed.",
}, []string{"event"})

// ─── Mood ───────────────────────────────────────────────────────────────────

// MoodEntries tracks mood log appends by mood value.
var MoodEntries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "touchwood",
	Name:      "mood_entries_total",
	Help:      "Total mood entries logged.",
}, []string{"mood"})

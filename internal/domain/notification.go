package domain

import "time"

// ─── Notification Types ─────────────────────────────────────────────────────

// NotificationType categorizes engine-emitted notifications.
type NotificationType string

const (
	NotifyChallengeComplete NotificationType = "challenge_complete"
	NotifyAchievement       NotificationType = "achievement"
	NotifyRitualUnlocked    NotificationType = "ritual_unlocked"
	NotifyStreakMilestone   NotificationType = "streak_milestone"
	NotifyLevelUp           NotificationType = "level_up"
)

// Notification is a user-facing message queued for the presentation layer.
type Notification struct {
	ID        int64            `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Shown     bool             `json:"shown"`
}

// NotificationPolicy governs how often notifications are queued.
type NotificationPolicy struct {
	MaxPerDay  int    `json:"max_per_day"`
	QuietStart string `json:"quiet_start"` // "22:00"
	QuietEnd   string `json:"quiet_end"`   // "08:00"
}

// DefaultNotificationPolicy caps celebration noise at 6/day outside 22:00–08:00.
func DefaultNotificationPolicy() NotificationPolicy {
	return NotificationPolicy{
		MaxPerDay:  6,
		QuietStart: "22:00",
		QuietEnd:   "08:00",
	}
}

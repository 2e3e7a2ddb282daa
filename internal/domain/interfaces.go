package domain

// Boundary contracts the engines consume. Implementations live in the app and
// infra layers; tests substitute fakes.

// NotificationSink receives engine-emitted events (challenge completed,
// achievement unlocked, ritual unlocked, streak milestone). A collaborator
// renders user-visible notifications from them; delivery is out of scope.
type NotificationSink interface {
	Notify(n Notification)
}

// ShareCountSource reports how many times the user has shared progress.
// Read by achievement evaluation and seasonal unlock checks.
type ShareCountSource interface {
	CurrentShareCount() (int, error)
}

// LevelSource reports the user's current level for unlock predicates the
// seasonal engine does not own.
type LevelSource interface {
	CurrentLevel() (int, error)
}

// StreakSource reports the current global streak length in days.
type StreakSource interface {
	CurrentStreakDays() (int, error)
}

// AchievementSource answers "is this achievement unlocked" for
// achievement-gated special rituals.
type AchievementSource interface {
	IsUnlocked(achievementID string) (bool, error)
}

// Package social implements progress sharing and the friend feed. Shares are
// recorded locally; the share count feeds achievement and seasonal unlock
// checks. The friend feed is a best-effort mirror with placeholder data until
// a sync backend exists.
package social

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// ShareKind names what a share card is about.
type ShareKind string

const (
	ShareStreak      ShareKind = "streak"
	ShareAchievement ShareKind = "achievement"
	ShareLevel       ShareKind = "level"
	ShareChallenge   ShareKind = "challenge"
)

// SharePayload is the rendered card handed to the platform share sheet.
type SharePayload struct {
	ID      string    `json:"id"`
	Kind    ShareKind `json:"kind"`
	Message string    `json:"message"`
	Hashtag string    `json:"hashtag"`
}

// Manager records shares and builds share payloads.
type Manager struct {
	db *sqlite.DB
}

// NewManager creates a sharing manager.
func NewManager(db *sqlite.DB) *Manager {
	return &Manager{db: db}
}

// BuildPayload renders a share card from the current stats snapshot.
func (m *Manager) BuildPayload(kind ShareKind, stats domain.AggregateStats) SharePayload {
	p := SharePayload{
		ID:      uuid.NewString(),
		Kind:    kind,
		Hashtag: "#touchwood",
	}
	switch kind {
	case ShareStreak:
		p.Message = fmt.Sprintf("🔥 %d days of touching wood in a row! Best: %d.", stats.StreakDays, stats.BestStreak)
	case ShareLevel:
		p.Message = fmt.Sprintf("🌳 Reached level %d on my touch wood journey.", stats.Level)
	case ShareAchievement:
		p.Message = "🏆 New achievement unlocked on my touch wood journey!"
	case ShareChallenge:
		p.Message = fmt.Sprintf("✅ Daily challenges done — %d rituals today.", stats.TodayRituals)
	default:
		p.Message = fmt.Sprintf("🪵 %d rituals and counting.", stats.TotalRituals)
	}
	return p
}

// RecordShare persists a completed share.
func (m *Manager) RecordShare(p SharePayload, at time.Time) error {
	if err := m.db.InsertShare(p.ID, string(p.Kind), p.Message, at); err != nil {
		return fmt.Errorf("record share: %w", err)
	}
	return nil
}

// CurrentShareCount satisfies domain.ShareCountSource.
func (m *Manager) CurrentShareCount() (int, error) {
	return m.db.ShareCount()
}

// ─── Friend Feed ────────────────────────────────────────────────────────────

// FriendEntry is one row of the friend feed.
type FriendEntry struct {
	Name       string `json:"name"`
	StreakDays int    `json:"streak_days"`
	Level      int    `json:"level"`
}

// FriendFeed returns the friends leaderboard with the user's own entry mixed
// in. Friend rows are placeholders; cross-device sync supplies real ones.
func (m *Manager) FriendFeed(own domain.AggregateStats) []FriendEntry {
	feed := []FriendEntry{
		{Name: "You", StreakDays: own.StreakDays, Level: own.Level},
		{Name: "Willow", StreakDays: 12, Level: 6},
		{Name: "Ash", StreakDays: 5, Level: 3},
		{Name: "Rowan", StreakDays: 21, Level: 9},
	}
	// Sort descending by streak, insertion order on ties.
	for i := 1; i < len(feed); i++ {
		for j := i; j > 0 && feed[j].StreakDays > feed[j-1].StreakDays; j-- {
			feed[j], feed[j-1] = feed[j-1], feed[j]
		}
	}
	return feed
}

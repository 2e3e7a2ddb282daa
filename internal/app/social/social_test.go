package social_test

import (
	"strings"
	"testing"
	"time"

	"github.com/touchwood-app/touchwood/internal/app/social"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

func testManager(t *testing.T) *social.Manager {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return social.NewManager(db)
}

func TestBuildPayload_StreakCard(t *testing.T) {
	m := testManager(t)

	p := m.BuildPayload(social.ShareStreak, domain.AggregateStats{StreakDays: 7, BestStreak: 10})
	if p.ID == "" {
		t.Error("expected generated payload id")
	}
	if !strings.Contains(p.Message, "7 days") {
		t.Errorf("streak card should mention the streak, got %q", p.Message)
	}
	if p.Hashtag != "#touchwood" {
		t.Errorf("unexpected hashtag %q", p.Hashtag)
	}
}

func TestRecordShare_CountsUp(t *testing.T) {
	m := testManager(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	count, err := m.CurrentShareCount()
	if err != nil || count != 0 {
		t.Fatalf("expected empty share log, got %d (%v)", count, err)
	}

	for i := 0; i < 3; i++ {
		p := m.BuildPayload(social.ShareLevel, domain.AggregateStats{Level: 4})
		if err := m.RecordShare(p, now); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	count, err = m.CurrentShareCount()
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 shares, got %d", count)
	}
}

func TestFriendFeed_SortedByStreak(t *testing.T) {
	m := testManager(t)

	feed := m.FriendFeed(domain.AggregateStats{StreakDays: 50, Level: 12})
	if len(feed) < 2 {
		t.Fatalf("expected feed entries, got %d", len(feed))
	}
	if feed[0].Name != "You" {
		t.Errorf("longest streak should lead the feed, got %q", feed[0].Name)
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].StreakDays > feed[i-1].StreakDays {
			t.Errorf("feed out of order at %d: %d > %d", i, feed[i].StreakDays, feed[i-1].StreakDays)
		}
	}
}

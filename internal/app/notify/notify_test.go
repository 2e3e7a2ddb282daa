package notify_test

import (
	"testing"
	"time"

	"github.com/touchwood-app/touchwood/internal/app/notify"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

func testService(t *testing.T, policy domain.NotificationPolicy, now time.Time) *notify.Service {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := notify.NewServiceWithPolicy(db, policy)
	svc.SetClock(func() time.Time { return now })
	return svc
}

func note(title string) domain.Notification {
	return domain.Notification{Type: domain.NotifyAchievement, Title: title, Body: "body"}
}

func TestCreate_QueuesAndLists(t *testing.T) {
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testService(t, domain.DefaultNotificationPolicy(), noon)

	id, err := svc.Create(note("hello"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected queued notification id")
	}

	pending, err := svc.Pending(10)
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Title != "hello" {
		t.Fatalf("expected 1 pending, got %+v", pending)
	}

	if err := svc.MarkShown(id); err != nil {
		t.Fatalf("mark shown: %v", err)
	}
	pending, _ = svc.Pending(10)
	if len(pending) != 0 {
		t.Errorf("shown notification still pending: %+v", pending)
	}
}

func TestCreate_DailyCap(t *testing.T) {
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	policy := domain.NotificationPolicy{MaxPerDay: 2, QuietStart: "22:00", QuietEnd: "08:00"}
	svc := testService(t, policy, noon)

	for i := 0; i < 2; i++ {
		if id, _ := svc.Create(note("n")); id == 0 {
			t.Fatalf("notification %d should pass", i)
		}
	}
	id, err := svc.Create(note("over-cap"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id != 0 {
		t.Error("third notification should be suppressed by the daily cap")
	}

	count, _ := svc.TodayCount()
	if count != 2 {
		t.Errorf("expected 2 queued today, got %d", count)
	}
}

func TestCreate_QuietHours(t *testing.T) {
	policy := domain.DefaultNotificationPolicy() // 22:00–08:00

	lateNight := time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC)
	svc := testService(t, policy, lateNight)
	if id, _ := svc.Create(note("late")); id != 0 {
		t.Error("23:30 falls in quiet hours")
	}

	earlyMorning := time.Date(2026, 3, 1, 7, 59, 0, 0, time.UTC)
	svc = testService(t, policy, earlyMorning)
	if id, _ := svc.Create(note("early")); id != 0 {
		t.Error("07:59 falls in quiet hours")
	}

	morning := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	svc = testService(t, policy, morning)
	if id, _ := svc.Create(note("morning")); id == 0 {
		t.Error("08:00 is outside quiet hours")
	}
}

func TestNotify_SinkNeverPanics(t *testing.T) {
	noon := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := testService(t, domain.DefaultNotificationPolicy(), noon)

	svc.Notify(note("from engine"))
	pending, _ := svc.Pending(10)
	if len(pending) != 1 {
		t.Errorf("sink should queue through policy, got %d pending", len(pending))
	}
}

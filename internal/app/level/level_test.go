package level_test

import (
	"testing"

	"github.com/touchwood-app/touchwood/internal/app/level"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

func testService(t *testing.T) *level.Service {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return level.NewService(db)
}

type sinkRecorder struct {
	got []domain.Notification
}

func (s *sinkRecorder) Notify(n domain.Notification) { s.got = append(s.got, n) }

func TestXPCurve(t *testing.T) {
	if level.XPForLevel(1) != 0 {
		t.Errorf("level 1 requires 0 XP, got %d", level.XPForLevel(1))
	}
	if level.XPForLevel(2) != 120 {
		t.Errorf("level 2 requires 120 XP, got %d", level.XPForLevel(2))
	}
	// Curve is strictly increasing.
	for l := 2; l < 100; l++ {
		if level.XPForLevel(l+1) <= level.XPForLevel(l) {
			t.Fatalf("curve not increasing at level %d", l)
		}
	}
}

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int64
		want int
	}{
		{0, 1},
		{119, 1},
		{120, 2},
		{143, 2}, // XPForLevel(3) = 144
		{144, 3},
	}
	for _, c := range cases {
		if got := level.LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
	if level.LevelForXP(1<<50) != level.MaxLevel {
		t.Errorf("huge XP should cap at max level")
	}
}

func TestAddXP_Accumulates(t *testing.T) {
	svc := testService(t)

	newLevel, leveledUp, err := svc.AddXP(50)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if newLevel != 1 || leveledUp {
		t.Errorf("50 XP stays level 1, got level %d leveledUp %v", newLevel, leveledUp)
	}

	newLevel, leveledUp, err = svc.AddXP(100)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if newLevel != 2 || !leveledUp {
		t.Errorf("150 XP total should reach level 2, got %d leveledUp %v", newLevel, leveledUp)
	}

	st, _ := svc.Current()
	if st.CurrentXP != 150 {
		t.Errorf("expected 150 XP persisted, got %d", st.CurrentXP)
	}
}

func TestAddXP_RejectsNonPositive(t *testing.T) {
	svc := testService(t)
	if _, _, err := svc.AddXP(0); err == nil {
		t.Error("expected error for zero XP")
	}
	if _, _, err := svc.AddXP(-10); err == nil {
		t.Error("expected error for negative XP")
	}
}

func TestLevelUp_Notifies(t *testing.T) {
	svc := testService(t)
	sink := &sinkRecorder{}
	svc.SetNotificationSink(sink)

	if err := svc.GrantXP(200, "challenge:rituals"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if len(sink.got) != 1 {
		t.Fatalf("expected 1 level-up notification, got %d", len(sink.got))
	}
	if sink.got[0].Type != domain.NotifyLevelUp {
		t.Errorf("expected level-up type, got %q", sink.got[0].Type)
	}

	// A grant within the same level stays quiet.
	if err := svc.GrantXP(1, "challenge:rituals"); err != nil {
		t.Fatalf("grant: %v", err)
	}
	if len(sink.got) != 1 {
		t.Errorf("no notification expected without a level boundary, got %d", len(sink.got))
	}
}

func TestXPToNextLevel(t *testing.T) {
	svc := testService(t)

	remaining, err := svc.XPToNextLevel()
	if err != nil {
		t.Fatalf("remaining: %v", err)
	}
	if remaining != 120 {
		t.Errorf("fresh user needs 120 XP for level 2, got %d", remaining)
	}

	svc.AddXP(100)
	remaining, _ = svc.XPToNextLevel()
	if remaining != 20 {
		t.Errorf("expected 20 XP remaining, got %d", remaining)
	}
}

func TestProgressPct_Bounds(t *testing.T) {
	svc := testService(t)

	pct, err := svc.ProgressPct()
	if err != nil {
		t.Fatalf("pct: %v", err)
	}
	if pct != 0 {
		t.Errorf("fresh user at 0%%, got %.1f", pct)
	}

	svc.AddXP(60)
	pct, _ = svc.ProgressPct()
	if pct <= 0 || pct >= 100 {
		t.Errorf("mid-level progress out of bounds: %.1f", pct)
	}
}

package challenge_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/touchwood-app/touchwood/internal/app/challenge"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

func testEngine(t *testing.T, seed int64) (*challenge.Engine, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return challenge.NewEngine(db, rand.New(rand.NewSource(seed))), db
}

// xpRecorder counts granted XP for exactly-once assertions.
type xpRecorder struct {
	total int64
	calls int
}

func (x *xpRecorder) GrantXP(amount int64, source string) error {
	x.total += amount
	x.calls++
	return nil
}

func noon(day int) time.Time {
	return time.Date(2026, 3, day, 12, 0, 0, 0, time.UTC)
}

func insert(t *testing.T, db *sqlite.DB, c domain.DailyChallenge) {
	t.Helper()
	if err := db.InsertDailyChallenge(c); err != nil {
		t.Fatalf("insert challenge: %v", err)
	}
}

func TestRefreshDaily_DrawsTwoOrThreeDistinctTypes(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		eng, _ := testEngine(t, seed)
		set, err := eng.RefreshDaily(noon(1))
		if err != nil {
			t.Fatalf("seed %d: refresh: %v", seed, err)
		}
		if len(set) < 2 || len(set) > 3 {
			t.Errorf("seed %d: expected 2-3 challenges, got %d", seed, len(set))
		}

		seen := make(map[domain.ChallengeType]bool)
		for _, c := range set {
			if seen[c.Type] {
				t.Errorf("seed %d: duplicate type %s (draw is without replacement)", seed, c.Type)
			}
			seen[c.Type] = true
			if c.Progress != 0 || c.Completed {
				t.Errorf("seed %d: fresh challenge should start at zero", seed)
			}
		}
	}
}

func TestRefreshDaily_SameDayNoop(t *testing.T) {
	eng, _ := testEngine(t, 1)

	first, _ := eng.RefreshDaily(noon(1))
	second, err := eng.RefreshDaily(noon(1).Add(5 * time.Hour))
	if err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected same set size, got %d vs %d", len(second), len(first))
	}
	ids := make(map[string]bool)
	for _, c := range first {
		ids[c.ID] = true
	}
	for _, c := range second {
		if !ids[c.ID] {
			t.Error("same-day refresh must preserve challenge identity")
		}
	}
}

func TestRefreshDaily_NewDayReplacesSet(t *testing.T) {
	eng, db := testEngine(t, 2)

	first, _ := eng.RefreshDaily(noon(1))
	second, err := eng.RefreshDaily(noon(2))
	if err != nil {
		t.Fatalf("refresh day 2: %v", err)
	}

	for _, c := range second {
		if c.Day != "2026-03-02" {
			t.Errorf("new set should belong to day 2, got %s", c.Day)
		}
	}

	// Uncompleted day-1 instances are discarded, not carried over.
	leftovers, _ := db.ListChallengesForDay("2026-03-01")
	if len(leftovers) != 0 {
		t.Errorf("expected day-1 instances discarded, found %d", len(leftovers))
	}
	_ = first
}

func TestUpdateProgress_CompletesAtTargetRewardOnce(t *testing.T) {
	eng, db := testEngine(t, 3)
	xp := &xpRecorder{}
	eng.SetRewardGranter(xp)

	insert(t, db, domain.DailyChallenge{
		ID: "r5", Type: domain.ChallengeRituals, Description: "Complete 5 rituals today",
		Target: 5, RewardXP: 80, Day: "2026-03-01",
	})

	// 4 increments: not yet complete.
	for i := 0; i < 4; i++ {
		done, err := eng.UpdateProgress(domain.ChallengeRituals, 1, noon(1))
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if len(done) != 0 {
			t.Fatalf("completed too early at increment %d", i+1)
		}
	}

	// 5th increment completes.
	done, _ := eng.UpdateProgress(domain.ChallengeRituals, 1, noon(1))
	if len(done) != 1 || !done[0].Completed {
		t.Fatal("expected completion at target")
	}

	// 10 further updates: no double grant.
	for i := 0; i < 10; i++ {
		done, _ := eng.UpdateProgress(domain.ChallengeRituals, 1, noon(1))
		if len(done) != 0 {
			t.Fatal("completed challenge must be skipped on later updates")
		}
	}
	if xp.calls != 1 || xp.total != 80 {
		t.Errorf("reward must be granted exactly once, got %d calls / %d xp", xp.calls, xp.total)
	}
}

func TestUpdateMoodProgress_PassFail(t *testing.T) {
	eng, db := testEngine(t, 4)

	insert(t, db, domain.DailyChallenge{
		ID: "m4", Type: domain.ChallengeMood, Description: "Log a mood of 4 or better",
		Target: 4, RewardXP: 40, Day: "2026-03-01",
	})

	// Below target: no change at all, not partial credit.
	done, _ := eng.UpdateMoodProgress(3, noon(1))
	if len(done) != 0 {
		t.Fatal("mood below target must not complete")
	}
	c, _ := db.GetDailyChallenge("m4")
	if c.Progress != 0 {
		t.Errorf("mood challenge is pass/fail, progress should stay 0, got %d", c.Progress)
	}

	// At target: completes immediately.
	done, _ = eng.UpdateMoodProgress(4, noon(1))
	if len(done) != 1 {
		t.Fatal("mood at target should complete")
	}
}

func TestUpdateVarietyProgress_IdempotentMeasurement(t *testing.T) {
	eng, db := testEngine(t, 5)

	insert(t, db, domain.DailyChallenge{
		ID: "v3", Type: domain.ChallengeVariety, Description: "Perform 3 different rituals",
		Target: 3, RewardXP: 60, Day: "2026-03-01",
	})

	// Two distinct rituals, measured twice — progress is the cardinality,
	// not an accumulating count.
	_, _ = eng.UpdateVarietyProgress([]string{"a", "b"}, noon(1))
	_, _ = eng.UpdateVarietyProgress([]string{"a", "b"}, noon(1))
	c, _ := db.GetDailyChallenge("v3")
	if c.Progress != 2 {
		t.Errorf("expected progress 2, got %d", c.Progress)
	}

	done, _ := eng.UpdateVarietyProgress([]string{"a", "b", "c"}, noon(1))
	if len(done) != 1 {
		t.Fatal("three distinct rituals should complete the challenge")
	}
}

func TestUpdateTimeProgress_WindowGating(t *testing.T) {
	eng, db := testEngine(t, 6)

	insert(t, db, domain.DailyChallenge{
		ID: "tm", Type: domain.ChallengeTime, Window: domain.WindowMorning,
		Description: "Touch wood before noon", Target: 1, RewardXP: 40, Day: "2026-03-01",
	})

	// Afternoon completion does not count for a morning challenge.
	done, _ := eng.UpdateTimeProgress(15, noon(1))
	if len(done) != 0 {
		t.Fatal("15:00 must not complete a morning challenge")
	}

	done, _ = eng.UpdateTimeProgress(8, noon(1))
	if len(done) != 1 {
		t.Fatal("08:00 should complete a morning challenge")
	}
}

func TestUpdateProgress_MultipleMatchingInstances(t *testing.T) {
	eng, db := testEngine(t, 7)

	// Two rituals-type instances active at once: both receive the update.
	insert(t, db, domain.DailyChallenge{
		ID: "a", Type: domain.ChallengeRituals, Description: "x", Target: 1, Day: "2026-03-01",
	})
	insert(t, db, domain.DailyChallenge{
		ID: "b", Type: domain.ChallengeRituals, Description: "y", Target: 1, Day: "2026-03-01",
	})

	done, _ := eng.UpdateProgress(domain.ChallengeRituals, 1, noon(1))
	if len(done) != 2 {
		t.Errorf("expected both instances completed, got %d", len(done))
	}
}

package mood_test

import (
	"errors"
	"testing"
	"time"

	"github.com/touchwood-app/touchwood/internal/app/mood"
	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

func testEngine(t *testing.T) *mood.Engine {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return mood.NewEngine(db)
}

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func addMoods(t *testing.T, engine *mood.Engine, ritual string, moods []int, startDay int) {
	t.Helper()
	for i, m := range moods {
		if _, err := engine.AddEntry(ritual, ritual, m, "", at(startDay+i, 10)); err != nil {
			t.Fatalf("add entry %d: %v", i, err)
		}
	}
}

func TestAddEntry_ValidatesMood(t *testing.T) {
	engine := testEngine(t)

	for _, bad := range []int{0, -1, 6} {
		if _, err := engine.AddEntry("r", "R", bad, "", at(1, 10)); !errors.Is(err, domain.ErrInvalidMood) {
			t.Errorf("mood %d: expected ErrInvalidMood, got %v", bad, err)
		}
	}
	entry, err := engine.AddEntry("r", "R", 3, "fine", at(1, 10))
	if err != nil {
		t.Fatalf("valid mood rejected: %v", err)
	}
	if entry.ID == 0 {
		t.Error("expected assigned entry id")
	}
}

// ─── Trend Classification ───────────────────────────────────────────────────

func TestTrend_RisingSequenceImproves(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{2, 2, 2, 5, 5, 5}, 1)

	report, err := engine.Report(at(6, 12))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.OverallTrend != domain.TrendImproving {
		t.Errorf("expected improving, got %q", report.OverallTrend)
	}
}

func TestTrend_FallingSequenceDeclines(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{5, 5, 5, 2, 2, 2}, 1)

	report, err := engine.Report(at(6, 12))
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.OverallTrend != domain.TrendDeclining {
		t.Errorf("expected declining, got %q", report.OverallTrend)
	}
}

func TestTrend_FewSamplesIsStable(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{1, 5}, 1)

	report, _ := engine.Report(at(3, 12))
	if report.OverallTrend != domain.TrendStable {
		t.Errorf("under 3 samples must be stable, got %q", report.OverallTrend)
	}
}

func TestTrend_OddCountSplitsFirstHalfSmaller(t *testing.T) {
	engine := testEngine(t)
	// Split 2|3: first avg 2.0, second avg (2+5+5)/3 ≈ 4.0 → improving.
	addMoods(t, engine, "knock", []int{2, 2, 2, 5, 5}, 1)

	report, _ := engine.Report(at(6, 12))
	if report.OverallTrend != domain.TrendImproving {
		t.Errorf("expected improving with 2|3 split, got %q", report.OverallTrend)
	}
}

// ─── Mood Streaks ───────────────────────────────────────────────────────────

func TestStreaks_ClassifiedByAverage(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{5, 4, 5}, 1) // avg 4.67 → positive

	report, _ := engine.Report(at(4, 12))
	if len(report.Streaks) != 1 {
		t.Fatalf("expected 1 streak, got %d", len(report.Streaks))
	}
	s := report.Streaks[0]
	if s.Type != domain.MoodStreakPositive {
		t.Errorf("expected positive, got %q", s.Type)
	}
	if s.Length != 3 {
		t.Errorf("expected length 3, got %d", s.Length)
	}
}

func TestStreaks_LowAverageUsesCatchAllLabel(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{1, 2, 2}, 1) // avg < 3.0

	report, _ := engine.Report(at(4, 12))
	if len(report.Streaks) != 1 {
		t.Fatalf("expected 1 streak, got %d", len(report.Streaks))
	}
	if report.Streaks[0].Type != domain.MoodStreakImproving {
		t.Errorf("low-average streak labels as improving, got %q", report.Streaks[0].Type)
	}
}

func TestStreaks_DayGapBreaksRun(t *testing.T) {
	engine := testEngine(t)
	// Days 1,2,3 then a gap to day 6,7,8: two separate runs.
	addMoods(t, engine, "knock", []int{3, 3, 3}, 1)
	addMoods(t, engine, "knock", []int{3, 3, 3}, 6)

	report, _ := engine.Report(at(9, 12))
	if len(report.Streaks) != 2 {
		t.Fatalf("expected 2 streaks split by the gap, got %d", len(report.Streaks))
	}
	for _, s := range report.Streaks {
		if s.Type != domain.MoodStreakNeutral {
			t.Errorf("avg 3.0 should classify neutral, got %q", s.Type)
		}
	}
}

func TestStreaks_ShortRunsDropped(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{4, 4}, 1)

	report, _ := engine.Report(at(3, 12))
	if len(report.Streaks) != 0 {
		t.Errorf("runs under 3 entries are not streaks, got %d", len(report.Streaks))
	}
}

func TestStreaks_SameDayEntriesExtendRun(t *testing.T) {
	engine := testEngine(t)
	// Two entries on day 1, one on day 2: gap 0 then 1 → one run of 3.
	engine.AddEntry("knock", "knock", 4, "", at(1, 9))
	engine.AddEntry("knock", "knock", 4, "", at(1, 20))
	engine.AddEntry("knock", "knock", 4, "", at(2, 9))

	report, _ := engine.Report(at(3, 12))
	if len(report.Streaks) != 1 || report.Streaks[0].Length != 3 {
		t.Fatalf("same-day entries belong to one run, got %+v", report.Streaks)
	}
}

// ─── Series & Correlation ───────────────────────────────────────────────────

func TestWeeklySeries_BucketsByDay(t *testing.T) {
	engine := testEngine(t)
	engine.AddEntry("knock", "knock", 2, "", at(10, 9))
	engine.AddEntry("knock", "knock", 4, "", at(10, 20))
	engine.AddEntry("knock", "knock", 5, "", at(11, 9))
	engine.AddEntry("knock", "knock", 5, "", at(1, 9)) // outside the 7-day window

	report, _ := engine.Report(at(12, 12))
	if len(report.Weekly) != 2 {
		t.Fatalf("expected 2 daily points in window, got %d", len(report.Weekly))
	}
	first := report.Weekly[0]
	if first.AverageMood != 3.0 || first.Count != 2 {
		t.Errorf("day 10 should average 3.0 over 2 entries, got %.1f/%d", first.AverageMood, first.Count)
	}
	if report.Monthly[0].Count != 1 {
		t.Errorf("monthly window should still include day 1, got %+v", report.Monthly[0])
	}
}

func TestByRitual_SortedByAverage(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "gratitude-touch", []int{5, 5, 5}, 1)
	addMoods(t, engine, "lucky-tap", []int{2, 2, 2}, 1)

	report, _ := engine.Report(at(4, 12))
	if len(report.ByRitual) != 2 {
		t.Fatalf("expected 2 rituals, got %d", len(report.ByRitual))
	}
	if report.ByRitual[0].RitualName != "gratitude-touch" {
		t.Errorf("highest-average ritual first, got %q", report.ByRitual[0].RitualName)
	}
	if report.ByRitual[0].Trend != domain.TrendStable {
		t.Errorf("flat sequence should be stable, got %q", report.ByRitual[0].Trend)
	}
}

func TestTimeOfDayBuckets(t *testing.T) {
	engine := testEngine(t)
	engine.AddEntry("r", "r", 5, "", at(1, 8))  // morning
	engine.AddEntry("r", "r", 2, "", at(1, 21)) // evening

	report, _ := engine.Report(at(2, 12))
	if report.ByTimeOfDay["morning"] != 5.0 {
		t.Errorf("morning average: got %.1f", report.ByTimeOfDay["morning"])
	}
	if report.ByTimeOfDay["evening"] != 2.0 {
		t.Errorf("evening average: got %.1f", report.ByTimeOfDay["evening"])
	}
	if _, ok := report.ByTimeOfDay["night"]; ok {
		t.Error("empty bucket must be absent, not zero")
	}
}

// ─── Insights ───────────────────────────────────────────────────────────────

func TestInsights_HighPriorityFirst(t *testing.T) {
	engine := testEngine(t)
	// Low week average trips the high-priority rough-week heuristic; the
	// best-time and best-ritual heuristics fire first in generation order.
	addMoods(t, engine, "knock", []int{2, 2, 2, 2}, 8)

	report, _ := engine.Report(at(12, 12))
	if len(report.Insights) == 0 {
		t.Fatal("expected insights")
	}
	if report.Insights[0].ID != "rough-week" {
		t.Errorf("high-priority insight must lead, got %q", report.Insights[0].ID)
	}
	if report.Insights[0].Priority != domain.PriorityHigh {
		t.Errorf("expected high priority, got %d", report.Insights[0].Priority)
	}
	// Remaining insights keep generation order.
	if len(report.Insights) >= 3 {
		if report.Insights[1].ID != "best-time" || report.Insights[2].ID != "best-ritual" {
			t.Errorf("normal insights out of order: %q, %q", report.Insights[1].ID, report.Insights[2].ID)
		}
	}
}

func TestInsights_PositiveWeek(t *testing.T) {
	engine := testEngine(t)
	addMoods(t, engine, "knock", []int{5, 4, 5}, 10)

	report, _ := engine.Report(at(12, 12))
	var found bool
	for _, in := range report.Insights {
		if in.ID == "positive-week" {
			found = true
			if in.Priority != domain.PriorityNormal {
				t.Errorf("positive week is normal priority, got %d", in.Priority)
			}
		}
	}
	if !found {
		t.Error("expected positive-week insight for a 4+ average")
	}
}

func TestReport_EmptyLog(t *testing.T) {
	engine := testEngine(t)

	report, err := engine.Report(at(1, 12))
	if err != nil {
		t.Fatalf("report on empty log: %v", err)
	}
	if report.EntryCount != 0 || len(report.Weekly) != 0 || len(report.Streaks) != 0 || len(report.Insights) != 0 {
		t.Errorf("empty log should yield empty report, got %+v", report)
	}
	if report.OverallTrend != domain.TrendStable {
		t.Errorf("empty log trend should be stable, got %q", report.OverallTrend)
	}
}

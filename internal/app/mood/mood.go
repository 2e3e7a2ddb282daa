// Package mood implements mood analytics over the append-only mood log:
// windowed trend series, ritual/mood correlation, streak runs and textual
// insights. Every derived series is recomputed in full from the log; at the
// scale of one user's daily entries that is cheap and keeps the log the only
// source of truth.
package mood

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/metrics"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// trendThreshold is the half-to-half average delta that counts as movement.
const trendThreshold = 0.3

// Engine owns the mood log and its derived series.
type Engine struct {
	db *sqlite.DB
}

// NewEngine creates a mood analytics engine.
func NewEngine(db *sqlite.DB) *Engine {
	return &Engine{db: db}
}

// AddEntry appends a mood observation to the log.
func (e *Engine) AddEntry(ritualID, ritualName string, mood int, note string, at time.Time) (domain.MoodEntry, error) {
	if mood < 1 || mood > 5 {
		return domain.MoodEntry{}, domain.ErrInvalidMood
	}
	entry := domain.MoodEntry{
		RitualID:   ritualID,
		RitualName: ritualName,
		Mood:       mood,
		Note:       note,
		Timestamp:  at,
	}
	id, err := e.db.InsertMoodEntry(entry)
	if err != nil {
		return domain.MoodEntry{}, fmt.Errorf("insert mood entry: %w", err)
	}
	entry.ID = id
	metrics.MoodEntries.WithLabelValues(strconv.Itoa(mood)).Inc()
	return entry, nil
}

// Entries returns the full mood log, oldest first.
func (e *Engine) Entries() ([]domain.MoodEntry, error) {
	return e.db.ListMoodEntries()
}

// Report recomputes every derived series from the log.
func (e *Engine) Report(now time.Time) (domain.MoodReport, error) {
	entries, err := e.db.ListMoodEntries()
	if err != nil {
		return domain.MoodReport{}, fmt.Errorf("load mood log: %w", err)
	}

	report := domain.MoodReport{
		Weekly:       dailySeries(entries, now, 7),
		Monthly:      dailySeries(entries, now, 30),
		ByRitual:     ritualCorrelation(entries),
		ByTimeOfDay:  timeOfDayAverages(entries),
		Streaks:      detectStreaks(entries),
		OverallTrend: classifyTrend(moodsOf(entries)),
		EntryCount:   len(entries),
	}
	report.Insights = generateInsights(report, entries, now)
	return report, nil
}

// ─── Windowed Series ────────────────────────────────────────────────────────

// dailySeries buckets the last `days` calendar days into one data point per
// day that has entries, oldest first.
func dailySeries(entries []domain.MoodEntry, now time.Time, days int) []domain.MoodDataPoint {
	cutoff := domain.DayOf(now).AddDate(0, 0, -(days - 1))

	type bucket struct {
		sum   int
		count int
	}
	byDay := map[string]*bucket{}
	for _, e := range entries {
		day := domain.DayOf(e.Timestamp)
		if day.Before(cutoff) {
			continue
		}
		key := domain.DayKey(day)
		b := byDay[key]
		if b == nil {
			b = &bucket{}
			byDay[key] = b
		}
		b.sum += e.Mood
		b.count++
	}

	var series []domain.MoodDataPoint
	for i := 0; i < days; i++ {
		day := cutoff.AddDate(0, 0, i)
		b := byDay[domain.DayKey(day)]
		if b == nil {
			continue
		}
		series = append(series, domain.MoodDataPoint{
			Date:        day,
			AverageMood: float64(b.sum) / float64(b.count),
			Count:       b.count,
		})
	}
	return series
}

// ─── Ritual Correlation ─────────────────────────────────────────────────────

func ritualCorrelation(entries []domain.MoodEntry) []domain.RitualMoodData {
	type group struct {
		name  string
		moods []int
	}
	byName := map[string]*group{}
	var order []string
	for _, e := range entries {
		g := byName[e.RitualName]
		if g == nil {
			g = &group{name: e.RitualName}
			byName[e.RitualName] = g
			order = append(order, e.RitualName)
		}
		g.moods = append(g.moods, e.Mood)
	}

	var out []domain.RitualMoodData
	for _, name := range order {
		g := byName[name]
		out = append(out, domain.RitualMoodData{
			RitualName:  g.name,
			AverageMood: average(g.moods),
			Count:       len(g.moods),
			Trend:       classifyTrend(g.moods),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AverageMood > out[j].AverageMood
	})
	return out
}

// classifyTrend splits the sample sequence in half by position (the first
// half gets the smaller share on odd counts) and compares the half averages.
// Fewer than 3 samples reads as stable.
func classifyTrend(moods []int) domain.Trend {
	if len(moods) < 3 {
		return domain.TrendStable
	}
	mid := len(moods) / 2
	delta := average(moods[mid:]) - average(moods[:mid])
	switch {
	case delta > trendThreshold:
		return domain.TrendImproving
	case delta < -trendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}

// ─── Time-of-Day Buckets ────────────────────────────────────────────────────

func timeOfDayBucket(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 6 && h < 12:
		return "morning"
	case h >= 12 && h < 18:
		return "afternoon"
	case h >= 18:
		return "evening"
	default:
		return "night"
	}
}

func timeOfDayAverages(entries []domain.MoodEntry) map[string]float64 {
	sums := map[string]int{}
	counts := map[string]int{}
	for _, e := range entries {
		b := timeOfDayBucket(e.Timestamp)
		sums[b] += e.Mood
		counts[b]++
	}
	out := map[string]float64{}
	for b, c := range counts {
		out[b] = float64(sums[b]) / float64(c)
	}
	return out
}

// ─── Mood Streaks ───────────────────────────────────────────────────────────

// detectStreaks finds maximal runs of entries whose calendar-day gap from the
// previous entry is at most one. Runs shorter than 3 entries are dropped.
// A low-average run is labeled "improving": that is the catch-all bucket, not
// an upward-trend claim.
func detectStreaks(entries []domain.MoodEntry) []domain.MoodStreak {
	var streaks []domain.MoodStreak
	var run []domain.MoodEntry

	flush := func() {
		if len(run) >= 3 {
			streaks = append(streaks, buildStreak(run))
		}
		run = nil
	}

	for _, e := range entries {
		if len(run) > 0 {
			gap := domain.DaysBetween(run[len(run)-1].Timestamp, e.Timestamp)
			if gap > 1 {
				flush()
			}
		}
		run = append(run, e)
	}
	flush()
	return streaks
}

func buildStreak(run []domain.MoodEntry) domain.MoodStreak {
	avg := average(moodsOf(run))
	var kind domain.MoodStreakType
	switch {
	case avg >= 4.0:
		kind = domain.MoodStreakPositive
	case avg >= 3.0:
		kind = domain.MoodStreakNeutral
	default:
		kind = domain.MoodStreakImproving
	}
	return domain.MoodStreak{
		StartDate:   run[0].Timestamp,
		EndDate:     run[len(run)-1].Timestamp,
		Length:      len(run),
		AverageMood: avg,
		Type:        kind,
	}
}

// ─── Insights ───────────────────────────────────────────────────────────────

// generateInsights runs a fixed, ordered set of heuristics, each yielding at
// most one insight, then moves high-priority insights to the front while
// preserving relative order within each priority.
func generateInsights(report domain.MoodReport, entries []domain.MoodEntry, now time.Time) []domain.MoodInsight {
	var insights []domain.MoodInsight

	if bucket, avg, ok := bestTimeOfDay(report.ByTimeOfDay); ok {
		insights = append(insights, domain.MoodInsight{
			ID:    "best-time",
			Title: "Your best time of day",
			Body:  fmt.Sprintf("Rituals in the %s leave you feeling best (%.1f average).", bucket, avg),
		})
	}

	if len(report.ByRitual) > 0 && report.ByRitual[0].Count >= 3 {
		top := report.ByRitual[0]
		insights = append(insights, domain.MoodInsight{
			ID:    "best-ritual",
			Title: "Your strongest ritual",
			Body:  fmt.Sprintf("%q averages %.1f across %d completions.", top.RitualName, top.AverageMood, top.Count),
		})
	}

	if avg, count := rollingAverage(entries, now, 7); count >= 3 {
		switch {
		case avg >= 4.0:
			insights = append(insights, domain.MoodInsight{
				ID:    "positive-week",
				Title: "Great week",
				Body:  fmt.Sprintf("Your mood averaged %.1f over the last 7 days. Keep touching wood.", avg),
			})
		case avg <= 2.5:
			insights = append(insights, domain.MoodInsight{
				ID:       "rough-week",
				Title:    "Rough patch",
				Body:     fmt.Sprintf("Your mood averaged %.1f over the last 7 days. Consider a calm-category ritual.", avg),
				Priority: domain.PriorityHigh,
			})
		}
	}

	// Stable partition: high priority first, order preserved within groups.
	var ordered []domain.MoodInsight
	for _, in := range insights {
		if in.Priority == domain.PriorityHigh {
			ordered = append(ordered, in)
		}
	}
	for _, in := range insights {
		if in.Priority != domain.PriorityHigh {
			ordered = append(ordered, in)
		}
	}
	return ordered
}

func bestTimeOfDay(byBucket map[string]float64) (string, float64, bool) {
	best, bestAvg := "", 0.0
	// Fixed iteration order keeps ties deterministic.
	for _, b := range []string{"morning", "afternoon", "evening", "night"} {
		if avg, ok := byBucket[b]; ok && avg > bestAvg {
			best, bestAvg = b, avg
		}
	}
	return best, bestAvg, best != ""
}

func rollingAverage(entries []domain.MoodEntry, now time.Time, days int) (float64, int) {
	cutoff := domain.DayOf(now).AddDate(0, 0, -(days - 1))
	sum, count := 0, 0
	for _, e := range entries {
		if domain.DayOf(e.Timestamp).Before(cutoff) {
			continue
		}
		sum += e.Mood
		count++
	}
	if count == 0 {
		return 0, 0
	}
	return float64(sum) / float64(count), count
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func moodsOf(entries []domain.MoodEntry) []int {
	moods := make([]int, len(entries))
	for i, e := range entries {
		moods[i] = e.Mood
	}
	return moods
}

func average(moods []int) float64 {
	if len(moods) == 0 {
		return 0
	}
	sum := 0
	for _, m := range moods {
		sum += m
	}
	return float64(sum) / float64(len(moods))
}

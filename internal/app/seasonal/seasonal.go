// Package seasonal implements the seasonal event engine: a yearly calendar of
// time-windowed events with their own challenges and unlockable special
// rituals. Unlocks are monotonic; usability additionally requires the owning
// event to be currently active.
package seasonal

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/metrics"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// RewardGranter receives XP for completed event challenges.
type RewardGranter interface {
	GrantXP(amount int64, source string) error
}

// Engine drives event challenge progress and special ritual unlocks.
// Level, streak, achievement and share predicates are evaluated against
// snapshots from the wired sources; the engine owns only event progress.
type Engine struct {
	db           *sqlite.DB
	rewards      RewardGranter
	sink         domain.NotificationSink
	levels       domain.LevelSource
	streaks      domain.StreakSource
	achievements domain.AchievementSource
	shares       domain.ShareCountSource
}

// NewEngine creates a seasonal event engine.
func NewEngine(db *sqlite.DB) *Engine {
	return &Engine{db: db}
}

// SetRewardGranter wires where challenge XP is deposited.
func (e *Engine) SetRewardGranter(r RewardGranter) { e.rewards = r }

// SetNotificationSink wires where unlocks and completions are announced.
func (e *Engine) SetNotificationSink(s domain.NotificationSink) { e.sink = s }

// SetSources wires the external stat sources consulted by unlock checks.
// Any nil source makes its requirement kind evaluate to false.
func (e *Engine) SetSources(l domain.LevelSource, s domain.StreakSource, a domain.AchievementSource, sh domain.ShareCountSource) {
	e.levels, e.streaks, e.achievements, e.shares = l, s, a, sh
}

// ─── Calendar ───────────────────────────────────────────────────────────────

// Calendar is the current/upcoming/past partition of a year's events.
type Calendar struct {
	Current  []domain.SeasonalEvent `json:"current"`
	Upcoming []domain.SeasonalEvent `json:"upcoming"` // ascending by start
	Past     []domain.SeasonalEvent `json:"past"`     // descending by end
}

// PartitionAt classifies this year's events relative to now. The partition is
// a pure recomputation; nothing about it is persisted.
func (e *Engine) PartitionAt(now time.Time) Calendar {
	var cal Calendar
	for _, ev := range EventsForYear(now.Year()) {
		switch {
		case ev.IsActive(now):
			cal.Current = append(cal.Current, ev)
		case ev.StartDate.After(now):
			cal.Upcoming = append(cal.Upcoming, ev)
		default:
			cal.Past = append(cal.Past, ev)
		}
	}
	sort.Slice(cal.Upcoming, func(i, j int) bool {
		return cal.Upcoming[i].StartDate.Before(cal.Upcoming[j].StartDate)
	})
	sort.Slice(cal.Past, func(i, j int) bool {
		return cal.Past[i].EndDate.After(cal.Past[j].EndDate)
	})
	return cal
}

// ActiveEvents returns the events whose window contains now.
func (e *Engine) ActiveEvents(now time.Time) []domain.SeasonalEvent {
	return e.PartitionAt(now).Current
}

// Event looks up an event by id within this year's calendar.
func (e *Engine) Event(id string, now time.Time) (domain.SeasonalEvent, error) {
	for _, ev := range EventsForYear(now.Year()) {
		if ev.ID == id {
			return ev, nil
		}
	}
	return domain.SeasonalEvent{}, domain.ErrEventNotFound
}

// ─── Ritual Completion Flow ─────────────────────────────────────────────────

// CompleteRitual routes a ritual completion into every currently-active
// event: rituals-type challenges advance for any ritual, special_rituals-type
// challenges only when the ritual belongs to the event's own set. Challenge
// rewards follow the exactly-once discipline. After any progress change the
// event's aggregate progress fraction is recomputed and unlock checks re-run.
func (e *Engine) CompleteRitual(ritualID string, now time.Time) error {
	for _, ev := range e.ActiveEvents(now) {
		touched := false
		for _, ch := range ev.Challenges {
			switch ch.Type {
			case domain.EventChallengeRituals:
				// any ritual counts
			case domain.EventChallengeSpecialRituals:
				if !eventOwnsRitual(ev, ritualID) {
					continue
				}
			default:
				continue
			}
			if err := e.advanceChallenge(ev, ch, now); err != nil {
				return err
			}
			touched = true
		}
		if touched {
			if err := e.refreshProgress(ev, now); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) advanceChallenge(ev domain.SeasonalEvent, ch domain.EventChallenge, now time.Time) error {
	st, err := e.db.AddEventChallengeProgress(ch.ID, ev.ID, 1, ch.Target)
	if err != nil {
		return fmt.Errorf("advance event challenge %s: %w", ch.ID, err)
	}
	if st.Completed || st.Progress < ch.Target {
		return nil
	}

	isNew, err := e.db.CompleteEventChallenge(ch.ID, now)
	if err != nil {
		return fmt.Errorf("complete event challenge %s: %w", ch.ID, err)
	}
	if !isNew {
		return nil
	}

	if e.rewards != nil {
		if err := e.rewards.GrantXP(ch.RewardXP, "event:"+ev.ID); err != nil {
			return fmt.Errorf("grant event reward: %w", err)
		}
	}
	if e.sink != nil {
		e.sink.Notify(domain.Notification{
			Type:  domain.NotifyChallengeComplete,
			Title: ev.Name + " challenge complete!",
			Body:  ch.Description,
		})
	}
	metrics.EventChallengesCompleted.WithLabelValues(ev.ID).Inc()
	return nil
}

// refreshProgress recomputes completedChallenges/totalChallenges, persists
// the fraction, and re-runs unlock checks against the fresh value.
func (e *Engine) refreshProgress(ev domain.SeasonalEvent, now time.Time) error {
	fraction, err := e.computeProgress(ev)
	if err != nil {
		return err
	}
	key := "event_progress_" + ev.ID
	if err := e.db.SetState(key, strconv.FormatFloat(fraction, 'f', -1, 64)); err != nil {
		return fmt.Errorf("save event progress: %w", err)
	}
	return e.CheckUnlocks(ev, now)
}

func (e *Engine) computeProgress(ev domain.SeasonalEvent) (float64, error) {
	if len(ev.Challenges) == 0 {
		return 0, nil
	}
	completed, err := e.db.CompletedEventChallengeCount(ev.ID)
	if err != nil {
		return 0, fmt.Errorf("count completed event challenges: %w", err)
	}
	return float64(completed) / float64(len(ev.Challenges)), nil
}

// EventProgress returns the persisted aggregate progress fraction (0..1).
func (e *Engine) EventProgress(eventID string) (float64, error) {
	v, err := e.db.GetState("event_progress_" + eventID)
	if err != nil {
		return 0, fmt.Errorf("get event progress: %w", err)
	}
	if v == "" {
		return 0, nil
	}
	fraction, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, nil
	}
	return fraction, nil
}

// EarnedRewards returns the event rewards whose progress threshold is met.
func (e *Engine) EarnedRewards(ev domain.SeasonalEvent) ([]domain.EventReward, error) {
	fraction, err := e.EventProgress(ev.ID)
	if err != nil {
		return nil, err
	}
	var earned []domain.EventReward
	for _, r := range ev.Rewards {
		if fraction >= r.RequiredProgress {
			earned = append(earned, r)
		}
	}
	return earned, nil
}

// ─── Special Ritual Unlocks ─────────────────────────────────────────────────

// CheckUnlocks evaluates every locked special ritual of an event and unlocks
// the ones whose requirement now holds. Unlocks are monotonic.
func (e *Engine) CheckUnlocks(ev domain.SeasonalEvent, now time.Time) error {
	for _, r := range ev.SpecialRituals {
		unlocked, err := e.db.IsRitualUnlocked(r.ID)
		if err != nil {
			return err
		}
		if unlocked {
			continue
		}
		met, err := e.requirementMet(r.Unlock, ev)
		if err != nil {
			return err
		}
		if !met {
			continue
		}

		isNew, err := e.db.UnlockRitual(r.ID, ev.ID, now)
		if err != nil {
			return fmt.Errorf("unlock ritual %s: %w", r.ID, err)
		}
		if !isNew {
			continue
		}
		if e.sink != nil {
			e.sink.Notify(domain.Notification{
				Type:  domain.NotifyRitualUnlocked,
				Title: "New ritual unlocked!",
				Body:  fmt.Sprintf("%s — %s", r.Name, r.Description),
			})
		}
		metrics.RitualsUnlocked.WithLabelValues(ev.ID).Inc()
	}
	return nil
}

// CheckAllUnlocks re-runs unlock checks for every currently-active event.
// Called after level-ups, streak advances, achievement unlocks and shares,
// whose predicates this engine does not own.
func (e *Engine) CheckAllUnlocks(now time.Time) error {
	for _, ev := range e.ActiveEvents(now) {
		if err := e.CheckUnlocks(ev, now); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) requirementMet(req domain.UnlockRequirement, ev domain.SeasonalEvent) (bool, error) {
	switch req.Kind {
	case domain.UnlockEventProgress:
		fraction, err := e.EventProgress(ev.ID)
		if err != nil {
			return false, err
		}
		return fraction >= req.Fraction, nil
	case domain.UnlockLevel:
		if e.levels == nil {
			return false, nil
		}
		level, err := e.levels.CurrentLevel()
		if err != nil {
			return false, err
		}
		return level >= req.Level, nil
	case domain.UnlockStreak:
		if e.streaks == nil {
			return false, nil
		}
		days, err := e.streaks.CurrentStreakDays()
		if err != nil {
			return false, err
		}
		return days >= req.StreakDays, nil
	case domain.UnlockAchievement:
		if e.achievements == nil {
			return false, nil
		}
		return e.achievements.IsUnlocked(req.AchievementID)
	case domain.UnlockSocialShare:
		if e.shares == nil {
			return false, nil
		}
		count, err := e.shares.CurrentShareCount()
		if err != nil {
			return false, err
		}
		return count >= req.Shares, nil
	default:
		return false, nil
	}
}

// ─── Availability & Usage ───────────────────────────────────────────────────

// IsRitualUnlocked reports whether a special ritual has ever been unlocked.
// Unlock state survives the event window.
func (e *Engine) IsRitualUnlocked(ritualID string) (bool, error) {
	return e.db.IsRitualUnlocked(ritualID)
}

// AvailableRituals returns the special rituals usable right now: unlocked,
// owning event currently active, and usage cap (if any) unreached.
func (e *Engine) AvailableRituals(now time.Time) ([]domain.SpecialRitual, error) {
	var available []domain.SpecialRitual
	for _, ev := range e.ActiveEvents(now) {
		for _, r := range ev.SpecialRituals {
			unlocked, err := e.db.IsRitualUnlocked(r.ID)
			if err != nil {
				return nil, err
			}
			if !unlocked {
				continue
			}
			if r.Limited() {
				usage, err := e.db.RitualUsage(r.ID)
				if err != nil {
					return nil, err
				}
				if usage >= r.UsageLimit {
					continue
				}
			}
			available = append(available, r)
		}
	}
	return available, nil
}

// UseRitual performs a special ritual, bumping its usage counter. The ritual
// must be unlocked, its owning event active, and its cap unreached.
func (e *Engine) UseRitual(ritualID string, now time.Time) error {
	ritual, ev, found := e.findRitual(ritualID, now)
	if !found {
		return domain.ErrRitualNotFound
	}
	unlocked, err := e.db.IsRitualUnlocked(ritualID)
	if err != nil {
		return err
	}
	if !unlocked {
		return domain.ErrRitualLocked
	}
	if !ev.IsActive(now) {
		return domain.ErrEventNotActive
	}
	if ritual.Limited() {
		usage, err := e.db.RitualUsage(ritualID)
		if err != nil {
			return err
		}
		if usage >= ritual.UsageLimit {
			return domain.ErrUsageLimitReached
		}
	}
	return e.db.IncrementRitualUsage(ritualID)
}

func (e *Engine) findRitual(ritualID string, now time.Time) (domain.SpecialRitual, domain.SeasonalEvent, bool) {
	for _, ev := range EventsForYear(now.Year()) {
		for _, r := range ev.SpecialRituals {
			if r.ID == ritualID {
				return r, ev, true
			}
		}
	}
	return domain.SpecialRitual{}, domain.SeasonalEvent{}, false
}

func eventOwnsRitual(ev domain.SeasonalEvent, ritualID string) bool {
	for _, r := range ev.SpecialRituals {
		if r.ID == ritualID {
			return true
		}
	}
	return false
}

// Package challenge implements the daily challenge engine. A fresh set of
// 2–3 challenges is drawn from the five template types each calendar day;
// progress flows in from completion events and rewards are granted exactly
// once per instance.
package challenge

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/metrics"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// RewardGranter receives challenge rewards as they are granted.
type RewardGranter interface {
	GrantXP(amount int64, source string) error
}

// templates is the pool each day's challenges are instantiated from,
// one candidate list per type.
var templates = map[domain.ChallengeType][]domain.ChallengeTemplate{
	domain.ChallengeRituals: {
		{Type: domain.ChallengeRituals, Target: 3, Description: "Complete 3 rituals today", RewardXP: 50, RewardPoints: 10},
		{Type: domain.ChallengeRituals, Target: 5, Description: "Complete 5 rituals today", RewardXP: 80, RewardPoints: 15},
	},
	domain.ChallengeStreak: {
		{Type: domain.ChallengeStreak, Target: 1, Description: "Keep your streak alive today", RewardXP: 40, RewardPoints: 10},
	},
	domain.ChallengeMood: {
		{Type: domain.ChallengeMood, Target: 4, Description: "Log a mood of 4 or better", RewardXP: 40, RewardPoints: 10},
		{Type: domain.ChallengeMood, Target: 5, Description: "Log a perfect mood", RewardXP: 60, RewardPoints: 15},
	},
	domain.ChallengeVariety: {
		{Type: domain.ChallengeVariety, Target: 3, Description: "Perform 3 different rituals", RewardXP: 60, RewardPoints: 12},
	},
	domain.ChallengeTime: {
		{Type: domain.ChallengeTime, Window: domain.WindowMorning, Target: 1, Description: "Touch wood before noon", RewardXP: 40, RewardPoints: 10},
		{Type: domain.ChallengeTime, Window: domain.WindowEvening, Target: 1, Description: "Touch wood in the evening", RewardXP: 40, RewardPoints: 10},
	},
}

// Engine manages the day-scoped challenge set.
type Engine struct {
	db      *sqlite.DB
	rng     *rand.Rand
	rewards RewardGranter
	sink    domain.NotificationSink
}

// NewEngine creates a challenge engine. rng drives the daily template draw;
// tests supply a deterministic source.
func NewEngine(db *sqlite.DB, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{db: db, rng: rng}
}

// SetRewardGranter wires where completed-challenge XP goes.
func (e *Engine) SetRewardGranter(r RewardGranter) { e.rewards = r }

// SetNotificationSink wires where completion events are announced.
func (e *Engine) SetNotificationSink(s domain.NotificationSink) { e.sink = s }

// RefreshDaily ensures the challenge set belongs to now's calendar day.
// Within the same day it is a no-op returning the existing set. Across a day
// boundary it discards uncompleted prior instances and draws 2–3 template
// types uniformly without replacement from the five fixed types.
func (e *Engine) RefreshDaily(now time.Time) ([]domain.DailyChallenge, error) {
	today := domain.DayKey(now)

	lastRefresh, err := e.db.GetState("challenges_last_refresh")
	if err != nil {
		return nil, fmt.Errorf("get last refresh: %w", err)
	}
	if lastRefresh == today {
		return e.db.ListChallengesForDay(today)
	}

	if _, err := e.db.DeleteStaleChallenges(today); err != nil {
		return nil, fmt.Errorf("discard stale challenges: %w", err)
	}

	count := 2 + e.rng.Intn(2) // 2 or 3
	drawn := e.drawTypes(count)

	var set []domain.DailyChallenge
	for _, typ := range drawn {
		pool := templates[typ]
		tmpl := pool[e.rng.Intn(len(pool))]

		c := domain.DailyChallenge{
			ID:           uuid.NewString(),
			Type:         tmpl.Type,
			Window:       tmpl.Window,
			Description:  tmpl.Description,
			Target:       tmpl.Target,
			RewardXP:     tmpl.RewardXP,
			RewardPoints: tmpl.RewardPoints,
			Day:          today,
		}
		if err := e.db.InsertDailyChallenge(c); err != nil {
			return nil, fmt.Errorf("insert challenge: %w", err)
		}
		set = append(set, c)
	}

	if err := e.db.SetState("challenges_last_refresh", today); err != nil {
		return nil, fmt.Errorf("save last refresh: %w", err)
	}
	metrics.ChallengesRefreshed.Inc()
	return set, nil
}

// Today returns the current day's challenge set without refreshing.
func (e *Engine) Today(now time.Time) ([]domain.DailyChallenge, error) {
	return e.db.ListChallengesForDay(domain.DayKey(now))
}

// History returns completed challenges, newest first.
func (e *Engine) History(limit int) ([]domain.DailyChallenge, error) {
	return e.db.ListCompletedChallenges(limit)
}

// UpdateProgress adds delta to every active, not-yet-completed challenge of
// the given type and returns those completed by this update. Already
// completed instances are skipped, which keeps the reward exactly-once.
func (e *Engine) UpdateProgress(typ domain.ChallengeType, delta int, now time.Time) ([]domain.DailyChallenge, error) {
	return e.updateMatching(now, func(c domain.DailyChallenge) (int, bool) {
		if c.Type != typ {
			return 0, false
		}
		return c.Progress + delta, true
	})
}

// UpdateMoodProgress completes mood-type challenges whose target the logged
// mood meets. Mood challenges are pass/fail, not cumulative.
func (e *Engine) UpdateMoodProgress(mood int, now time.Time) ([]domain.DailyChallenge, error) {
	return e.updateMatching(now, func(c domain.DailyChallenge) (int, bool) {
		if c.Type != domain.ChallengeMood || mood < c.Target {
			return 0, false
		}
		return c.Target, true
	})
}

// UpdateVarietyProgress sets variety-type progress to the number of distinct
// rituals performed today — an idempotent measurement, not an event count.
func (e *Engine) UpdateVarietyProgress(distinctRituals []string, now time.Time) ([]domain.DailyChallenge, error) {
	n := len(distinctRituals)
	return e.updateMatching(now, func(c domain.DailyChallenge) (int, bool) {
		if c.Type != domain.ChallengeVariety {
			return 0, false
		}
		return n, true
	})
}

// UpdateTimeProgress completes time-window challenges whose window contains
// the completion hour.
func (e *Engine) UpdateTimeProgress(completionHour int, now time.Time) ([]domain.DailyChallenge, error) {
	return e.updateMatching(now, func(c domain.DailyChallenge) (int, bool) {
		if c.Type != domain.ChallengeTime || !c.Window.Contains(completionHour) {
			return 0, false
		}
		return c.Target, true
	})
}

// updateMatching applies a progress rule to today's active challenges.
// The rule returns the new absolute progress and whether the instance
// matches. All matching instances receive the update independently.
func (e *Engine) updateMatching(now time.Time, rule func(domain.DailyChallenge) (int, bool)) ([]domain.DailyChallenge, error) {
	today, err := e.db.ListChallengesForDay(domain.DayKey(now))
	if err != nil {
		return nil, err
	}

	var completed []domain.DailyChallenge
	for _, c := range today {
		if c.Completed {
			continue
		}
		progress, ok := rule(c)
		if !ok || progress <= c.Progress {
			continue
		}

		updated, err := e.db.SetChallengeProgress(c.ID, progress)
		if err != nil {
			return nil, err
		}
		if updated == nil || updated.Progress < updated.Target {
			continue
		}

		done, err := e.complete(*updated, now)
		if err != nil {
			return nil, err
		}
		if done != nil {
			completed = append(completed, *done)
		}
	}
	return completed, nil
}

// complete flips a challenge to completed and grants its reward. The flip
// and the grant share the exactly-once guarantee: the database update only
// reports newly-completed once.
func (e *Engine) complete(c domain.DailyChallenge, now time.Time) (*domain.DailyChallenge, error) {
	flipped, err := e.db.CompleteDailyChallenge(c.ID, now)
	if err != nil {
		return nil, err
	}
	if !flipped {
		return nil, nil
	}

	c.Completed = true
	c.CompletedAt = now

	if e.rewards != nil {
		if err := e.rewards.GrantXP(c.RewardXP, "challenge:"+string(c.Type)); err != nil {
			return nil, fmt.Errorf("grant challenge reward: %w", err)
		}
	}
	if e.sink != nil {
		e.sink.Notify(domain.Notification{
			Type:  domain.NotifyChallengeComplete,
			Title: "Challenge complete!",
			Body:  c.Description,
		})
	}
	metrics.ChallengesCompleted.WithLabelValues(string(c.Type)).Inc()
	return &c, nil
}

// drawTypes picks n challenge types uniformly without replacement.
func (e *Engine) drawTypes(n int) []domain.ChallengeType {
	shuffled := make([]domain.ChallengeType, len(domain.ChallengeTypes))
	copy(shuffled, domain.ChallengeTypes)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

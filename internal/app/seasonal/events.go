package seasonal

import (
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Event Catalog ──────────────────────────────────────────────────────────
// Events are defined by fixed month/day rules and instantiated once per
// calendar year. At most one instance of each named event exists per year.

// EventsForYear constructs the seasonal event calendar for a year.
func EventsForYear(year int) []domain.SeasonalEvent {
	span := func(m1 time.Month, d1 int, m2 time.Month, d2 int) (time.Time, time.Time) {
		start := time.Date(year, m1, d1, 0, 0, 0, 0, time.Local)
		end := time.Date(year, m2, d2, 23, 59, 59, 0, time.Local)
		return start, end
	}

	springStart, springEnd := span(time.March, 20, time.April, 3)
	summerStart, summerEnd := span(time.June, 19, time.June, 28)
	harvestStart, harvestEnd := span(time.September, 22, time.October, 5)
	winterStart, winterEnd := span(time.December, 18, time.December, 31)

	return []domain.SeasonalEvent{
		{
			ID:          "spring-renewal",
			Name:        "Spring Renewal",
			Description: "Fresh sap rises. Shake off the winter and start new habits.",
			StartDate:   springStart,
			EndDate:     springEnd,
			SpecialRituals: []domain.SpecialRitual{
				{
					ID: "blossom-touch", EventID: "spring-renewal",
					Name:        "Blossom Touch",
					Description: "A gentle tap on flowering wood for new beginnings",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockEventProgress, Fraction: 0.5},
				},
				{
					ID: "sapling-knock", EventID: "spring-renewal",
					Name:        "Sapling Knock",
					Description: "Three quick knocks on young wood",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockStreak, StreakDays: 3},
				},
			},
			Challenges: []domain.EventChallenge{
				{
					ID: "spring-renewal-rituals", EventID: "spring-renewal",
					Type: domain.EventChallengeRituals, Target: 15,
					Description: "Complete 15 rituals during Spring Renewal",
					RewardXP:    200, RewardPoints: 30,
				},
				{
					ID: "spring-renewal-special", EventID: "spring-renewal",
					Type: domain.EventChallengeSpecialRituals, Target: 5,
					Description: "Perform 5 spring rituals",
					RewardXP:    300, RewardPoints: 50,
				},
			},
			Rewards: []domain.EventReward{
				{ID: "spring-badge", Name: "Spring Badge", RequiredProgress: 0.5},
				{ID: "cherry-blossom-style", Name: "Cherry Blossom Wood Style", RequiredProgress: 1.0},
			},
		},
		{
			ID:          "midsummer-luck",
			Name:        "Midsummer Luck",
			Description: "The longest days carry the strongest luck.",
			StartDate:   summerStart,
			EndDate:     summerEnd,
			SpecialRituals: []domain.SpecialRitual{
				{
					ID: "solstice-hold", EventID: "midsummer-luck",
					Name:        "Solstice Hold",
					Description: "Hold the wood through a full sunset breath",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockLevel, Level: 5},
					UsageLimit:  10,
				},
				{
					ID: "bonfire-tap", EventID: "midsummer-luck",
					Name:        "Bonfire Tap",
					Description: "Shared luck burns brightest",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockSocialShare, Shares: 1},
				},
			},
			Challenges: []domain.EventChallenge{
				{
					ID: "midsummer-luck-rituals", EventID: "midsummer-luck",
					Type: domain.EventChallengeRituals, Target: 10,
					Description: "Complete 10 rituals during Midsummer Luck",
					RewardXP:    150, RewardPoints: 25,
				},
			},
			Rewards: []domain.EventReward{
				{ID: "midsummer-badge", Name: "Midsummer Badge", RequiredProgress: 1.0},
			},
		},
		{
			ID:          "harvest-gratitude",
			Name:        "Harvest Gratitude",
			Description: "Count what grew. Give thanks on old wood.",
			StartDate:   harvestStart,
			EndDate:     harvestEnd,
			SpecialRituals: []domain.SpecialRitual{
				{
					ID: "oak-thanks", EventID: "harvest-gratitude",
					Name:        "Oak Thanks",
					Description: "A slow press of the palm against seasoned oak",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockAchievement, AchievementID: "streak-7"},
				},
				{
					ID: "acorn-count", EventID: "harvest-gratitude",
					Name:        "Acorn Count",
					Description: "One tap per thing you are grateful for",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockEventProgress, Fraction: 1.0},
				},
			},
			Challenges: []domain.EventChallenge{
				{
					ID: "harvest-gratitude-rituals", EventID: "harvest-gratitude",
					Type: domain.EventChallengeRituals, Target: 20,
					Description: "Complete 20 rituals during Harvest Gratitude",
					RewardXP:    250, RewardPoints: 40,
				},
				{
					ID: "harvest-gratitude-special", EventID: "harvest-gratitude",
					Type: domain.EventChallengeSpecialRituals, Target: 7,
					Description: "Perform 7 harvest rituals",
					RewardXP:    350, RewardPoints: 60,
				},
			},
			Rewards: []domain.EventReward{
				{ID: "harvest-badge", Name: "Harvest Badge", RequiredProgress: 0.5},
				{ID: "amber-style", Name: "Amber Wood Style", RequiredProgress: 1.0},
			},
		},
		{
			ID:          "winter-stillness",
			Name:        "Winter Stillness",
			Description: "The wood sleeps. Touch it quietly and keep the flame.",
			StartDate:   winterStart,
			EndDate:     winterEnd,
			SpecialRituals: []domain.SpecialRitual{
				{
					ID: "frost-knock", EventID: "winter-stillness",
					Name:        "Frost Knock",
					Description: "A single deliberate knock in the cold",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockStreak, StreakDays: 7},
				},
				{
					ID: "ember-hold", EventID: "winter-stillness",
					Name:        "Ember Hold",
					Description: "Warm the wood between both hands",
					Unlock:      domain.UnlockRequirement{Kind: domain.UnlockEventProgress, Fraction: 0.5},
					UsageLimit:  14,
				},
			},
			Challenges: []domain.EventChallenge{
				{
					ID: "winter-stillness-rituals", EventID: "winter-stillness",
					Type: domain.EventChallengeRituals, Target: 14,
					Description: "Complete 14 rituals during Winter Stillness",
					RewardXP:    200, RewardPoints: 35,
				},
				{
					ID: "winter-stillness-special", EventID: "winter-stillness",
					Type: domain.EventChallengeSpecialRituals, Target: 4,
					Description: "Perform 4 winter rituals",
					RewardXP:    300, RewardPoints: 50,
				},
			},
			Rewards: []domain.EventReward{
				{ID: "winter-badge", Name: "Winter Badge", RequiredProgress: 0.5},
				{ID: "petrified-style", Name: "Petrified Wood Style", RequiredProgress: 1.0},
			},
		},
	}
}

// Package level implements the XP and level system. XP flows in from
// completed challenges and event rewards over an exponential curve, L1-L100.
// Levels gate wood styles and some seasonal ritual unlocks.
package level

import (
	"fmt"
	"math"
	"strconv"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// MaxLevel caps the curve.
const MaxLevel = 100

// Service manages XP accrual and level state.
type Service struct {
	db   *sqlite.DB
	sink domain.NotificationSink
}

// NewService creates a level service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// SetNotificationSink wires where level-ups are announced.
func (s *Service) SetNotificationSink(sink domain.NotificationSink) { s.sink = sink }

// XPForLevel returns the cumulative XP required to reach a given level.
// Exponential curve: 100 * 1.2^(level-1) for level >= 2.
func XPForLevel(level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(100 * math.Pow(1.2, float64(level-1)))
}

// LevelForXP returns the level for a given XP amount.
func LevelForXP(xp int64) int {
	level := 1
	for level < MaxLevel {
		if xp < XPForLevel(level+1) {
			return level
		}
		level++
	}
	return MaxLevel
}

// State is the current XP/level snapshot.
type State struct {
	Level     int   `json:"level"`
	CurrentXP int64 `json:"current_xp"`
}

// Current returns the level state derived from stored XP.
func (s *Service) Current() (State, error) {
	var st State
	xpStr, err := s.db.GetState("xp")
	if err != nil {
		return st, fmt.Errorf("get xp: %w", err)
	}
	if xpStr != "" {
		st.CurrentXP, _ = strconv.ParseInt(xpStr, 10, 64)
	}
	st.Level = LevelForXP(st.CurrentXP)
	return st, nil
}

// CurrentLevel satisfies domain.LevelSource.
func (s *Service) CurrentLevel() (int, error) {
	st, err := s.Current()
	if err != nil {
		return 0, err
	}
	return st.Level, nil
}

// GrantXP deposits XP from a reward source ("challenge:rituals",
// "event:spring-renewal"). Emits a level-up notification when a level
// boundary is crossed. Satisfies the engines' RewardGranter contract.
func (s *Service) GrantXP(amount int64, source string) error {
	_, _, err := s.AddXP(amount)
	return err
}

// AddXP adds experience points and returns (newLevel, leveledUp, error).
func (s *Service) AddXP(amount int64) (int, bool, error) {
	if amount <= 0 {
		return 0, false, fmt.Errorf("xp amount must be positive, got %d", amount)
	}

	current, err := s.Current()
	if err != nil {
		return 0, false, err
	}

	oldLevel := current.Level
	newXP := current.CurrentXP + amount

	if err := s.db.SetState("xp", strconv.FormatInt(newXP, 10)); err != nil {
		return 0, false, fmt.Errorf("save xp: %w", err)
	}

	newLevel := LevelForXP(newXP)

	// Persist level for quick reads
	if err := s.db.SetState("level", strconv.Itoa(newLevel)); err != nil {
		return 0, false, fmt.Errorf("save level: %w", err)
	}

	leveledUp := newLevel > oldLevel
	if leveledUp && s.sink != nil {
		s.sink.Notify(domain.Notification{
			Type:  domain.NotifyLevelUp,
			Title: fmt.Sprintf("Level %d!", newLevel),
			Body:  fmt.Sprintf("Your wood grows stronger. You reached level %d.", newLevel),
		})
	}
	return newLevel, leveledUp, nil
}

// XPToNextLevel returns XP remaining until the next level.
func (s *Service) XPToNextLevel() (int64, error) {
	current, err := s.Current()
	if err != nil {
		return 0, err
	}
	if current.Level >= MaxLevel {
		return 0, nil
	}
	remaining := XPForLevel(current.Level+1) - current.CurrentXP
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// ProgressPct returns progress percentage toward the next level (0.0–100.0).
func (s *Service) ProgressPct() (float64, error) {
	current, err := s.Current()
	if err != nil {
		return 0, err
	}
	if current.Level >= MaxLevel {
		return 100.0, nil
	}
	thisLevel := XPForLevel(current.Level)
	nextLevel := XPForLevel(current.Level + 1)
	span := nextLevel - thisLevel
	if span <= 0 {
		return 100.0, nil
	}
	progress := float64(current.CurrentXP-thisLevel) / float64(span) * 100.0
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	return progress, nil
}

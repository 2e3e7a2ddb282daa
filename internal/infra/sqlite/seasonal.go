package sqlite

import (
	"database/sql"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Event Challenge Progress ───────────────────────────────────────────────
// Event challenge definitions live in code; only progress rows are persisted.

// EventChallengeState is the persisted slice of an event challenge.
type EventChallengeState struct {
	ID          string
	EventID     string
	Progress    int
	Completed   bool
	CompletedAt time.Time
}

// GetEventChallengeState returns the persisted state for a challenge id.
// A missing row reads as zero progress.
func (d *DB) GetEventChallengeState(id string) (EventChallengeState, error) {
	st := EventChallengeState{ID: id}
	var completedAt sql.NullInt64
	err := d.db.QueryRow(
		`SELECT event_id, progress, completed, completed_at FROM event_challenges WHERE id = ?`, id,
	).Scan(&st.EventID, &st.Progress, &st.Completed, &completedAt)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	if completedAt.Valid {
		st.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return st, nil
}

// AddEventChallengeProgress adds delta to an uncompleted event challenge,
// clamped to target, creating the row on first touch.
func (d *DB) AddEventChallengeProgress(id, eventID string, delta, target int) (EventChallengeState, error) {
	_, err := d.db.Exec(
		`INSERT INTO event_challenges (id, event_id, progress, completed)
		 VALUES (?, ?, MIN(?, ?), 0)
		 ON CONFLICT(id) DO UPDATE SET progress = MIN(event_challenges.progress + ?, ?)
		 WHERE event_challenges.completed = 0`,
		id, eventID, delta, target, delta, target,
	)
	if err != nil {
		return EventChallengeState{}, err
	}
	return d.GetEventChallengeState(id)
}

// CompleteEventChallenge flips an event challenge to completed, exactly once.
func (d *DB) CompleteEventChallenge(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE event_challenges SET completed = 1, completed_at = ?
		 WHERE id = ? AND completed = 0`,
		at.Unix(), id,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// CompletedEventChallengeCount counts completed challenges for an event.
func (d *DB) CompletedEventChallengeCount(eventID string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM event_challenges WHERE event_id = ? AND completed = 1`, eventID,
	).Scan(&count)
	return count, err
}

// ─── Unlocked Special Rituals ───────────────────────────────────────────────

// UnlockRitual records a special ritual as unlocked. Unlocks are monotonic;
// returns false if it was already unlocked.
func (d *DB) UnlockRitual(ritualID, eventID string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO unlocked_rituals (ritual_id, event_id, unlocked_at, usage_count)
		 VALUES (?, ?, ?, 0)`,
		ritualID, eventID, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// IsRitualUnlocked checks whether a special ritual is unlocked.
func (d *DB) IsRitualUnlocked(ritualID string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM unlocked_rituals WHERE ritual_id = ?`, ritualID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListUnlockedRituals returns all unlocked special rituals.
func (d *DB) ListUnlockedRituals() ([]domain.UnlockedRitual, error) {
	rows, err := d.db.Query(
		`SELECT ritual_id, event_id, unlocked_at, usage_count
		 FROM unlocked_rituals ORDER BY unlocked_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocked []domain.UnlockedRitual
	for rows.Next() {
		var u domain.UnlockedRitual
		var at int64
		if err := rows.Scan(&u.RitualID, &u.EventID, &at, &u.UsageCount); err != nil {
			return nil, err
		}
		u.UnlockedAt = time.Unix(at, 0)
		unlocked = append(unlocked, u)
	}
	return unlocked, rows.Err()
}

// RitualUsage returns a special ritual's usage count (0 if not unlocked).
func (d *DB) RitualUsage(ritualID string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT usage_count FROM unlocked_rituals WHERE ritual_id = ?`, ritualID,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return count, err
}

// IncrementRitualUsage bumps a special ritual's usage counter.
func (d *DB) IncrementRitualUsage(ritualID string) error {
	_, err := d.db.Exec(
		`UPDATE unlocked_rituals SET usage_count = usage_count + 1 WHERE ritual_id = ?`, ritualID,
	)
	return err
}

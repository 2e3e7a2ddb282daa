package sqlite

import (
	"database/sql"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Daily Challenges ───────────────────────────────────────────────────────

// InsertDailyChallenge creates a new daily challenge instance.
func (d *DB) InsertDailyChallenge(c domain.DailyChallenge) error {
	_, err := d.db.Exec(
		`INSERT INTO daily_challenges (id, type, window, description, target, progress, reward_xp, reward_points, day, completed, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, string(c.Type), string(c.Window), c.Description, c.Target, c.Progress,
		c.RewardXP, c.RewardPoints, c.Day, c.Completed, nullableUnix(c.CompletedAt),
	)
	return err
}

// GetDailyChallenge retrieves a challenge by id.
func (d *DB) GetDailyChallenge(id string) (*domain.DailyChallenge, error) {
	row := d.db.QueryRow(
		`SELECT id, type, window, description, target, progress, reward_xp, reward_points, day, completed, completed_at
		 FROM daily_challenges WHERE id = ?`, id,
	)
	return scanChallenge(row)
}

// ListChallengesForDay returns all challenge instances belonging to a day.
func (d *DB) ListChallengesForDay(day string) ([]domain.DailyChallenge, error) {
	rows, err := d.db.Query(
		`SELECT id, type, window, description, target, progress, reward_xp, reward_points, day, completed, completed_at
		 FROM daily_challenges WHERE day = ? ORDER BY id ASC`, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectChallenges(rows)
}

// ListCompletedChallenges returns completed challenges, newest first.
func (d *DB) ListCompletedChallenges(limit int) ([]domain.DailyChallenge, error) {
	rows, err := d.db.Query(
		`SELECT id, type, window, description, target, progress, reward_xp, reward_points, day, completed, completed_at
		 FROM daily_challenges WHERE completed = 1 ORDER BY completed_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectChallenges(rows)
}

// AddChallengeProgress adds delta to an uncompleted challenge's progress,
// clamped to the target. Returns the updated challenge.
func (d *DB) AddChallengeProgress(id string, delta int) (*domain.DailyChallenge, error) {
	_, err := d.db.Exec(
		`UPDATE daily_challenges SET progress = MIN(progress + ?, target)
		 WHERE id = ? AND completed = 0`,
		delta, id,
	)
	if err != nil {
		return nil, err
	}
	return d.GetDailyChallenge(id)
}

// SetChallengeProgress sets an uncompleted challenge's progress to an absolute
// value, clamped to the target. Used by idempotent measurements (variety).
func (d *DB) SetChallengeProgress(id string, progress int) (*domain.DailyChallenge, error) {
	_, err := d.db.Exec(
		`UPDATE daily_challenges SET progress = MIN(?, target)
		 WHERE id = ? AND completed = 0`,
		progress, id,
	)
	if err != nil {
		return nil, err
	}
	return d.GetDailyChallenge(id)
}

// CompleteDailyChallenge flips a challenge to completed. Returns true only on
// the first flip — the WHERE completed = 0 guard makes the reward grant
// exactly-once even under repeated progress updates.
func (d *DB) CompleteDailyChallenge(id string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`UPDATE daily_challenges SET completed = 1, completed_at = ?
		 WHERE id = ? AND completed = 0`,
		at.Unix(), id,
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// DeleteStaleChallenges discards uncompleted instances from days before the
// given day key. Completed instances are kept as history.
func (d *DB) DeleteStaleChallenges(day string) (int64, error) {
	result, err := d.db.Exec(
		`DELETE FROM daily_challenges WHERE day < ? AND completed = 0`, day,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// CompletedChallengeCount returns the lifetime number of completed challenges.
func (d *DB) CompletedChallengeCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM daily_challenges WHERE completed = 1`).Scan(&count)
	return count, err
}

// ─── Scanners ───────────────────────────────────────────────────────────────

func scanChallenge(s scanner) (*domain.DailyChallenge, error) {
	var c domain.DailyChallenge
	var typ, window string
	var completedAt sql.NullInt64
	err := s.Scan(&c.ID, &typ, &window, &c.Description, &c.Target, &c.Progress,
		&c.RewardXP, &c.RewardPoints, &c.Day, &c.Completed, &completedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Type = domain.ChallengeType(typ)
	c.Window = domain.TimeWindow(window)
	if completedAt.Valid {
		c.CompletedAt = time.Unix(completedAt.Int64, 0)
	}
	return &c, nil
}

func collectChallenges(rows *sql.Rows) ([]domain.DailyChallenge, error) {
	var challenges []domain.DailyChallenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, rows.Err()
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

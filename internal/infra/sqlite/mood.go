package sqlite

import (
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Mood Log ───────────────────────────────────────────────────────────────

// InsertMoodEntry appends a mood entry and returns its id.
func (d *DB) InsertMoodEntry(e domain.MoodEntry) (int64, error) {
	result, err := d.db.Exec(
		`INSERT INTO mood_entries (ritual_id, ritual_name, mood, note, timestamp)
		 VALUES (?, ?, ?, ?, ?)`,
		e.RitualID, e.RitualName, e.Mood, e.Note, e.Timestamp.Unix(),
	)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// ListMoodEntries returns the full mood log in ascending time order.
func (d *DB) ListMoodEntries() ([]domain.MoodEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, ritual_id, ritual_name, mood, note, timestamp
		 FROM mood_entries ORDER BY timestamp ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.MoodEntry
	for rows.Next() {
		var e domain.MoodEntry
		var ts int64
		if err := rows.Scan(&e.ID, &e.RitualID, &e.RitualName, &e.Mood, &e.Note, &ts); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// MoodEntryCount returns the size of the mood log.
func (d *DB) MoodEntryCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM mood_entries`).Scan(&count)
	return count, err
}

// RecentMoodAverage returns the average mood and sample count since a time.
func (d *DB) RecentMoodAverage(since time.Time) (float64, int, error) {
	var avg float64
	var count int
	err := d.db.QueryRow(
		`SELECT COALESCE(AVG(mood), 0), COUNT(*) FROM mood_entries WHERE timestamp >= ?`,
		since.Unix(),
	).Scan(&avg, &count)
	return avg, count, err
}

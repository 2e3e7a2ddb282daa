package sqlite

import (
	"database/sql"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Completion Log ─────────────────────────────────────────────────────────

// InsertCompletion appends a completion event to the log.
func (d *DB) InsertCompletion(e domain.CompletionEvent) error {
	_, err := d.db.Exec(
		`INSERT INTO completions (id, ritual_id, category, day, timestamp, mood, note)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.RitualID, e.Category, domain.DayKey(e.Timestamp),
		e.Timestamp.Unix(), e.Mood, e.Note,
	)
	return err
}

// ListCompletions returns the full event log in ascending time order.
func (d *DB) ListCompletions() ([]domain.CompletionEvent, error) {
	rows, err := d.db.Query(
		`SELECT id, ritual_id, category, timestamp, mood, note
		 FROM completions ORDER BY timestamp ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompletions(rows)
}

// CompletionsSince returns events at or after the given time, ascending.
func (d *DB) CompletionsSince(since time.Time) ([]domain.CompletionEvent, error) {
	rows, err := d.db.Query(
		`SELECT id, ritual_id, category, timestamp, mood, note
		 FROM completions WHERE timestamp >= ? ORDER BY timestamp ASC`,
		since.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCompletions(rows)
}

// CompletionCount returns the lifetime number of completions.
func (d *DB) CompletionCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM completions`).Scan(&count)
	return count, err
}

// CompletionCountOn returns how many completions fall on a calendar day.
func (d *DB) CompletionCountOn(day string) (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM completions WHERE day = ?`, day).Scan(&count)
	return count, err
}

// CompletionCountByCategory returns lifetime completion counts per category.
func (d *DB) CompletionCountByCategory() (map[string]int, error) {
	rows, err := d.db.Query(
		`SELECT category, COUNT(*) FROM completions GROUP BY category`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		counts[cat] = n
	}
	return counts, rows.Err()
}

// DistinctRitualsOn returns the distinct ritual ids completed on a day.
func (d *DB) DistinctRitualsOn(day string) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT DISTINCT ritual_id FROM completions WHERE day = ?`, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ActiveDays returns the distinct calendar days with at least one completion
// at or after since, as day keys.
func (d *DB) ActiveDays(since time.Time) ([]string, error) {
	rows, err := d.db.Query(
		`SELECT DISTINCT day FROM completions WHERE timestamp >= ? ORDER BY day ASC`,
		since.Unix(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func collectCompletions(rows *sql.Rows) ([]domain.CompletionEvent, error) {
	var events []domain.CompletionEvent
	for rows.Next() {
		var e domain.CompletionEvent
		var ts int64
		if err := rows.Scan(&e.ID, &e.RitualID, &e.Category, &ts, &e.Mood, &e.Note); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		events = append(events, e)
	}
	return events, rows.Err()
}

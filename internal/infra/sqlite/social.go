package sqlite

import "time"

// ─── Shares ─────────────────────────────────────────────────────────────────

// InsertShare records a progress share.
func (d *DB) InsertShare(id, kind, message string, at time.Time) error {
	_, err := d.db.Exec(
		`INSERT INTO shares (id, kind, message, created_at) VALUES (?, ?, ?, ?)`,
		id, kind, message, at.Unix(),
	)
	return err
}

// ShareCount returns the lifetime number of shares.
func (d *DB) ShareCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM shares`).Scan(&count)
	return count, err
}

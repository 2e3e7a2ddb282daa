package sqlite

import (
	"database/sql"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
)

// ─── Custom Rituals ─────────────────────────────────────────────────────────

// InsertCustomRitual stores a user-defined ritual.
func (d *DB) InsertCustomRitual(r domain.Ritual) error {
	_, err := d.db.Exec(
		`INSERT INTO custom_rituals (id, name, category, description, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Name, string(r.Category), r.Description, r.CreatedAt.Unix(),
	)
	return err
}

// GetCustomRitual retrieves a custom ritual by id. Returns nil if not found.
func (d *DB) GetCustomRitual(id string) (*domain.Ritual, error) {
	var r domain.Ritual
	var cat string
	var createdAt int64
	err := d.db.QueryRow(
		`SELECT id, name, category, description, created_at FROM custom_rituals WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &cat, &r.Description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.Category = domain.RitualCategory(cat)
	r.CreatedAt = time.Unix(createdAt, 0)
	return &r, nil
}

// ListCustomRituals returns all user-defined rituals, oldest first.
func (d *DB) ListCustomRituals() ([]domain.Ritual, error) {
	rows, err := d.db.Query(
		`SELECT id, name, category, description, created_at
		 FROM custom_rituals ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rituals []domain.Ritual
	for rows.Next() {
		var r domain.Ritual
		var cat string
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.Name, &cat, &r.Description, &createdAt); err != nil {
			return nil, err
		}
		r.Category = domain.RitualCategory(cat)
		r.CreatedAt = time.Unix(createdAt, 0)
		rituals = append(rituals, r)
	}
	return rituals, rows.Err()
}

// CustomRitualCount returns the number of user-defined rituals.
func (d *DB) CustomRitualCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM custom_rituals`).Scan(&count)
	return count, err
}

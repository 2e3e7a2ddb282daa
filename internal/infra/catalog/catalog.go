// Package catalog provides the registry of performable rituals.
// This is Touchwood's "ritual phonebook" — built-in rituals ship here,
// user-defined rituals come from the database, and cosmetic wood styles
// unlock by level. The catalog is data, not logic.
package catalog

import (
	"strings"
	"time"

	"github.com/touchwood-app/touchwood/internal/domain"
	"github.com/touchwood-app/touchwood/internal/infra/sqlite"
)

// BuiltIn is the fixed list of rituals every user starts with.
var BuiltIn = []domain.Ritual{
	{
		ID:          "knock-three-times",
		Name:        "Knock Three Times",
		Category:    domain.CategoryProtection,
		Description: "Three firm knocks on the nearest wood to ward off the jinx",
		WoodStyle:   "oak",
		BuiltIn:     true,
	},
	{
		ID:          "hold-the-wood",
		Name:        "Hold the Wood",
		Category:    domain.CategoryCalm,
		Description: "Rest a palm flat on wood and take three slow breaths",
		WoodStyle:   "birch",
		BuiltIn:     true,
	},
	{
		ID:          "lucky-tap",
		Name:        "Lucky Tap",
		Category:    domain.CategoryLuck,
		Description: "A quick double tap before anything that needs luck",
		WoodStyle:   "oak",
		BuiltIn:     true,
	},
	{
		ID:          "gratitude-touch",
		Name:        "Gratitude Touch",
		Category:    domain.CategoryGratitude,
		Description: "Touch wood and name one thing that went right today",
		WoodStyle:   "cherry",
		BuiltIn:     true,
	},
	{
		ID:          "morning-anchor",
		Name:        "Morning Anchor",
		Category:    domain.CategoryFocus,
		Description: "Start the day with a ten-second hold on your wooden anchor",
		WoodStyle:   "walnut",
		BuiltIn:     true,
	},
	{
		ID:          "quiet-minute",
		Name:        "Quiet Minute",
		Category:    domain.CategoryCalm,
		Description: "One minute of stillness with fingertips on grain",
		WoodStyle:   "birch",
		BuiltIn:     true,
	},
}

// WoodStyles is the ladder of cosmetic finishes unlocked by level.
var WoodStyles = []domain.WoodStyle{
	{ID: "oak", Name: "Oak", UnlockLevel: 1},
	{ID: "birch", Name: "Birch", UnlockLevel: 1},
	{ID: "cherry", Name: "Cherry", UnlockLevel: 5},
	{ID: "walnut", Name: "Walnut", UnlockLevel: 10},
	{ID: "ebony", Name: "Ebony", UnlockLevel: 20},
	{ID: "petrified", Name: "Petrified Wood", UnlockLevel: 50},
}

// Catalog resolves ritual ids against the built-in set plus stored custom
// rituals.
type Catalog struct {
	db *sqlite.DB
}

// New creates a catalog backed by the given database.
func New(db *sqlite.DB) *Catalog {
	return &Catalog{db: db}
}

// Resolve returns the ritual for an id, checking built-ins first.
// Returns nil if the id is unknown — callers treat that as a no-op, not an
// error, per the engine's missing-id policy.
func (c *Catalog) Resolve(id string) (*domain.Ritual, error) {
	for i := range BuiltIn {
		if BuiltIn[i].ID == id {
			r := BuiltIn[i]
			return &r, nil
		}
	}
	return c.db.GetCustomRitual(id)
}

// List returns every ritual: built-ins followed by custom rituals.
func (c *Catalog) List() ([]domain.Ritual, error) {
	custom, err := c.db.ListCustomRituals()
	if err != nil {
		return nil, err
	}
	all := make([]domain.Ritual, 0, len(BuiltIn)+len(custom))
	all = append(all, BuiltIn...)
	all = append(all, custom...)
	return all, nil
}

// CreateCustom stores a user-defined ritual. The id is derived from the name.
func (c *Catalog) CreateCustom(name string, category domain.RitualCategory, description string, at time.Time) (domain.Ritual, error) {
	r := domain.Ritual{
		ID:          slugify(name),
		Name:        name,
		Category:    category,
		Description: description,
		CreatedAt:   at,
	}

	existing, err := c.Resolve(r.ID)
	if err != nil {
		return domain.Ritual{}, err
	}
	if existing != nil {
		return domain.Ritual{}, domain.ErrRitualExists
	}

	if err := c.db.InsertCustomRitual(r); err != nil {
		return domain.Ritual{}, err
	}
	return r, nil
}

// CustomCount returns how many custom rituals the user has created.
func (c *Catalog) CustomCount() (int, error) {
	return c.db.CustomRitualCount()
}

// StylesForLevel returns the wood styles available at a level.
func StylesForLevel(level int) []domain.WoodStyle {
	var styles []domain.WoodStyle
	for _, s := range WoodStyles {
		if level >= s.UnlockLevel {
			styles = append(styles, s)
		}
	}
	return styles
}

// slugify lowercases a name and joins words with hyphens.
func slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

package domain

import "time"

// ─── Ritual Catalog Types ───────────────────────────────────────────────────

// RitualCategory groups rituals by intent.
type RitualCategory string

const (
	CategoryProtection RitualCategory = "protection"
	CategoryLuck       RitualCategory = "luck"
	CategoryCalm       RitualCategory = "calm"
	CategoryGratitude  RitualCategory = "gratitude"
	CategoryFocus      RitualCategory = "focus"
)

// Ritual is one performable ritual definition. Built-in rituals ship with the
// catalog; custom rituals are user-created and persisted.
type Ritual struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    RitualCategory `json:"category"`
	Description string         `json:"description"`
	WoodStyle   string         `json:"wood_style,omitempty"`
	BuiltIn     bool           `json:"built_in"`
	CreatedAt   time.Time      `json:"created_at,omitzero"` // custom rituals only
}

// WoodStyle is a cosmetic wood finish unlocked by level.
type WoodStyle struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UnlockLevel int    `json:"unlock_level"`
}

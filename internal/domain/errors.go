package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Ritual catalog errors
	ErrRitualNotFound = errors.New("ritual not found")
	ErrRitualExists   = errors.New("ritual already exists")
	ErrInvalidMood    = errors.New("mood must be between 1 and 5")

	// Special ritual errors
	ErrRitualLocked      = errors.New("special ritual is locked")
	ErrEventNotActive    = errors.New("owning event is not currently active")
	ErrUsageLimitReached = errors.New("special ritual usage limit reached")

	// Challenge errors
	ErrChallengeNotFound = errors.New("challenge not found")

	// Event errors
	ErrEventNotFound = errors.New("seasonal event not found")
)

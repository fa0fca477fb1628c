package repository

import "errors"

// ErrStatusConflict is returned by guarded updates when the row exists but is
// no longer in the state the update requires. Callers distinguish it from the
// per-entity not-found errors.
var ErrStatusConflict = errors.New("row failed its status guard")

const (
	// DefaultPageLimit applies when a listing asks for no limit.
	DefaultPageLimit = 50
	// MaxPageLimit caps any listing.
	MaxPageLimit = 200
)

// Page is a limit/offset window over a listing.
type Page struct {
	Limit  int
	Offset int
}

// Normalize clamps the window to sane bounds.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}

	return p
}

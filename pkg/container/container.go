// Package container routes toasts to independent on-screen stacks.
//
// A container is a mounted rendering region for one placement. Routing
// is a pure view over the engine's visible projection: filtering never
// mutates engine state, and a toast whose position has no mounted
// container simply goes unrendered while the engine keeps tracking it
// (its timer keeps ticking).
package container

import (
	"github.com/melba-ui/melba/pkg/position"
	"github.com/melba-ui/melba/pkg/toast"
)

// Container is one on-screen stack.
type Container struct {
	// Position is this container's explicit placement. Zero value means
	// follow the global default.
	Position position.Position
}

// Resolve returns the container's effective placement: its own when
// set, otherwise the global default.
func (c Container) Resolve(globalDefault position.Position) position.Position {
	if c.Position.Valid() {
		return c.Position
	}
	return globalDefault
}

// Filter returns the subsequence of toasts whose resolved position
// matches pos, preserving order. Each toast routes to exactly one
// container: positions are resolved at creation, so matching is exact.
func Filter(toasts []toast.Toast, pos position.Position) []toast.Toast {
	var out []toast.Toast
	for _, t := range toasts {
		if t.Position == pos {
			out = append(out, t)
		}
	}
	return out
}

// Split buckets a projection by position for hosts mounting several
// containers at once. Order within each bucket follows the input.
func Split(toasts []toast.Toast) map[position.Position][]toast.Toast {
	out := make(map[position.Position][]toast.Toast)
	for _, t := range toasts {
		out[t.Position] = append(out[t.Position], t)
	}
	return out
}

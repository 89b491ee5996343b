package anim

import (
	"context"
	"time"

	"github.com/melba-ui/melba/pkg/position"
)

// Frame is one sparse keyframe of a transition. Nil fields are
// untouched properties; the host leaves them at their current value.
type Frame struct {
	// At is this keyframe's offset within the transition, in [0,1].
	At float64 `json:"at"`

	Opacity    *float64 `json:"opacity,omitempty"`
	TranslateX *float64 `json:"translateX,omitempty"`
	TranslateY *float64 `json:"translateY,omitempty"`
	Scale      *float64 `json:"scale,omitempty"`
}

// Transition is a complete, host-independent animation description.
type Transition struct {
	Keyframes []Frame       `json:"keyframes"`
	Duration  time.Duration `json:"-"`
	Easing    Easing        `json:"easing,omitempty"`

	// DurationMs mirrors Duration for hosts that speak JSON.
	DurationMs int64 `json:"durationMs"`
}

// withDuration sets both duration representations.
func (tr Transition) withDuration(d time.Duration) Transition {
	tr.Duration = d
	tr.DurationMs = d.Milliseconds()
	return tr
}

// Element is the host's handle to one on-screen toast. The orchestrator
// drives it; the package never creates one itself.
type Element interface {
	// Apply sets the element's visual state immediately, no transition.
	Apply(Frame)

	// Animate plays the transition and returns once it completes, the
	// context is cancelled, or the host gives up. The element is expected
	// to end in the transition's final keyframe state either way.
	Animate(ctx context.Context, tr Transition) error
}

// Animator is a custom animation callback. When supplied for a phase it
// fully replaces preset selection for that phase.
type Animator func(ctx context.Context, el Element, pos position.Position) error

// Custom carries per-phase overrides. A nil field leaves that phase on
// the preset path.
type Custom struct {
	Enter Animator
	Leave Animator
}

func ptr(v float64) *float64 { return &v }

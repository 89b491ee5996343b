package anim

import (
	"context"
	"time"

	"github.com/melba-ui/melba/pkg/position"
)

// Options selects the transition for one enter or leave run.
type Options struct {
	// Preset to play. Unknown or empty presets fall back to the
	// orchestrator's default.
	Preset Preset

	// Custom overrides preset selection per phase when set.
	Custom Custom

	// Duration overrides DefaultDuration when positive.
	Duration time.Duration

	// Easing overrides DefaultEasing when non-empty. The bounce preset
	// ignores it for the enter phase.
	Easing Easing
}

// Orchestrator picks and runs transitions against host elements.
// The zero value is unusable; construct with New.
type Orchestrator struct {
	motion        func() bool
	defaultPreset Preset
}

// OrchestratorOption configures New.
type OrchestratorOption func(*Orchestrator)

// WithMotionCheck installs the reduced-motion probe. The probe is
// consulted on every run, so a live preference change takes effect on
// the next transition. Without one, full motion is assumed.
func WithMotionCheck(fn func() bool) OrchestratorOption {
	return func(o *Orchestrator) {
		o.motion = fn
	}
}

// WithDefaultPreset replaces the fallback preset used for unknown or
// empty requests.
func WithDefaultPreset(p Preset) OrchestratorOption {
	return func(o *Orchestrator) {
		if p.Valid() {
			o.defaultPreset = p
		}
	}
}

// New creates an orchestrator.
func New(opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		defaultPreset: DefaultPreset,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Enter animates el's appearance at pos.
func (o *Orchestrator) Enter(ctx context.Context, el Element, pos position.Position, opts Options) error {
	return o.run(ctx, el, pos, opts, opts.Custom.Enter, false)
}

// Leave animates el's removal from pos.
func (o *Orchestrator) Leave(ctx context.Context, el Element, pos position.Position, opts Options) error {
	return o.run(ctx, el, pos, opts, opts.Custom.Leave, true)
}

func (o *Orchestrator) run(ctx context.Context, el Element, pos position.Position, opts Options, custom Animator, leave bool) error {
	// A custom callback owns the phase outright, reduced motion included.
	if custom != nil {
		return custom(ctx, el, pos)
	}

	preset := opts.Preset
	if !preset.Valid() {
		preset = o.defaultPreset
	}
	reduced := o.motion != nil && o.motion()
	if reduced {
		// Fade is the designated least-intrusive fallback.
		preset = PresetFade
	}

	if preset == PresetNone {
		terminal := Frame{At: 1, Opacity: ptr(1)}
		if leave {
			terminal.Opacity = ptr(0)
		}
		el.Apply(terminal)
		return nil
	}

	duration := opts.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}
	if reduced {
		duration = ReducedDuration
	}
	easing := opts.Easing
	if easing == "" {
		easing = DefaultEasing
	}

	def := presets[preset]
	build := def.enter
	if leave {
		build = def.leave
	}
	return el.Animate(ctx, build(pos.Direction(), duration, easing))
}

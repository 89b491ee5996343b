package anim

import (
	"time"

	"github.com/melba-ui/melba/pkg/position"
)

// Preset names a built-in transition family.
type Preset string

const (
	PresetSlide  Preset = "slide"
	PresetFade   Preset = "fade"
	PresetBounce Preset = "bounce"
	PresetNone   Preset = "none"
)

// DefaultPreset is used when no preset is configured or the requested
// one is unknown.
const DefaultPreset = PresetSlide

// Valid reports whether p names a built-in preset.
func (p Preset) Valid() bool {
	switch p {
	case PresetSlide, PresetFade, PresetBounce, PresetNone:
		return true
	}
	return false
}

// Timing defaults. Reduced motion shortens every transition so state
// changes stay perceivable without sustained movement.
const (
	DefaultDuration = 300 * time.Millisecond
	ReducedDuration = 100 * time.Millisecond
)

// SlideDistance is the slide preset's travel in pixels, one default
// toast width.
const SlideDistance = 360.0

// Bounce keyframe shape: start small, overshoot at 70%, settle.
const (
	bounceStartScale     = 0.8
	bounceOvershootScale = 1.05
	bounceOvershootAt    = 0.7
	bounceLeaveScale     = 0.8
)

// transitionFunc builds one phase of a preset. Pure: same inputs, same
// transition.
type transitionFunc func(dir position.Direction, d time.Duration, e Easing) Transition

type presetDef struct {
	enter transitionFunc
	leave transitionFunc
}

// presets holds every preset with keyframes. PresetNone is absent on
// purpose: the orchestrator applies its terminal state directly.
var presets = map[Preset]presetDef{
	PresetSlide:  {enter: slideEnter, leave: slideLeave},
	PresetFade:   {enter: fadeEnter, leave: fadeLeave},
	PresetBounce: {enter: bounceEnter, leave: bounceLeave},
}

// slideOffset is the starting translation for a slide enter: away from
// the toast's resting edge, so the toast travels inward.
func slideOffset(dir position.Direction) (x, y float64) {
	switch dir {
	case position.Left:
		return -SlideDistance, 0
	case position.Right:
		return SlideDistance, 0
	case position.Top:
		return 0, -SlideDistance
	default:
		return 0, SlideDistance
	}
}

func slideEnter(dir position.Direction, d time.Duration, e Easing) Transition {
	x, y := slideOffset(dir)
	return Transition{
		Keyframes: []Frame{
			{At: 0, Opacity: ptr(0), TranslateX: ptr(x), TranslateY: ptr(y)},
			{At: 1, Opacity: ptr(1), TranslateX: ptr(0), TranslateY: ptr(0)},
		},
		Easing: e,
	}.withDuration(d)
}

func slideLeave(dir position.Direction, d time.Duration, e Easing) Transition {
	x, y := slideOffset(dir)
	return Transition{
		Keyframes: []Frame{
			{At: 0, Opacity: ptr(1), TranslateX: ptr(0), TranslateY: ptr(0)},
			{At: 1, Opacity: ptr(0), TranslateX: ptr(x), TranslateY: ptr(y)},
		},
		Easing: e,
	}.withDuration(d)
}

func fadeEnter(_ position.Direction, d time.Duration, e Easing) Transition {
	return Transition{
		Keyframes: []Frame{
			{At: 0, Opacity: ptr(0)},
			{At: 1, Opacity: ptr(1)},
		},
		Easing: e,
	}.withDuration(d)
}

func fadeLeave(_ position.Direction, d time.Duration, e Easing) Transition {
	return Transition{
		Keyframes: []Frame{
			{At: 0, Opacity: ptr(1)},
			{At: 1, Opacity: ptr(0)},
		},
		Easing: e,
	}.withDuration(d)
}

// bounceEnter ignores the requested easing: the pop reads wrong on any
// curve but its own.
func bounceEnter(_ position.Direction, d time.Duration, _ Easing) Transition {
	return Transition{
		Keyframes: []Frame{
			{At: 0, Opacity: ptr(0), Scale: ptr(bounceStartScale)},
			{At: bounceOvershootAt, Opacity: ptr(1), Scale: ptr(bounceOvershootScale)},
			{At: 1, Opacity: ptr(1), Scale: ptr(1)},
		},
		Easing: Overshoot,
	}.withDuration(d)
}

func bounceLeave(_ position.Direction, d time.Duration, e Easing) Transition {
	return Transition{
		Keyframes: []Frame{
			{At: 0, Opacity: ptr(1), Scale: ptr(1)},
			{At: 1, Opacity: ptr(0), Scale: ptr(bounceLeaveScale)},
		},
		Easing: e,
	}.withDuration(d)
}

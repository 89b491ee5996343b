package toast

import (
	"time"

	"github.com/melba-ui/melba/pkg/position"
)

// Payload is the sparse request a caller hands to Show. Zero-valued
// fields inherit the engine's configured defaults; the defaulting pass
// happens inside Show and the payload itself is never retained.
type Payload struct {
	// Message is the body text.
	Message string

	// Title is the optional heading.
	Title string

	// Type falls back to Config.DefaultType when empty.
	Type Type

	// Theme falls back to Config.Theme when empty.
	Theme Theme

	// Duration is the requested auto-dismiss delay. 0 inherits
	// Config.DefaultDuration; negative values fail validation. Positive
	// values below MinDuration are floored to it.
	Duration time.Duration

	// Sticky disables auto-dismiss outright, regardless of Duration.
	Sticky bool

	// Dismissible overrides Config.Dismissible when non-nil.
	Dismissible *bool

	// Actions are carried through untouched.
	Actions []Action

	// StyleClass is an optional extra class for the rendering surface.
	StyleClass string

	// AvatarURL selects an avatar icon. Ignored when IconHandle is set.
	AvatarURL string

	// IconHandle selects a custom icon rendered by the host.
	IconHandle any

	// ProgressBar enables the progress indicator starting at Progress.
	// Progress must be in [0,100] when ProgressBar is set.
	ProgressBar bool
	Progress    float64

	// Position overrides Config.Position when non-empty.
	Position position.Position
}

// validate checks the caller-supplied fields Show rejects.
func (p Payload) validate() error {
	if p.Duration < 0 {
		return ErrInvalidDuration
	}
	if p.ProgressBar && (p.Progress < 0 || p.Progress > 100) {
		return ErrInvalidProgress
	}
	return nil
}

// Option mutates a Payload. The shorthand constructors (Info, Success,
// Warning, Danger) accept options so callers keep one-line ergonomics
// for everything short of a full Show.
type Option func(*Payload)

// WithTitle sets the heading.
func WithTitle(title string) Option {
	return func(p *Payload) { p.Title = title }
}

// WithDuration sets the auto-dismiss delay.
func WithDuration(d time.Duration) Option {
	return func(p *Payload) { p.Duration = d }
}

// Sticky disables auto-dismiss.
func Sticky() Option {
	return func(p *Payload) { p.Sticky = true }
}

// WithPosition overrides the configured placement.
func WithPosition(pos position.Position) Option {
	return func(p *Payload) { p.Position = pos }
}

// WithTheme overrides the configured theme.
func WithTheme(th Theme) Option {
	return func(p *Payload) { p.Theme = th }
}

// WithActions appends action buttons, in order.
func WithActions(actions ...Action) Option {
	return func(p *Payload) { p.Actions = append(p.Actions, actions...) }
}

// WithProgress enables the progress bar starting at percent.
func WithProgress(percent float64) Option {
	return func(p *Payload) {
		p.ProgressBar = true
		p.Progress = percent
	}
}

// WithStyleClass sets an extra style class.
func WithStyleClass(class string) Option {
	return func(p *Payload) { p.StyleClass = class }
}

// WithAvatar selects an avatar icon.
func WithAvatar(url string) Option {
	return func(p *Payload) { p.AvatarURL = url }
}

// WithIcon selects a custom icon handle.
func WithIcon(handle any) Option {
	return func(p *Payload) { p.IconHandle = handle }
}

// Dismissible overrides the configured manual-close default.
func Dismissible(v bool) Option {
	return func(p *Payload) { p.Dismissible = &v }
}

package toast

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/melba-ui/melba/pkg/anim"
	"github.com/melba-ui/melba/pkg/position"
)

// Engine-wide timing constants.
const (
	// DefaultDuration is the auto-dismiss delay applied when a payload
	// does not specify one.
	DefaultDuration = 5 * time.Second

	// MinDuration is the floor for positive auto-dismiss delays. Any
	// positive requested duration below it is raised to it; zero stays
	// zero (never dismiss).
	MinDuration = time.Second

	// DefaultMaxVisible caps the visibility window when the config does
	// not set one.
	DefaultMaxVisible = 5
)

// Config holds the engine's global configuration. It is read once at
// construction; changing a Config after passing it to New has no
// effect. Start from DefaultConfig and adjust.
type Config struct {
	// Defaults applied to sparse payloads

	// Position is the default placement.
	// Default: position.BottomRight.
	Position position.Position

	// Theme is the default visual theme.
	// Default: ThemeLight.
	Theme Theme

	// DefaultDuration is the auto-dismiss delay for payloads that do
	// not set one. 0 falls back to the package default (5s).
	DefaultDuration time.Duration

	// DefaultType is the type for payloads that do not set one.
	// Default: TypeInfo.
	DefaultType Type

	// Dismissible is the default manual-close affordance.
	// Default: true (via DefaultConfig).
	Dismissible bool

	// Window policy

	// MaxVisible caps the visibility window.
	// Default: 5.
	MaxVisible int

	// NewestOnTop prepends new toasts so the most recent renders first.
	// Default: true (via DefaultConfig).
	NewestOnTop bool

	// Interaction

	// PauseOnHover tells hosts to forward hover enter/leave to
	// PauseTimer/ResumeTimer. The engine itself only records the
	// policy; bridges consult it.
	// Default: true (via DefaultConfig).
	PauseOnHover bool

	// Animation

	// Preset is the default transition preset.
	// Default: anim.PresetSlide.
	Preset anim.Preset

	// Animation optionally overrides preset selection per phase.
	Animation anim.Custom

	// Logger receives timer and lifecycle bookkeeping at debug level.
	// Default: slog.Default() with a component attribute.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Position:        position.Default,
		Theme:           ThemeLight,
		DefaultDuration: DefaultDuration,
		DefaultType:     TypeInfo,
		Dismissible:     true,
		MaxVisible:      DefaultMaxVisible,
		NewestOnTop:     true,
		PauseOnHover:    true,
		Preset:          anim.DefaultPreset,
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// normalize fills zero-valued enum, duration and count fields with the
// documented defaults. Boolean fields are taken as-is; DefaultConfig is
// the way to get their documented defaults.
func (c *Config) normalize() {
	if c.Position == "" {
		c.Position = position.Default
	}
	if c.Theme == "" {
		c.Theme = ThemeLight
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = DefaultDuration
	}
	if c.DefaultType == "" {
		c.DefaultType = TypeInfo
	}
	if c.MaxVisible == 0 {
		c.MaxVisible = DefaultMaxVisible
	}
	if c.Preset == "" {
		c.Preset = anim.DefaultPreset
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "toast")
	}
}

// Validate reports whether the configuration is usable. Called by New
// after normalization.
func (c *Config) Validate() error {
	if !c.Position.Valid() {
		return fmt.Errorf("%w: unknown position %q", ErrInvalidConfiguration, c.Position)
	}
	if !c.Theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", ErrInvalidConfiguration, c.Theme)
	}
	if !c.DefaultType.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidConfiguration, c.DefaultType)
	}
	if c.DefaultDuration < 0 {
		return fmt.Errorf("%w: negative default duration %v", ErrInvalidConfiguration, c.DefaultDuration)
	}
	if c.MaxVisible < 0 {
		return fmt.Errorf("%w: negative max visible %d", ErrInvalidConfiguration, c.MaxVisible)
	}
	if !c.Preset.Valid() {
		return fmt.Errorf("%w: unknown preset %q", ErrInvalidConfiguration, c.Preset)
	}
	return nil
}

// WithPosition sets the default placement and returns the config for chaining.
func (c *Config) WithPosition(p position.Position) *Config {
	c.Position = p
	return c
}

// WithTheme sets the default theme and returns the config for chaining.
func (c *Config) WithTheme(th Theme) *Config {
	c.Theme = th
	return c
}

// WithDefaultDuration sets the default auto-dismiss delay and returns
// the config for chaining.
func (c *Config) WithDefaultDuration(d time.Duration) *Config {
	c.DefaultDuration = d
	return c
}

// WithMaxVisible sets the visibility cap and returns the config for chaining.
func (c *Config) WithMaxVisible(n int) *Config {
	c.MaxVisible = n
	return c
}

// WithNewestOnTop sets the ordering policy and returns the config for chaining.
func (c *Config) WithNewestOnTop(v bool) *Config {
	c.NewestOnTop = v
	return c
}

// WithPreset sets the default animation preset and returns the config
// for chaining.
func (c *Config) WithPreset(p anim.Preset) *Config {
	c.Preset = p
	return c
}

// WithLogger sets the logger and returns the config for chaining.
func (c *Config) WithLogger(l *slog.Logger) *Config {
	c.Logger = l
	return c
}

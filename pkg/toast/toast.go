package toast

import (
	"time"

	"github.com/melba-ui/melba/pkg/position"
)

// Type represents the toast notification type. It drives default
// iconography and the severity hint exposed to assistive technology.
type Type string

const (
	TypeInfo    Type = "info"
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeDanger  Type = "danger"
)

// Valid reports whether t is a known type.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeSuccess, TypeWarning, TypeDanger:
		return true
	}
	return false
}

// Theme selects the visual theme a toast renders with.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether th is a known theme.
func (th Theme) Valid() bool {
	return th == ThemeLight || th == ThemeDark
}

// ActionVariant selects the visual weight of an action button.
type ActionVariant string

const (
	ActionPrimary   ActionVariant = "primary"
	ActionSecondary ActionVariant = "secondary"
)

// Action is a button rendered inside a toast. The engine stores the
// callback opaquely and never invokes it; the rendering surface calls
// OnSelect when the user activates the button.
type Action struct {
	Label    string
	Variant  ActionVariant
	OnSelect func()
}

// IconKind tags the icon variant carried by a toast.
type IconKind string

const (
	// IconDefault renders the icon implied by the toast's Type.
	IconDefault IconKind = "default"

	// IconAvatar renders the image at Icon.URL.
	IconAvatar IconKind = "avatar"

	// IconCustom renders via an opaque host handle. The engine stores
	// the handle; only the rendering surface understands it.
	IconCustom IconKind = "custom"
)

// Icon is the capability-typed icon slot.
type Icon struct {
	Kind IconKind

	// URL is the avatar image location. Set only when Kind is IconAvatar.
	URL string

	// Handle is the host's custom renderer handle. Set only when Kind is
	// IconCustom.
	Handle any
}

// Toast is a single transient notification record. Instances published
// by the Manager are value snapshots: mutating one has no effect on
// engine state.
type Toast struct {
	// ID is unique, opaque, assigned at creation and never reused.
	ID string

	// CreatedAt is the creation timestamp, for ordering and diagnostics.
	CreatedAt time.Time

	// Message is the body text.
	Message string

	// Title is the optional heading.
	Title string

	Type  Type
	Theme Theme

	// Duration is the resolved auto-dismiss delay. 0 means the toast
	// never auto-dismisses.
	Duration time.Duration

	// Dismissible reports whether a manual close affordance is offered.
	Dismissible bool

	// Actions are rendered in order. May be empty.
	Actions []Action

	// StyleClass is an optional extra class for the rendering surface.
	StyleClass string

	// ProgressBar enables the progress indicator; Progress is its value
	// in [0,100], meaningful only when ProgressBar is set.
	ProgressBar bool
	Progress    float64

	Icon Icon

	// Position is resolved at creation, fixed thereafter.
	Position position.Position
}

// Sticky reports whether the toast never auto-dismisses.
func (t Toast) Sticky() bool {
	return t.Duration == 0
}

package toast

import "errors"

// Sentinel errors for payload validation and engine lifecycle.
var (
	// ErrInvalidDuration is returned when a payload requests a negative
	// auto-dismiss duration.
	ErrInvalidDuration = errors.New("toast: invalid duration")

	// ErrInvalidProgress is returned when a progress value falls outside
	// [0,100].
	ErrInvalidProgress = errors.New("toast: progress out of range")

	// ErrToastNotFound is exported for hosts that want loud lookups.
	// The engine's own Dismiss and UpdateProgress deliberately stay
	// silent on unknown ids: the toast may have expired between the
	// user's action and the call.
	ErrToastNotFound = errors.New("toast: not found")

	// ErrMaxVisibleExceeded is advisory. Creation past the visible cap
	// is never rejected; the overflow is tracked but not rendered.
	ErrMaxVisibleExceeded = errors.New("toast: max visible exceeded")

	// ErrInvalidConfiguration is returned when a Config fails validation.
	ErrInvalidConfiguration = errors.New("toast: invalid configuration")

	// ErrClosed is returned when Show is called after Close.
	ErrClosed = errors.New("toast: manager closed")
)

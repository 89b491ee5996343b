package toast

import "time"

// EventKind names a lifecycle transition.
type EventKind string

const (
	EventShown     EventKind = "shown"
	EventDismissed EventKind = "dismissed"
	EventProgress  EventKind = "progress"
	EventPaused    EventKind = "paused"
	EventResumed   EventKind = "resumed"
)

// DismissReason records what removed a toast.
type DismissReason string

const (
	// ReasonManual is an explicit Dismiss call.
	ReasonManual DismissReason = "manual"

	// ReasonExpired is an auto-dismiss timer firing.
	ReasonExpired DismissReason = "expired"

	// ReasonCleared is DismissAll.
	ReasonCleared DismissReason = "cleared"

	// ReasonShutdown is Close.
	ReasonShutdown DismissReason = "shutdown"
)

// Event is one lifecycle transition, published on the manager's event
// stream. Toast is the snapshot at the time of the transition; Reason
// is set only for EventDismissed.
type Event struct {
	Kind   EventKind
	Toast  Toast
	Reason DismissReason
	At     time.Time
}

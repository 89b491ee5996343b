package reactive

// Listener is anything that can be notified when an observed value
// changes. Implementations pull the new state from the source; the
// notification itself carries no payload.
type Listener interface {
	// MarkDirty notifies the listener that the observed value changed.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used to deduplicate subscriptions.
	ID() uint64
}

// funcListener adapts a plain function to the Listener interface.
type funcListener struct {
	id uint64
	fn func()
}

func (l *funcListener) MarkDirty() { l.fn() }
func (l *funcListener) ID() uint64 { return l.id }

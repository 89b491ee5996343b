// Package reactive provides the observable state primitives the toast
// engine publishes through.
//
// # Core Types
//
// Signal[T] is a thread-safe reactive value container:
//
//	toasts := reactive.NewSignal([]Toast{})
//	value := toasts.Get()          // Read the current value
//	toasts.Set(next)               // Write (notifies subscribers on change)
//	cancel := toasts.Watch(func(v []Toast) { render(v) })
//	defer cancel()
//
// Stream[T] is a fan-out event hub for fire-and-forget notifications:
//
//	events := reactive.NewStream[Event]()
//	cancel := events.Subscribe(func(e Event) { record(e) })
//	events.Publish(Event{...})
//
// # Semantics
//
// Signals notify only when the value actually changed, judged by the
// configured equality function (or a type-appropriate default). Watch
// observers pull the latest value at notification time, so rapid
// successive updates may coalesce; the final state is always delivered.
//
// Subscriptions are explicit. There is no implicit dependency tracking:
// observers here are host bridges and collectors, not render scopes.
//
// # Thread Safety
//
// All primitives are safe for concurrent use. Notification uses a
// copy-before-notify pattern, so no internal locks are held while
// subscriber callbacks run. Callbacks run synchronously on the mutating
// goroutine and must not block.
package reactive

package toast

import (
	"sync/atomic"
	"time"
)

// timerFactory schedules fn once after d and returns a cancel function.
// It is the Manager's injectable seam: production uses afterFunc, tests
// substitute a deterministic fake.
type timerFactory func(d time.Duration, fn func()) (cancel func())

// afterFunc wraps time.AfterFunc with a fired guard so cancel and fire
// racing each other cannot run fn after cancel returns success.
func afterFunc(d time.Duration, fn func()) (cancel func()) {
	var fired atomic.Bool
	t := time.AfterFunc(d, func() {
		if fired.CompareAndSwap(false, true) {
			fn()
		}
	})
	return func() {
		fired.Store(true)
		t.Stop()
	}
}

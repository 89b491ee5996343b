// Package toast implements the toast notification lifecycle engine.
//
// A [Manager] owns the authoritative collection of active toasts: it
// validates and defaults incoming payloads, assigns identity, keeps the
// per-toast auto-dismiss timers, and derives the visibility window that
// rendering surfaces observe. Rendering itself is out of scope: hosts
// subscribe to the manager's projections and draw however they like.
//
// # Basic Usage
//
//	m := toast.New(nil) // default configuration
//	defer m.Close()
//
//	id, err := m.Success("Changes saved")
//	if err != nil {
//	    return err
//	}
//
//	// Later, from a close button:
//	m.Dismiss(id)
//
// Full control goes through Show:
//
//	id, err := m.Show(toast.Payload{
//	    Message:     "Upload in progress",
//	    Type:        toast.TypeInfo,
//	    Sticky:      true,
//	    ProgressBar: true,
//	})
//
// # Observation
//
// Watch delivers the full ordered snapshot after every mutation;
// Visible applies the window policy on demand:
//
//	cancel := m.Watch(func(all []toast.Toast) {
//	    render(m.Visible())
//	})
//	defer cancel()
//
// Subscribe delivers discrete lifecycle events (shown, dismissed,
// progress, paused, resumed) for observability hooks.
//
// # Timers
//
// Every toast with a positive resolved duration carries exactly one
// live timer; the timer fires Dismiss. PauseTimer clears the timer
// without removing the toast; ResumeTimer schedules a fresh full-length
// one. Dismissing an id whose timer already fired is a safe no-op;
// races between expiry and user action are expected, not errors.
package toast

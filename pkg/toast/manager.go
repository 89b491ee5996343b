package toast

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/melba-ui/melba/pkg/reactive"
)

// Manager is the toast lifecycle engine. It exclusively owns the
// ordered collection of active toasts and the auto-dismiss timer table;
// every other component only reads derived projections.
//
// All methods are safe for concurrent use. Notifications to Watch and
// Subscribe observers are delivered in mutation order with no internal
// lock held, so observers may call back into the Manager freely.
type Manager struct {
	cfg *Config
	log *slog.Logger

	mu       sync.Mutex
	toasts   []Toast           // ordered store; index 0 is newest when NewestOnTop
	timers   map[string]func() // toast id -> timer cancel
	pending  []func()          // queued observer deliveries, mutation order
	flushing bool
	closed   bool

	snapshot *reactive.Signal[[]Toast]
	events   *reactive.Stream[Event]

	// newTimer is the timer seam: afterFunc in production, a fake in
	// deterministic tests.
	newTimer timerFactory
}

// New creates a Manager. A nil cfg uses DefaultConfig; otherwise the
// config is cloned, zero fields are filled with the documented defaults
// and validation failures are logged. The manager still starts: an
// unknown enum value only affects the toasts that carry it.
func New(cfg *Config) *Manager {
	if cfg == nil {
		cfg = DefaultConfig()
	} else {
		cfg = cfg.Clone()
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		cfg.Logger.Error("config validation failed", "error", err)
	}

	return &Manager{
		cfg:      cfg,
		log:      cfg.Logger,
		timers:   make(map[string]func()),
		snapshot: reactive.NewSignal([]Toast(nil)).WithEquals(snapshotsEqual),
		events:   reactive.NewStream[Event](),
		newTimer: afterFunc,
	}
}

// Config returns a copy of the effective configuration.
func (m *Manager) Config() *Config {
	return m.cfg.Clone()
}

// Show validates p, resolves defaults, inserts the toast and schedules
// its auto-dismiss timer. The returned id addresses the toast in every
// other operation.
func (m *Manager) Show(p Payload) (string, error) {
	if err := p.validate(); err != nil {
		return "", err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return "", ErrClosed
	}

	t := m.resolve(p)
	if m.cfg.NewestOnTop {
		m.toasts = append([]Toast{t}, m.toasts...)
	} else {
		m.toasts = append(m.toasts, t)
	}
	if t.Duration > 0 {
		m.scheduleLocked(t.ID, t.Duration)
	}
	m.log.Debug("toast shown",
		"id", t.ID, "type", t.Type, "position", t.Position, "duration", t.Duration)
	m.publishLocked(Event{Kind: EventShown, Toast: t, At: t.CreatedAt})
	m.flushLocked()
	return t.ID, nil
}

// Info shows an info toast.
func (m *Manager) Info(message string, opts ...Option) (string, error) {
	return m.shorthand(TypeInfo, message, opts)
}

// Success shows a success toast.
func (m *Manager) Success(message string, opts ...Option) (string, error) {
	return m.shorthand(TypeSuccess, message, opts)
}

// Warning shows a warning toast.
func (m *Manager) Warning(message string, opts ...Option) (string, error) {
	return m.shorthand(TypeWarning, message, opts)
}

// Danger shows a danger toast.
func (m *Manager) Danger(message string, opts ...Option) (string, error) {
	return m.shorthand(TypeDanger, message, opts)
}

func (m *Manager) shorthand(typ Type, message string, opts []Option) (string, error) {
	p := Payload{Message: message}
	for _, opt := range opts {
		opt(&p)
	}
	p.Type = typ // shorthands fix the type
	return m.Show(p)
}

// Dismiss clears id's timer and removes the toast. Unknown ids are a
// no-op: the toast may have expired between the user's action and this
// call.
func (m *Manager) Dismiss(id string) {
	m.dismiss(id, ReasonManual)
}

func (m *Manager) dismiss(id string, reason DismissReason) {
	m.mu.Lock()
	m.clearTimerLocked(id)

	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return
	}
	t := m.toasts[i]
	m.toasts = append(m.toasts[:i], m.toasts[i+1:]...)
	m.log.Debug("toast dismissed", "id", id, "reason", reason)
	m.publishLocked(Event{Kind: EventDismissed, Toast: t, Reason: reason, At: time.Now()})
	m.flushLocked()
}

// DismissAll clears every timer and empties the collection. Observers
// see a single empty snapshot, never an intermediate state with only
// some toasts removed.
func (m *Manager) DismissAll() {
	m.mu.Lock()
	if len(m.toasts) == 0 {
		m.mu.Unlock()
		return
	}
	m.clearAllTimersLocked()
	removed := m.toasts
	m.toasts = nil

	now := time.Now()
	events := make([]Event, len(removed))
	for i, t := range removed {
		events[i] = Event{Kind: EventDismissed, Toast: t, Reason: ReasonCleared, At: now}
	}
	m.log.Debug("all toasts dismissed", "count", len(removed))
	m.publishLocked(events...)
	m.flushLocked()
}

// UpdateProgress sets id's progress to percent and enables its progress
// bar. Unknown ids are silently dropped (the toast may have already
// expired) but an out-of-range percent is the caller's bug and fails.
func (m *Manager) UpdateProgress(id string, percent float64) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidProgress
	}

	m.mu.Lock()
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return nil
	}
	m.toasts[i].ProgressBar = true
	m.toasts[i].Progress = percent
	t := m.toasts[i]
	m.publishLocked(Event{Kind: EventProgress, Toast: t, At: time.Now()})
	m.flushLocked()
	return nil
}

// PauseTimer clears id's live timer without removing the toast. No-op
// when no timer is live (sticky toast, already paused, unknown id).
func (m *Manager) PauseTimer(id string) {
	m.mu.Lock()
	if !m.clearTimerLocked(id) {
		m.mu.Unlock()
		return
	}
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return
	}
	t := m.toasts[i]
	m.log.Debug("timer paused", "id", id)
	m.publishLocked(Event{Kind: EventPaused, Toast: t, At: time.Now()})
	m.flushLocked()
}

// ResumeTimer schedules a fresh full-length timer for id. Restart from
// zero is deliberate: the engine does not track elapsed time. No-op
// when the toast is gone or never auto-dismisses.
func (m *Manager) ResumeTimer(id string) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	i := m.indexLocked(id)
	if i < 0 {
		m.mu.Unlock()
		return
	}
	t := m.toasts[i]
	if t.Duration <= 0 {
		m.mu.Unlock()
		return
	}
	// At most one live timer per toast.
	m.clearTimerLocked(id)
	m.scheduleLocked(t.ID, t.Duration)
	m.log.Debug("timer resumed", "id", id, "duration", t.Duration)
	m.publishLocked(Event{Kind: EventResumed, Toast: t, At: time.Now()})
	m.flushLocked()
}

// Visible returns the visibility window: the first MaxVisible toasts
// when NewestOnTop, otherwise the last. A view, not a truncation.
// Toasts beyond the window stay tracked with live timers until the
// window shifts.
func (m *Manager) Visible() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := m.cfg.MaxVisible
	if n < 0 {
		n = 0
	}
	if n > len(m.toasts) {
		n = len(m.toasts)
	}
	window := m.toasts[:n]
	if !m.cfg.NewestOnTop {
		window = m.toasts[len(m.toasts)-n:]
	}
	out := make([]Toast, n)
	copy(out, window)
	return out
}

// All returns the full ordered snapshot.
func (m *Manager) All() []Toast {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Watch invokes fn with the full ordered snapshot after every change,
// in mutation order. fn must not block; it may call back into the
// Manager.
func (m *Manager) Watch(fn func([]Toast)) (cancel func()) {
	return m.snapshot.Watch(fn)
}

// Subscribe invokes fn for every lifecycle event, in occurrence order.
// Same delivery rules as Watch.
func (m *Manager) Subscribe(fn func(Event)) (cancel func()) {
	return m.events.Subscribe(fn)
}

// Close stops every timer, empties the collection and makes subsequent
// Show calls fail with ErrClosed. Idempotent. Call it once when the
// engine is no longer needed so timers cannot outlive their owner.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.clearAllTimersLocked()
	removed := m.toasts
	m.toasts = nil

	now := time.Now()
	events := make([]Event, len(removed))
	for i, t := range removed {
		events[i] = Event{Kind: EventDismissed, Toast: t, Reason: ReasonShutdown, At: now}
	}
	m.log.Debug("manager closed", "dismissed", len(removed))
	m.publishLocked(events...)
	m.flushLocked()
}

// resolve fills a sparse payload into a complete Toast using the
// configured defaults.
func (m *Manager) resolve(p Payload) Toast {
	t := Toast{
		ID:          uuid.New().String(),
		CreatedAt:   time.Now(),
		Message:     p.Message,
		Title:       p.Title,
		Type:        p.Type,
		Theme:       p.Theme,
		Dismissible: m.cfg.Dismissible,
		StyleClass:  p.StyleClass,
		ProgressBar: p.ProgressBar,
		Progress:    p.Progress,
		Position:    p.Position,
	}
	if !t.Type.Valid() {
		t.Type = m.cfg.DefaultType
	}
	if !t.Theme.Valid() {
		t.Theme = m.cfg.Theme
	}
	if !t.Position.Valid() {
		t.Position = m.cfg.Position
	}
	if p.Dismissible != nil {
		t.Dismissible = *p.Dismissible
	}
	if len(p.Actions) > 0 {
		t.Actions = append([]Action(nil), p.Actions...)
	}

	switch {
	case p.Sticky:
		t.Duration = 0
	case p.Duration == 0:
		t.Duration = m.cfg.DefaultDuration
	default:
		t.Duration = p.Duration
	}
	if t.Duration > 0 && t.Duration < MinDuration {
		t.Duration = MinDuration
	}

	switch {
	case p.IconHandle != nil:
		t.Icon = Icon{Kind: IconCustom, Handle: p.IconHandle}
	case p.AvatarURL != "":
		t.Icon = Icon{Kind: IconAvatar, URL: p.AvatarURL}
	default:
		t.Icon = Icon{Kind: IconDefault}
	}
	return t
}

// scheduleLocked installs the auto-dismiss timer for id. Caller holds
// m.mu and guarantees no live timer exists for id.
func (m *Manager) scheduleLocked(id string, d time.Duration) {
	m.timers[id] = m.newTimer(d, func() {
		m.dismiss(id, ReasonExpired)
	})
}

// clearTimerLocked cancels and forgets id's timer, if any. The handle
// leaves the table before cancel runs, so a timer firing concurrently
// with its own cancellation finds no bookkeeping to race.
func (m *Manager) clearTimerLocked(id string) bool {
	cancel, ok := m.timers[id]
	if !ok {
		return false
	}
	delete(m.timers, id)
	cancel()
	return true
}

func (m *Manager) clearAllTimersLocked() {
	for id, cancel := range m.timers {
		delete(m.timers, id)
		cancel()
	}
}

func (m *Manager) indexLocked(id string) int {
	for i := range m.toasts {
		if m.toasts[i].ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) snapshotLocked() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// publishLocked queues the post-mutation snapshot plus events for
// delivery. Caller holds m.mu; flushLocked must follow.
func (m *Manager) publishLocked(events ...Event) {
	snap := m.snapshotLocked()
	m.pending = append(m.pending, func() {
		m.snapshot.Set(snap)
		for _, ev := range events {
			m.events.Publish(ev)
		}
	})
}

// flushLocked drains the pending queue in order with no lock held
// during callbacks. Only one goroutine flushes at a time; a mutation
// performed inside a callback enqueues and is picked up by the active
// flusher, so re-entrancy cannot deadlock or recurse. Caller holds
// m.mu; flushLocked returns with it released.
func (m *Manager) flushLocked() {
	if m.flushing {
		m.mu.Unlock()
		return
	}
	m.flushing = true
	for len(m.pending) > 0 {
		batch := m.pending
		m.pending = nil
		m.mu.Unlock()
		for _, deliver := range batch {
			deliver()
		}
		m.mu.Lock()
	}
	m.flushing = false
	m.mu.Unlock()
}

// snapshotsEqual compares snapshots on their render-relevant fields.
// Action callbacks and custom icon handles are skipped (func values
// never compare equal), so a no-op mutation does not wake observers.
func snapshotsEqual(a, b []Toast) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !toastsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func toastsEqual(a, b Toast) bool {
	if a.ID != b.ID || a.Message != b.Message || a.Title != b.Title ||
		a.Type != b.Type || a.Theme != b.Theme || a.Duration != b.Duration ||
		a.Dismissible != b.Dismissible || a.StyleClass != b.StyleClass ||
		a.ProgressBar != b.ProgressBar || a.Progress != b.Progress ||
		a.Position != b.Position ||
		a.Icon.Kind != b.Icon.Kind || a.Icon.URL != b.Icon.URL {
		return false
	}
	if len(a.Actions) != len(b.Actions) {
		return false
	}
	for i := range a.Actions {
		if a.Actions[i].Label != b.Actions[i].Label ||
			a.Actions[i].Variant != b.Actions[i].Variant {
			return false
		}
	}
	return true
}

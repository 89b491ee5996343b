package web

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/melba-ui/melba/pkg/toast"
)

// newBareSession builds a session wired to a manager but no socket.
// handle never touches the connection, so frame dispatch can be tested
// without a WebSocket in play.
func newBareSession(m *toast.Manager, allowShow bool) *session {
	s := &session{
		id:           "test-conn",
		mgr:          m,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		cfg:          config{allowShow: allowShow},
		pauseOnHover: m.Config().PauseOnHover,
		done:         make(chan struct{}),
		acks:         make(map[uint64]chan struct{}),
		syncCh:       make(chan struct{}, 1),
	}
	s.dispatch = Chain(s.handle)
	return s
}

func TestHandleHoverPausesAndResumes(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, false)

	id, err := m.Info("hover me")
	if err != nil {
		t.Fatalf("show: %v", err)
	}

	var kinds []toast.EventKind
	cancel := m.Subscribe(func(ev toast.Event) { kinds = append(kinds, ev.Kind) })
	defer cancel()

	ctx := context.Background()
	if err := s.handle(ctx, ClientEvent{Type: frameHover, ID: id, State: "enter"}); err != nil {
		t.Fatalf("hover enter: %v", err)
	}
	if err := s.handle(ctx, ClientEvent{Type: frameHover, ID: id, State: "leave"}); err != nil {
		t.Fatalf("hover leave: %v", err)
	}

	want := []toast.EventKind{toast.EventPaused, toast.EventResumed}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("events = %v, want %v", kinds, want)
		}
	}
}

func TestHandleHoverBadState(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, false)

	err := s.handle(context.Background(), ClientEvent{Type: frameHover, ID: "x", State: "sideways"})
	if !errors.Is(err, ErrBadFrame) {
		t.Errorf("err = %v, want ErrBadFrame", err)
	}
}

func TestHandleHoverIgnoredWhenDisabled(t *testing.T) {
	cfg := toast.DefaultConfig()
	cfg.PauseOnHover = false
	m := toast.New(cfg)
	defer m.Close()
	s := newBareSession(m, false)

	id, _ := m.Info("no pause", toast.WithDuration(30*time.Second))

	var paused int
	cancel := m.Subscribe(func(ev toast.Event) {
		if ev.Kind == toast.EventPaused {
			paused++
		}
	})
	defer cancel()

	if err := s.handle(context.Background(), ClientEvent{Type: frameHover, ID: id, State: "enter"}); err != nil {
		t.Fatalf("hover: %v", err)
	}
	if paused != 0 {
		t.Errorf("paused %d times, want 0 when pause-on-hover is off", paused)
	}
}

func TestHandleDismiss(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, false)

	id, _ := m.Info("bye")
	if err := s.handle(context.Background(), ClientEvent{Type: frameDismiss, ID: id}); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	if got := len(m.All()); got != 0 {
		t.Errorf("len(All) = %d after dismiss, want 0", got)
	}
}

func TestHandleActionInvokesCallback(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, false)

	invoked := 0
	id, err := m.Show(toast.Payload{
		Message: "undo?",
		Actions: []toast.Action{
			{Label: "Cancel", Variant: toast.ActionSecondary},
			{Label: "Undo", Variant: toast.ActionPrimary, OnSelect: func() { invoked++ }},
		},
	})
	if err != nil {
		t.Fatalf("show: %v", err)
	}

	ctx := context.Background()
	if err := s.handle(ctx, ClientEvent{Type: frameAction, ID: id, Index: 1}); err != nil {
		t.Fatalf("action: %v", err)
	}
	if invoked != 1 {
		t.Errorf("callback invoked %d times, want 1", invoked)
	}

	// Callback-less action is a no-op, not an error.
	if err := s.handle(ctx, ClientEvent{Type: frameAction, ID: id, Index: 0}); err != nil {
		t.Fatalf("action without callback: %v", err)
	}

	if err := s.handle(ctx, ClientEvent{Type: frameAction, ID: id, Index: 5}); !errors.Is(err, ErrBadFrame) {
		t.Errorf("out-of-range index: err = %v, want ErrBadFrame", err)
	}

	// A toast dismissed mid-flight drops the click silently.
	if err := s.handle(ctx, ClientEvent{Type: frameAction, ID: "gone", Index: 0}); err != nil {
		t.Errorf("unknown toast: err = %v, want nil", err)
	}
}

func TestHandleShow(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, true)

	ev := ClientEvent{Type: frameShow, Payload: &ShowPayload{Message: "from the page"}}
	if err := s.handle(context.Background(), ev); err != nil {
		t.Fatalf("show: %v", err)
	}

	all := m.All()
	if len(all) != 1 || all[0].Message != "from the page" {
		t.Errorf("All() = %+v", all)
	}
}

func TestHandleShowDisabled(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, false)

	ev := ClientEvent{Type: frameShow, Payload: &ShowPayload{Message: "nope"}}
	if err := s.handle(context.Background(), ev); !errors.Is(err, ErrShowDisabled) {
		t.Errorf("err = %v, want ErrShowDisabled", err)
	}
	if len(m.All()) != 0 {
		t.Error("disabled show still created a toast")
	}
}

func TestHandleShowMissingPayload(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, true)

	if err := s.handle(context.Background(), ClientEvent{Type: frameShow}); !errors.Is(err, ErrBadFrame) {
		t.Errorf("err = %v, want ErrBadFrame", err)
	}
}

func TestHandleUnknownFrame(t *testing.T) {
	m := toast.New(toast.DefaultConfig())
	defer m.Close()
	s := newBareSession(m, false)

	err := s.handle(context.Background(), ClientEvent{Type: "telemetry"})
	if !errors.Is(err, ErrUnknownFrame) {
		t.Fatalf("err = %v, want ErrUnknownFrame", err)
	}

	var fe *FrameError
	if !errors.As(err, &fe) || fe.Conn != "test-conn" {
		t.Errorf("FrameError = %+v", fe)
	}
}

func TestDiffWindows(t *testing.T) {
	mk := func(ids ...string) []toast.Toast {
		out := make([]toast.Toast, len(ids))
		for i, id := range ids {
			out[i] = toast.Toast{ID: id}
		}
		return out
	}

	entered, left := diffWindows(mk("a", "b"), mk("b", "c", "d"))
	if len(entered) != 2 || entered[0].ID != "c" || entered[1].ID != "d" {
		t.Errorf("entered = %+v", entered)
	}
	if len(left) != 1 || left[0].ID != "a" {
		t.Errorf("left = %+v", left)
	}

	entered, left = diffWindows(nil, mk("x"))
	if len(entered) != 1 || len(left) != 0 {
		t.Errorf("from empty: entered=%d left=%d", len(entered), len(left))
	}

	entered, left = diffWindows(mk("x"), nil)
	if len(entered) != 0 || len(left) != 1 {
		t.Errorf("to empty: entered=%d left=%d", len(entered), len(left))
	}

	entered, left = diffWindows(mk("a", "b"), mk("a", "b"))
	if len(entered) != 0 || len(left) != 0 {
		t.Errorf("no change: entered=%d left=%d", len(entered), len(left))
	}
}

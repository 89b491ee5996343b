package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/melba-ui/melba/pkg/anim"
	"github.com/melba-ui/melba/pkg/container"
	"github.com/melba-ui/melba/pkg/toast"
)

// session owns one WebSocket connection: it pushes sync and animate
// frames to the client and dispatches the client's frames into the
// engine. Writes are serialized by mu; the projection push runs on its
// own goroutine so a slow socket never stalls the engine's observer
// flush.
type session struct {
	id   string
	conn *websocket.Conn
	mgr  *toast.Manager
	orch *anim.Orchestrator
	log  *slog.Logger
	cfg  config

	reduced      bool // client asked for reduced motion at handshake
	pauseOnHover bool
	preset       anim.Preset
	custom       anim.Custom

	mu     sync.Mutex // serializes conn writes
	closed atomic.Bool
	done   chan struct{}

	seq   atomic.Uint64
	ackMu sync.Mutex
	acks  map[uint64]chan struct{}

	// dispatch is the middleware-wrapped frame handler.
	dispatch EventHandler

	// syncCh coalesces projection changes; pushLoop drains it. The
	// Watch callback only drops a token here so the engine is never
	// blocked on the socket.
	syncCh chan struct{}

	// visible is the last pushed window, owned by pushLoop.
	visible []toast.Toast

	cancelWatch func()
}

func newSession(conn *websocket.Conn, mgr *toast.Manager, cfg config, reduced bool) *session {
	mcfg := mgr.Config()
	s := &session{
		id:           uuid.New().String(),
		conn:         conn,
		mgr:          mgr,
		cfg:          cfg,
		reduced:      reduced,
		pauseOnHover: mcfg.PauseOnHover,
		preset:       mcfg.Preset,
		custom:       mcfg.Animation,
		done:         make(chan struct{}),
		acks:         make(map[uint64]chan struct{}),
		syncCh:       make(chan struct{}, 1),
	}
	s.log = cfg.log.With("conn", s.id)
	s.orch = anim.New(
		anim.WithDefaultPreset(mcfg.Preset),
		anim.WithMotionCheck(func() bool { return s.reduced }),
	)
	s.dispatch = Chain(s.handle, cfg.middlewares...)
	return s
}

// run drives the session until the peer disconnects. It registers the
// projection watch, pushes the initial window, and then blocks in the
// read loop.
func (s *session) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.close()

	s.cancelWatch = s.mgr.Watch(func([]toast.Toast) {
		select {
		case s.syncCh <- struct{}{}:
		default: // a push is already pending
		}
	})

	s.pushSync(ctx)

	go s.writeLoop()
	go s.pushLoop(ctx)

	s.readLoop(ctx)
}

// readLoop reads frames until the connection drops. Done frames are
// protocol bookkeeping and resolve animation acks directly; everything
// else goes through the middleware chain.
func (s *session) readLoop(ctx context.Context) {
	defer s.close()

	s.conn.SetReadDeadline(time.Now().Add(s.cfg.readTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.cfg.readTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.log.Error("read error", "error", err)
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.cfg.readTimeout))

		var ev ClientEvent
		if err := json.Unmarshal(msg, &ev); err != nil {
			s.log.Warn("frame decode error", "error", err)
			continue
		}

		if ev.Type == frameDone {
			s.ack(ev.Seq)
			continue
		}

		if err := s.dispatch(ctx, ev); err != nil {
			s.log.Warn("event dispatch failed", "type", ev.Type, "error", err)
		}
	}
}

// writeLoop sends heartbeat pings until the session is closed.
func (s *session) writeLoop() {
	ticker := time.NewTicker(s.cfg.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.ping(); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

// pushLoop turns coalesced change tokens into sync pushes.
func (s *session) pushLoop(ctx context.Context) {
	for {
		select {
		case <-s.syncCh:
			s.pushSync(ctx)
		case <-s.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// pushSync sends the current visible window and stages enter/leave
// animations for toasts that joined or left it. The sync frame is
// written before any animate frame for the same change, so the client
// always learns about membership first.
func (s *session) pushSync(ctx context.Context) {
	next := s.mgr.Visible()
	prev := s.visible
	s.visible = next

	frame := outFrame{Type: frameSync, Containers: encodeContainers(container.Split(next))}
	if err := s.enqueue(frame); err != nil {
		return
	}

	entered, left := diffWindows(prev, next)
	for _, t := range entered {
		s.animate(ctx, t, "enter")
	}
	for _, t := range left {
		s.animate(ctx, t, "leave")
	}
}

func (s *session) animate(ctx context.Context, t toast.Toast, phase string) {
	el := &remoteElement{sess: s, id: t.ID, phase: phase}
	pos := t.Position
	opts := anim.Options{Preset: s.preset, Custom: s.custom}

	go func() {
		var err error
		if phase == "enter" {
			err = s.orch.Enter(ctx, el, pos, opts)
		} else {
			err = s.orch.Leave(ctx, el, pos, opts)
		}
		if err != nil && !errors.Is(err, ErrConnClosed) && !errors.Is(err, context.Canceled) {
			s.log.Debug("animation aborted", "toast", t.ID, "phase", phase, "error", err)
		}
	}()
}

// diffWindows reports which toasts joined and which left between two
// visible windows, by id.
func diffWindows(prev, next []toast.Toast) (entered, left []toast.Toast) {
	seen := make(map[string]struct{}, len(prev))
	for _, t := range prev {
		seen[t.ID] = struct{}{}
	}
	keep := make(map[string]struct{}, len(next))
	for _, t := range next {
		keep[t.ID] = struct{}{}
		if _, ok := seen[t.ID]; !ok {
			entered = append(entered, t)
		}
	}
	for _, t := range prev {
		if _, ok := keep[t.ID]; !ok {
			left = append(left, t)
		}
	}
	return entered, left
}

// handle is the innermost event handler; middleware wraps it.
func (s *session) handle(ctx context.Context, ev ClientEvent) error {
	switch ev.Type {
	case frameHover:
		if !s.pauseOnHover {
			return nil
		}
		switch ev.State {
		case "enter":
			s.mgr.PauseTimer(ev.ID)
		case "leave":
			s.mgr.ResumeTimer(ev.ID)
		default:
			return &FrameError{Conn: s.id, Op: "hover", Err: ErrBadFrame}
		}

	case frameDismiss:
		s.mgr.Dismiss(ev.ID)

	case frameAction:
		return s.invokeAction(ev.ID, ev.Index)

	case frameShow:
		if !s.cfg.allowShow {
			return &FrameError{Conn: s.id, Op: "show", Err: ErrShowDisabled}
		}
		if ev.Payload == nil {
			return &FrameError{Conn: s.id, Op: "show", Err: ErrBadFrame}
		}
		if _, err := s.mgr.Show(decodeShow(ev.Payload)); err != nil {
			return &FrameError{Conn: s.id, Op: "show", Err: err}
		}

	default:
		return &FrameError{Conn: s.id, Op: "dispatch", Err: ErrUnknownFrame}
	}
	return nil
}

// invokeAction runs the callback of one toast action. The engine is
// not involved; actions that should also dismiss do so themselves.
// Unknown toast ids are dropped silently since the toast may have been
// dismissed while the click was in flight.
func (s *session) invokeAction(id string, index int) error {
	for _, t := range s.mgr.All() {
		if t.ID != id {
			continue
		}
		if index < 0 || index >= len(t.Actions) {
			return &FrameError{Conn: s.id, Op: "action", Err: ErrBadFrame}
		}
		if fn := t.Actions[index].OnSelect; fn != nil {
			fn()
		}
		return nil
	}
	return nil
}

// enqueue writes one frame, serialized with the session mutex.
func (s *session) enqueue(f outFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrConnClosed
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.writeTimeout))
	if err := s.conn.WriteJSON(f); err != nil {
		s.log.Error("write error", "error", err)
		return &FrameError{Conn: s.id, Op: "write", Err: err}
	}
	return nil
}

func (s *session) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return ErrConnClosed
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.cfg.writeTimeout))
	return s.conn.WriteMessage(websocket.PingMessage, nil)
}

func (s *session) registerAck(seq uint64) <-chan struct{} {
	ch := make(chan struct{})
	s.ackMu.Lock()
	s.acks[seq] = ch
	s.ackMu.Unlock()
	return ch
}

func (s *session) dropAck(seq uint64) {
	s.ackMu.Lock()
	delete(s.acks, seq)
	s.ackMu.Unlock()
}

func (s *session) ack(seq uint64) {
	s.ackMu.Lock()
	ch, ok := s.acks[seq]
	if ok {
		delete(s.acks, seq)
	}
	s.ackMu.Unlock()
	if ok {
		close(ch)
	}
}

// close tears the session down. Safe to call more than once.
func (s *session) close() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	if s.cancelWatch != nil {
		s.cancelWatch()
	}
	s.conn.Close()
}

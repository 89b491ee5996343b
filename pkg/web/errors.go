package web

import (
	"errors"
	"fmt"
)

// ErrUnknownFrame is returned when a client sends a frame whose type
// the bridge does not recognize.
var ErrUnknownFrame = errors.New("web: unknown frame type")

// ErrShowDisabled is returned when a client sends a show frame but the
// handler was not built with show enabled.
var ErrShowDisabled = errors.New("web: show frames are disabled")

// ErrConnClosed is returned when a frame cannot be delivered because
// the connection has already shut down.
var ErrConnClosed = errors.New("web: connection closed")

// ErrBadFrame is returned when a frame decodes but fails validation,
// for example an action index that is out of range.
var ErrBadFrame = errors.New("web: malformed frame")

// FrameError wraps an error with the connection and operation it
// occurred in. Use errors.As to recover it and errors.Is to match the
// underlying sentinel.
type FrameError struct {
	Conn string // connection id
	Op   string // operation, e.g. "dispatch", "write"
	Err  error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("web: conn %s: %s: %v", e.Conn, e.Op, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

package web

import "context"

// EventHandler processes one inbound client event. The context carries
// the connection's lifetime and anything upstream middleware attached.
type EventHandler func(ctx context.Context, ev ClientEvent) error

// Middleware wraps an EventHandler with cross-cutting behavior. The
// first middleware passed to the handler runs outermost, matching the
// chi convention for HTTP middleware.
type Middleware func(next EventHandler) EventHandler

// Chain composes middlewares around a final handler.
func Chain(h EventHandler, mws ...Middleware) EventHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

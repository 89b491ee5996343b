// Package web is the reference host bridge: it mirrors a Manager's
// state to a browser page over WebSocket and forwards the page's
// pointer events back into the engine.
//
// The bridge is deliberately thin. State flows one way, the engine is
// authoritative, and the client renders what it is told:
//
//   - On every projection change the bridge pushes a "sync" frame
//     carrying the visible window grouped by container position.
//   - Toast mount/unmount is staged with "animate" frames built by the
//     animation orchestrator. Sync frames always precede the animate
//     frame for the same change, so the client can keep a leaving
//     toast's node alive until its transition finishes.
//   - Inbound frames map to engine calls: hover pauses/resumes timers
//     (when the engine config enables pause-on-hover), dismiss
//     dismisses, action invokes the action's own callback, show (when
//     enabled) creates a toast for demo pages.
//
// A client that prefers reduced motion passes reducedMotion=1 in the
// handshake query; the per-connection orchestrator then degrades every
// transition accordingly.
//
// Inbound events pass through a [Middleware] chain before dispatch,
// which is where tracing and similar cross-cutting concerns attach.
package web

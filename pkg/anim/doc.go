// Package anim describes and orchestrates toast enter/leave transitions.
//
// The package is deliberately split in two halves:
//
//   - Transition descriptions: [Frame], [Transition] and [Easing] are pure
//     data. Presets (slide, fade, bounce, none) are pure functions from
//     direction, duration and easing to a Transition, with no shared state
//     and no side effects.
//   - Orchestration: [Enter] and [Leave] decide which transition actually
//     runs for a given element, honoring custom overrides and the host's
//     reduced-motion preference, then drive the host's [Element] and wait
//     for completion.
//
// # Hosts
//
// A rendering surface integrates by implementing [Element]. A browser
// bridge typically serializes the Transition (Easing stays a CSS string
// for exactly this reason) and lets the compositor play it; a native host
// calls [Easing.Curve] and interpolates keyframes itself.
//
// # Reduced motion
//
// When the environment prefers reduced motion, the orchestrator replaces
// whatever preset was requested with fade at a shortened duration. Custom
// overrides are exempt: a host supplying its own [Animator] is expected
// to make that call itself.
package anim

// Package position defines the canonical screen placements for toasts
// and the rules for deriving an animation direction from a placement.
//
// A Position serves two purposes: it selects which on-screen container
// stack a toast belongs to, and it determines the edge a directional
// animation (such as slide) travels from.
package position

import "strings"

// Position is one of the six canonical screen placements.
type Position string

const (
	TopLeft      Position = "top-left"
	TopCenter    Position = "top-center"
	TopRight     Position = "top-right"
	BottomLeft   Position = "bottom-left"
	BottomCenter Position = "bottom-center"
	BottomRight  Position = "bottom-right"
)

// Default is the placement used when neither the payload nor the global
// configuration specifies one.
const Default = BottomRight

// All returns the six canonical placements in reading order.
func All() []Position {
	return []Position{
		TopLeft, TopCenter, TopRight,
		BottomLeft, BottomCenter, BottomRight,
	}
}

// Valid reports whether p is one of the six canonical placements.
func (p Position) Valid() bool {
	switch p {
	case TopLeft, TopCenter, TopRight, BottomLeft, BottomCenter, BottomRight:
		return true
	}
	return false
}

// Direction identifies the screen edge an animation travels from.
type Direction uint8

const (
	Left Direction = iota
	Right
	Top
	Bottom
)

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Direction derives the animation direction from the placement.
// Placements on the left or right column use that horizontal edge;
// center columns fall back to the leading word, so top-center maps to
// top and bottom-center maps to bottom. Unknown placements map to
// Bottom, matching the default placement's edge.
func (p Position) Direction() Direction {
	s := string(p)
	switch {
	case strings.Contains(s, "left"):
		return Left
	case strings.Contains(s, "right"):
		return Right
	case strings.HasPrefix(s, "top"):
		return Top
	default:
		return Bottom
	}
}

package anim

import (
	"math"
	"strconv"
	"strings"
)

// Easing is a CSS-compatible timing function. Browser hosts can pass the
// string straight through to the compositor; native hosts call Curve to
// obtain the equivalent progress-mapping function.
type Easing string

// Named timing functions. Each matches its CSS keyword equivalent.
const (
	Linear    Easing = "linear"
	Ease      Easing = "ease"
	EaseIn    Easing = "ease-in"
	EaseOut   Easing = "ease-out"
	EaseInOut Easing = "ease-in-out"

	// Overshoot is the bounce preset's fixed curve: it exceeds 1.0 before
	// settling, producing the characteristic pop.
	Overshoot Easing = "cubic-bezier(0.34, 1.56, 0.64, 1)"
)

// DefaultEasing is used when a transition does not specify one.
const DefaultEasing = EaseInOut

// Curve resolves the easing into a function mapping linear progress
// t in [0,1] to eased progress. Keywords resolve to their standard
// control points; cubic-bezier(x1, y1, x2, y2) literals are parsed.
// Empty strings resolve to DefaultEasing, unrecognized ones to Linear.
func (e Easing) Curve() func(float64) float64 {
	switch e {
	case "":
		return DefaultEasing.Curve()
	case Linear:
		return func(t float64) float64 { return t }
	case Ease:
		return CubicBezier(0.25, 0.1, 0.25, 1.0)
	case EaseIn:
		return CubicBezier(0.42, 0.0, 1.0, 1.0)
	case EaseOut:
		return CubicBezier(0.0, 0.0, 0.58, 1.0)
	case EaseInOut:
		return CubicBezier(0.42, 0.0, 0.58, 1.0)
	}

	if x1, y1, x2, y2, ok := parseCubicBezier(string(e)); ok {
		return CubicBezier(x1, y1, x2, y2)
	}
	return Linear.Curve()
}

// parseCubicBezier extracts the four control values from a
// "cubic-bezier(x1, y1, x2, y2)" literal.
func parseCubicBezier(s string) (x1, y1, x2, y2 float64, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "cubic-bezier(") || !strings.HasSuffix(s, ")") {
		return 0, 0, 0, 0, false
	}
	inner := s[len("cubic-bezier(") : len(s)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, false
	}

	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		vals[i] = v
	}
	// CSS requires the x coordinates inside [0,1]; y may overshoot.
	if vals[0] < 0 || vals[0] > 1 || vals[2] < 0 || vals[2] > 1 {
		return 0, 0, 0, 0, false
	}
	return vals[0], vals[1], vals[2], vals[3], true
}

// CubicBezier returns a timing function matching CSS cubic-bezier().
// The parameters define the two control points (x1,y1) and (x2,y2); the
// curve runs from (0,0) to (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// Newton-Raphson converges quickly for most inputs.
		for i := 0; i < 8; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return sampleCurve(y1, y2, clampUnit(u))
			}
			dx := sampleCurveDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback guarantees a stable solution in [0,1].
		lo, hi := 0.0, 1.0
		u = clampUnit(u)
		for i := 0; i < 12; i++ {
			x := sampleCurve(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}

		return sampleCurve(y1, y2, u)
	}
}

func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func sampleCurveDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

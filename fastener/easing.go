package fastener

import "math"

// Easing maps linear progress to eased progress. Easings clamp their input
// to [0, 1], so progress outside a timing window settles on an endpoint.
type Easing func(u float64) float64

func Linear(u float64) float64 {
	return clampUnit(u)
}

var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = CubicBezier(0.42, 0.0, 1.0, 1.0)
	EaseOut   = CubicBezier(0.0, 0.0, 0.58, 1.0)
	EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)
)

// CubicBezier returns the easing with control points (x1, y1) and (x2, y2),
// matching CSS cubic-bezier().
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return func(u float64) float64 {
		if u <= 0 {
			return 0
		}
		if u >= 1 {
			return 1
		}
		return bezier(y1, y2, solveBezierX(x1, x2, u))
	}
}

// solveBezierX finds the curve parameter whose x coordinate is x.
func solveBezierX(x1, x2, x float64) float64 {
	const epsilon = 1e-7

	s := x
	for i := 0; i < 8; i++ {
		dx := bezier(x1, x2, s) - x
		if math.Abs(dx) < epsilon {
			return s
		}
		slope := bezierSlope(x1, x2, s)
		if math.Abs(slope) < epsilon {
			break
		}
		s -= dx / slope
	}

	lo, hi := 0.0, 1.0
	s = clampUnit(s)
	for i := 0; i < 16; i++ {
		dx := bezier(x1, x2, s) - x
		if math.Abs(dx) < epsilon {
			break
		}
		if dx > 0 {
			hi = s
		} else {
			lo = s
		}
		s = (lo + hi) / 2
	}
	return s
}

func bezier(p1, p2, s float64) float64 {
	r := 1 - s
	return 3*r*r*s*p1 + 3*r*s*s*p2 + s*s*s
}

func bezierSlope(p1, p2, s float64) float64 {
	r := 1 - s
	return 3*r*r*p1 + 6*r*s*(p2-p1) + 3*s*s*(1-p2)
}

func clampUnit(u float64) float64 {
	return math.Max(0, math.Min(1, u))
}

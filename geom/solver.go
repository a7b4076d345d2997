package geom

import "math"

// Polynomial root solvers for quadratic and cubic equations, used for curve
// extrema and for inverting cubic-bezier easing curves.
//
// Based on algorithms from kurbo (https://github.com/linebender/kurbo).

// SolveQuadratic finds real roots of ax^2 + bx + c = 0, sorted ascending.
// A zero or vanishing a degrades to the linear equation.
func SolveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		root := -c / b
		if isFinite(root) {
			return []float64{root}
		}
		if c == 0 && b == 0 {
			return []float64{0}
		}
		return nil
	}

	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	switch {
	case !isFinite(arg):
		root1 = -sc1
	case arg < 0:
		return nil
	case arg == 0:
		return []float64{-0.5 * sc1}
	default:
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}

	root2 := sc0 / root1
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

// SolveCubic finds real roots of ax^3 + bx^2 + cx + d = 0 (unsorted).
//
// The implementation follows https://momentsingraphics.de/CubicRoots.html,
// which is based on Jim Blinn's "How to Solve a Cubic Equation".
func SolveCubic(a, b, c, d float64) []float64 {
	const oneThird = 1.0 / 3.0
	aRecip := 1.0 / a

	c2 := b * (oneThird * aRecip)
	c1 := c * (oneThird * aRecip)
	c0 := d * aRecip
	if !isFinite(c0) || !isFinite(c1) || !isFinite(c2) {
		return SolveQuadratic(b, c, d)
	}

	d0 := (-c2)*c2 + c1
	d1 := (-c1)*c2 + c0
	d2 := c2*c0 - c1*c1
	disc := 4.0*d0*d2 - d1*d1
	de := (-2.0*c2)*d0 + d1

	if disc < 0 {
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	} else if disc == 0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2.0*t1 - c2}
	}

	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)
	ss3 := thSin * math.Sqrt(3.0)
	t := 2.0 * math.Sqrt(-d0)

	return []float64{
		t*thCos - c2,
		t*0.5*(-thCos+ss3) - c2,
		t*0.5*(-thCos-ss3) - c2,
	}
}

// SolveQuadraticInUnitInterval returns roots of ax^2 + bx + c = 0 in [0, 1].
func SolveQuadraticInUnitInterval(a, b, c float64) []float64 {
	return filterUnitInterval(SolveQuadratic(a, b, c))
}

// SolveCubicInUnitInterval returns roots of ax^3 + bx^2 + cx + d = 0 in [0, 1].
func SolveCubicInUnitInterval(a, b, c, d float64) []float64 {
	return filterUnitInterval(SolveCubic(a, b, c, d))
}

// filterUnitInterval keeps roots in [0, 1], snapping values within a small
// epsilon of the boundaries onto them.
func filterUnitInterval(roots []float64) []float64 {
	const eps = 1e-12
	var result []float64
	for _, r := range roots {
		if r < -eps || r > 1.0+eps {
			continue
		}
		result = append(result, math.Max(0, math.Min(1, r)))
	}
	return result
}

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

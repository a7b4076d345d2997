package anim

import (
	"math"

	"github.com/gogpu/lottie/geom"
)

// Property is an animated value. The zero Property is static and evaluates
// to the zero value of T.
type Property[T Value] struct {
	keyframes []Keyframe[T]
	animated  bool
}

// Static returns a property that always evaluates to v.
func Static[T Value](v T) Property[T] {
	return Property[T]{keyframes: []Keyframe[T]{{StartValue: v, EndValue: v}}}
}

// Animated returns a property over already-canonical keyframes.
// An empty list yields the zero Property.
func Animated[T Value](kfs []Keyframe[T]) Property[T] {
	return Property[T]{keyframes: kfs, animated: len(kfs) > 0}
}

// NewProperty normalizes raw and wraps the result.
func NewProperty[T Value](raw Raw[T]) (Property[T], error) {
	kfs, err := Normalize(raw)
	if err != nil {
		return Property[T]{}, err
	}
	if raw.Static != nil {
		return Property[T]{keyframes: kfs}, nil
	}
	return Animated(kfs), nil
}

// IsAnimated reports whether the property was built from a keyframe list.
func (p Property[T]) IsAnimated() bool {
	return p.animated
}

// Keyframes returns the canonical keyframes.
func (p Property[T]) Keyframes() []Keyframe[T] {
	return p.keyframes
}

// Value samples the property at frame.
func (p Property[T]) Value(frame float64) T {
	kfs := p.keyframes
	if len(kfs) == 0 {
		var zero T
		return zero
	}
	if !p.animated || frame < kfs[0].StartFrame {
		return kfs[0].StartValue
	}
	last := kfs[len(kfs)-1]
	if frame >= last.EndFrame {
		return last.EndValue
	}

	kf := kfs[p.find(frame)]
	if kf.Hold {
		return kf.StartValue
	}
	span := kf.EndFrame - kf.StartFrame
	t := 1.0
	if span > 0 {
		t = math.Max(0, math.Min(1, (frame-kf.StartFrame)/span))
	}
	return Lerp(kf.StartValue, kf.EndValue, Ease(kf.Out, kf.In, t))
}

// find returns the index of the keyframe whose [StartFrame, EndFrame)
// contains frame. Frames in a gap between keyframes resolve to the
// preceding one.
func (p Property[T]) find(frame float64) int {
	lo, hi := 0, len(p.keyframes)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.keyframes[mid].StartFrame <= frame {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Ease maps linear progress t through the cubic-bezier curve
// (0,0) out in (1,1). Missing handles leave t unchanged.
func Ease(out, in *Handle, t float64) float64 {
	if out == nil || in == nil {
		return t
	}
	if out.X == out.Y && in.X == in.Y {
		return t
	}
	x1 := math.Max(0, math.Min(1, out.X))
	x2 := math.Max(0, math.Min(1, in.X))

	// x(s) = a*s^3 + b*s^2 + c*s
	a := 1 + 3*x1 - 3*x2
	b := 3*x2 - 6*x1
	c := 3 * x1
	s := t
	if roots := geom.SolveCubicInUnitInterval(a, b, c, -t); len(roots) > 0 {
		s = roots[0]
	}

	ms := 1 - s
	return 3*ms*ms*s*out.Y + 3*ms*s*s*in.Y + s*s*s
}

package anim

import "github.com/gogpu/lottie/geom"

// Value is the set of types a Property can animate.
type Value interface {
	float64 | geom.Point | Color | Bezier | Scalars
}

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Bezier is a cubic bezier shape in vertex form. Tangents are relative to
// their vertex.
type Bezier struct {
	Closed      bool
	Vertices    []geom.Point
	InTangents  []geom.Point
	OutTangents []geom.Point
}

// Valid reports whether the three arrays have equal length.
func (b Bezier) Valid() bool {
	return len(b.InTangents) == len(b.Vertices) && len(b.OutTangents) == len(b.Vertices)
}

// Scalars is a flat list of numbers, such as gradient stop data.
type Scalars []float64

// Lerp interpolates between a and b at t. Values whose shapes differ (bezier
// vertex counts, scalar list lengths) snap to a until t reaches 1.
func Lerp[T Value](a, b T, t float64) T {
	var out any
	switch av := any(a).(type) {
	case float64:
		out = av + (any(b).(float64)-av)*t
	case geom.Point:
		out = av.Lerp(any(b).(geom.Point), t)
	case Color:
		bv := any(b).(Color)
		out = Color{
			R: av.R + (bv.R-av.R)*t,
			G: av.G + (bv.G-av.G)*t,
			B: av.B + (bv.B-av.B)*t,
			A: av.A + (bv.A-av.A)*t,
		}
	case Bezier:
		out = lerpBezier(av, any(b).(Bezier), t)
	case Scalars:
		out = lerpScalars(av, any(b).(Scalars), t)
	}
	return out.(T)
}

func lerpBezier(a, b Bezier, t float64) Bezier {
	if len(a.Vertices) != len(b.Vertices) {
		if t >= 1 {
			return b
		}
		return a
	}
	n := len(a.Vertices)
	out := Bezier{
		Closed:      a.Closed,
		Vertices:    make([]geom.Point, n),
		InTangents:  make([]geom.Point, n),
		OutTangents: make([]geom.Point, n),
	}
	for i := range n {
		out.Vertices[i] = a.Vertices[i].Lerp(b.Vertices[i], t)
		out.InTangents[i] = a.InTangents[i].Lerp(b.InTangents[i], t)
		out.OutTangents[i] = a.OutTangents[i].Lerp(b.OutTangents[i], t)
	}
	return out
}

func lerpScalars(a, b Scalars, t float64) Scalars {
	if len(a) != len(b) {
		if t >= 1 {
			return b
		}
		return a
	}
	out := make(Scalars, len(a))
	for i := range a {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

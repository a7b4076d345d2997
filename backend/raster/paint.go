package raster

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// Solid is a single color paint.
type Solid struct {
	Color backend.Color
}

// Linear is a linear gradient between Start and End. Colors pad beyond
// the end points.
type Linear struct {
	Start, End geom.Point
	Stops      []backend.GradientStop
}

// Radial is a radial gradient of Radius around Center. A Focus away from
// the center shifts the origin of the color rays.
type Radial struct {
	Center, Focus geom.Point
	Radius        float64
	Stops         []backend.GradientStop
}

// sortedStops returns a copy of stops ordered by offset.
func sortedStops(stops []backend.GradientStop) []backend.GradientStop {
	s := slices.Clone(stops)
	slices.SortStableFunc(s, func(a, b backend.GradientStop) int {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	})
	return s
}

// colorAt interpolates the sorted stops at t, padding outside [0, 1].
// Color channels blend in sRGB space.
func colorAt(stops []backend.GradientStop, t float64) backend.Color {
	switch {
	case len(stops) == 0:
		return backend.Transparent
	case t <= stops[0].Offset:
		return stops[0].Color
	case t >= stops[len(stops)-1].Offset:
		return stops[len(stops)-1].Color
	}
	i, _ := slices.BinarySearchFunc(stops, t, func(s backend.GradientStop, t float64) int {
		if s.Offset < t {
			return -1
		}
		return 1
	})
	a, b := stops[i-1], stops[i]
	if b.Offset == a.Offset {
		return a.Color
	}
	u := (t - a.Offset) / (b.Offset - a.Offset)
	c := colorful.Color{R: a.Color.R, G: a.Color.G, B: a.Color.B}.
		BlendRgb(colorful.Color{R: b.Color.R, G: b.Color.G, B: b.Color.B}, u)
	return backend.Color{R: c.R, G: c.G, B: c.B, A: a.Color.A + (b.Color.A-a.Color.A)*u}
}

// nrgba converts c with its alpha scaled by opacity.
func nrgba(c backend.Color, opacity float64) color.NRGBA64 {
	ch := func(v float64) uint16 {
		return uint16(math.Round(math.Max(0, math.Min(1, v)) * 0xffff))
	}
	return color.NRGBA64{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A * opacity)}
}

var infinite = image.Rect(-1e9, -1e9, 1e9, 1e9)

// shader is an unbounded source image that evaluates a gradient per
// pixel center. inv maps device space back to gradient space.
type shader struct {
	inv     geom.Matrix
	stops   []backend.GradientStop
	opacity float64
	param   func(p geom.Point) float64
}

func (s *shader) ColorModel() color.Model { return color.NRGBA64Model }
func (s *shader) Bounds() image.Rectangle { return infinite }

func (s *shader) At(x, y int) color.Color {
	p := s.inv.TransformPoint(geom.Pt(float64(x)+0.5, float64(y)+0.5))
	return nrgba(colorAt(s.stops, s.param(p)), s.opacity)
}

// source returns the image a paint fills with under matrix m.
func source(p backend.Paint, m geom.Matrix, opacity float64) (image.Image, bool) {
	switch p := p.(type) {
	case Solid:
		return image.NewUniform(nrgba(p.Color, opacity)), true
	case Linear:
		inv := m.Invert()
		d := p.End.Sub(p.Start)
		lenSq := d.Dot(d)
		return &shader{inv: inv, stops: sortedStops(p.Stops), opacity: opacity, param: func(q geom.Point) float64 {
			if lenSq == 0 {
				return 0
			}
			return q.Sub(p.Start).Dot(d) / lenSq
		}}, true
	case Radial:
		return &shader{inv: m.Invert(), stops: sortedStops(p.Stops), opacity: opacity, param: p.param}, true
	}
	return nil, false
}

// param returns the gradient position of q: the fraction of the way from
// Focus to the circle along the ray through q.
func (g Radial) param(q geom.Point) float64 {
	if g.Radius <= 0 {
		return 0
	}
	if g.Focus == g.Center {
		return q.Distance(g.Center) / g.Radius
	}
	d := q.Sub(g.Focus)
	f := g.Center.Sub(g.Focus)
	a := d.Dot(d)
	if a == 0 {
		return 0
	}
	b := -2 * d.Dot(f)
	c := f.Dot(f) - g.Radius*g.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 1
	}
	t := (-b + math.Sqrt(disc)) / (2 * a)
	if t <= 0 {
		return 1
	}
	return 1 / t
}

package lottie

import (
	"math"

	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// paintSpec is a paint resolved at one frame, not yet converted for a
// backend. gradient is nil for solid colors.
type paintSpec struct {
	color    backend.Color
	gradient *gradientSpec
}

type gradientSpec struct {
	kind       GradientKind
	start, end geom.Point
	focus      geom.Point
	radius     float64
	stops      []backend.GradientStop
}

func (p paintSpec) convert(b backend.StyleConv) backend.Paint {
	g := p.gradient
	switch {
	case g == nil:
		return b.SolidColor(p.color)
	case g.kind == RadialGradient:
		return b.RadialGradient(g.start, g.focus, g.radius, g.stops)
	}
	return b.LinearGradient(g.start, g.end, g.stops)
}

// paintStyle is a resolved fill or stroke. stroke is nil for fills.
type paintStyle struct {
	paint   paintSpec
	opacity float64
	rule    backend.FillRule
	stroke  *backend.StrokeStyle
}

// skip reports whether drawing with s would leave no mark.
func (s *paintStyle) skip() bool {
	return s.opacity <= 0 || (s.stroke != nil && s.stroke.Width <= 0)
}

func (s *paintStyle) backendStyle(p backend.Paint) backend.Style {
	return backend.Style{Paint: p, Opacity: s.opacity, FillRule: s.rule, Stroke: s.stroke}
}

func percent(p anim.Property[float64], frame float64) float64 {
	return math.Max(0, math.Min(1, p.Value(frame)/100))
}

func solidColor(c anim.Color) backend.Color {
	return backend.Color(c)
}

func fillStyle(f *Fill, frame float64) *paintStyle {
	return &paintStyle{
		paint:   paintSpec{color: solidColor(f.Color.Value(frame))},
		opacity: percent(f.Opacity, frame),
		rule:    f.Rule,
	}
}

func strokeStyle(s *Stroke, frame float64) *paintStyle {
	return &paintStyle{
		paint:   paintSpec{color: solidColor(s.Color.Value(frame))},
		opacity: percent(s.Opacity, frame),
		stroke:  s.StrokeOptions.resolve(frame),
	}
}

func gradientFillStyle(g *GradientFill, frame float64) *paintStyle {
	return &paintStyle{
		paint:   paintSpec{gradient: g.Gradient.resolve(frame)},
		opacity: percent(g.Opacity, frame),
		rule:    g.Rule,
	}
}

func gradientStrokeStyle(g *GradientStroke, frame float64) *paintStyle {
	return &paintStyle{
		paint:   paintSpec{gradient: g.Gradient.resolve(frame)},
		opacity: percent(g.Opacity, frame),
		stroke:  g.StrokeOptions.resolve(frame),
	}
}

func (o *StrokeOptions) resolve(frame float64) *backend.StrokeStyle {
	s := &backend.StrokeStyle{
		Width:      o.Width.Value(frame),
		Cap:        o.Cap,
		Join:       o.Join,
		MiterLimit: o.MiterLimit,
	}
	var total float64
	for _, d := range o.Dashes {
		v := d.Length.Value(frame)
		if d.Kind == DashOffset {
			s.DashOffset = v
			continue
		}
		s.Dashes = append(s.Dashes, v)
		total += v
	}
	if total <= 0 {
		s.Dashes, s.DashOffset = nil, 0
	}
	return s
}

// resolve samples the gradient geometry and stops. Radial gradients are
// centered on Start with a radius reaching End; the focal point sits at
// HighlightLength percent of the radius, turned by HighlightAngle.
func (g *Gradient) resolve(frame float64) *gradientSpec {
	spec := &gradientSpec{
		kind:  g.Kind,
		start: g.Start.Value(frame),
		end:   g.End.Value(frame),
		stops: gradientStops(g.Stops.Value(frame), g.StopCount),
	}
	if g.Kind == RadialGradient {
		d := spec.end.Sub(spec.start)
		spec.radius = d.Length()
		h := math.Max(-0.99, math.Min(0.99, g.HighlightLength.Value(frame)/100))
		angle := math.Atan2(d.Y, d.X) + degrees(g.HighlightAngle.Value(frame))
		spec.focus = spec.start.Add(geom.Pt(math.Cos(angle), math.Sin(angle)).Mul(spec.radius * h))
	}
	return spec
}

// gradientStops decodes count color stops of (offset, r, g, b) from raw.
// Trailing (offset, alpha) pairs, when present, set each color stop's
// alpha by interpolating at its offset.
func gradientStops(raw anim.Scalars, count int) []backend.GradientStop {
	count = max(0, min(count, len(raw)/4))
	stops := make([]backend.GradientStop, count)
	for i := range count {
		v := raw[i*4 : i*4+4]
		stops[i] = backend.GradientStop{Offset: v[0], Color: backend.Color{R: v[1], G: v[2], B: v[3], A: 1}}
	}
	alpha := raw[count*4:]
	if len(alpha) < 2 {
		return stops
	}
	for i := range stops {
		stops[i].Color.A = alphaAt(alpha, stops[i].Offset)
	}
	return stops
}

// alphaAt interpolates flat (offset, alpha) pairs at t.
func alphaAt(pairs anim.Scalars, t float64) float64 {
	n := len(pairs) / 2
	if t <= pairs[0] {
		return pairs[1]
	}
	for i := 1; i < n; i++ {
		o0, a0 := pairs[2*i-2], pairs[2*i-1]
		o1, a1 := pairs[2*i], pairs[2*i+1]
		if t <= o1 {
			if o1 == o0 {
				return a1
			}
			return a0 + (a1-a0)*(t-o0)/(o1-o0)
		}
	}
	return pairs[2*n-1]
}

package lottie

import (
	"math"

	"github.com/gogpu/lottie/anim"
	"github.com/gogpu/lottie/backend"
	"github.com/gogpu/lottie/geom"
)

// ellipseKappa is the tangent length, relative to the radius, of a quarter
// ellipse drawn as one cubic.
const ellipseKappa = 0.5519

// cornerEpsilon is the largest rectangle radius treated as square corners.
const cornerEpsilon = 1e-3

// Geometry is a shape item that produces a path. Generators are pure
// functions of the item and the frame.
type Geometry interface {
	ShapeItem
	AppendPath(pb backend.PathBuilder, frame float64)
}

// ToPath returns the path of g at frame.
func ToPath(g Geometry, frame float64) *geom.Path {
	p := geom.NewPath(16)
	g.AppendPath(p, frame)
	return p
}

// AppendPath emits the rectangle starting at its top-right corner.
func (r *Rectangle) AppendPath(pb backend.PathBuilder, frame float64) {
	c := r.Position.Value(frame)
	size := r.Size.Value(frame)
	hw, hh := size.X/2, size.Y/2
	left, right := c.X-hw, c.X+hw
	top, bottom := c.Y-hh, c.Y+hh

	radius := math.Min(r.Radius.Value(frame), math.Min(math.Abs(hw), math.Abs(hh)))
	if radius < cornerEpsilon {
		pb.MoveTo(geom.Pt(right, top))
		if r.Direction == CounterClockwise {
			pb.LineTo(geom.Pt(left, top))
			pb.LineTo(geom.Pt(left, bottom))
			pb.LineTo(geom.Pt(right, bottom))
		} else {
			pb.LineTo(geom.Pt(right, bottom))
			pb.LineTo(geom.Pt(left, bottom))
			pb.LineTo(geom.Pt(left, top))
		}
		pb.Close()
		return
	}

	radii := geom.Pt(radius, radius)
	quarter := math.Pi / 2
	pb.MoveTo(geom.Pt(right, top+radius))
	if r.Direction == CounterClockwise {
		pb.AddArc(geom.Pt(right-radius, top+radius), radii, 0, -quarter)
		pb.LineTo(geom.Pt(left+radius, top))
		pb.AddArc(geom.Pt(left+radius, top+radius), radii, -quarter, -quarter)
		pb.LineTo(geom.Pt(left, bottom-radius))
		pb.AddArc(geom.Pt(left+radius, bottom-radius), radii, math.Pi, -quarter)
		pb.LineTo(geom.Pt(right-radius, bottom))
		pb.AddArc(geom.Pt(right-radius, bottom-radius), radii, quarter, -quarter)
	} else {
		pb.LineTo(geom.Pt(right, bottom-radius))
		pb.AddArc(geom.Pt(right-radius, bottom-radius), radii, 0, quarter)
		pb.LineTo(geom.Pt(left+radius, bottom))
		pb.AddArc(geom.Pt(left+radius, bottom-radius), radii, quarter, quarter)
		pb.LineTo(geom.Pt(left, top+radius))
		pb.AddArc(geom.Pt(left+radius, top+radius), radii, math.Pi, quarter)
		pb.LineTo(geom.Pt(right-radius, top))
		pb.AddArc(geom.Pt(right-radius, top+radius), radii, -quarter, quarter)
	}
	pb.Close()
}

// AppendPath emits the ellipse as four cubics starting at the top.
func (e *Ellipse) AppendPath(pb backend.PathBuilder, frame float64) {
	c := e.Position.Value(frame)
	size := e.Size.Value(frame)
	rx, ry := size.X/2, size.Y/2
	kx, ky := rx*ellipseKappa, ry*ellipseKappa

	top := geom.Pt(c.X, c.Y-ry)
	right := geom.Pt(c.X+rx, c.Y)
	bottom := geom.Pt(c.X, c.Y+ry)
	left := geom.Pt(c.X-rx, c.Y)

	pb.MoveTo(top)
	if e.Direction == CounterClockwise {
		pb.CubicTo(geom.Pt(c.X-kx, top.Y), geom.Pt(left.X, c.Y-ky), left)
		pb.CubicTo(geom.Pt(left.X, c.Y+ky), geom.Pt(c.X-kx, bottom.Y), bottom)
		pb.CubicTo(geom.Pt(c.X+kx, bottom.Y), geom.Pt(right.X, c.Y+ky), right)
		pb.CubicTo(geom.Pt(right.X, c.Y-ky), geom.Pt(c.X+kx, top.Y), top)
	} else {
		pb.CubicTo(geom.Pt(c.X+kx, top.Y), geom.Pt(right.X, c.Y-ky), right)
		pb.CubicTo(geom.Pt(right.X, c.Y+ky), geom.Pt(c.X+kx, bottom.Y), bottom)
		pb.CubicTo(geom.Pt(c.X-kx, bottom.Y), geom.Pt(left.X, c.Y+ky), left)
		pb.CubicTo(geom.Pt(left.X, c.Y-ky), geom.Pt(c.X-kx, top.Y), top)
	}
	pb.Close()
}

// AppendPath emits the polystar starting at the top vertex, turned by
// Rotation.
func (s *Polystar) AppendPath(pb backend.PathBuilder, frame float64) {
	points := math.Floor(s.Points.Value(frame))
	if points < 1 {
		return
	}
	c := s.Position.Value(frame)
	outer := s.OuterRadius.Value(frame)
	outerRound := s.OuterRoundness.Value(frame) / 100

	var count int
	var step float64
	var radius, round, segment [2]float64
	if s.Kind == Star {
		inner := s.InnerRadius.Value(frame)
		count = int(points) * 2
		step = math.Pi / points
		radius = [2]float64{outer, inner}
		round = [2]float64{outerRound, s.InnerRoundness.Value(frame) / 100}
		segment = [2]float64{2 * math.Pi * outer / float64(count*2), 2 * math.Pi * inner / float64(count*2)}
	} else {
		count = int(points)
		step = 2 * math.Pi / points
		radius = [2]float64{outer, outer}
		round = [2]float64{outerRound, outerRound}
		seg := 2 * math.Pi * outer / float64(count*4)
		segment = [2]float64{seg, seg}
	}

	dir := 1.0
	if s.Direction == CounterClockwise {
		dir = -1
	}
	angle := -math.Pi/2 + s.Rotation.Value(frame)*math.Pi/180

	b := anim.Bezier{
		Closed:      true,
		Vertices:    make([]geom.Point, count),
		InTangents:  make([]geom.Point, count),
		OutTangents: make([]geom.Point, count),
	}
	for i := range count {
		k := i % 2
		v := geom.Pt(radius[k]*math.Cos(angle), radius[k]*math.Sin(angle))
		var tangent geom.Point
		if l := v.Length(); l > 0 {
			tangent = geom.Pt(-v.Y/l, v.X/l).Mul(segment[k] * round[k] * dir)
		}
		b.Vertices[i] = c.Add(v)
		b.InTangents[i] = tangent.Mul(-1)
		b.OutTangents[i] = tangent
		angle += step * dir
	}
	appendBezier(pb, b, false)
}

// AppendPath emits the bezier at frame.
func (f *FreePath) AppendPath(pb backend.PathBuilder, frame float64) {
	appendBezier(pb, f.Shape.Value(frame), f.Direction == CounterClockwise)
}

// appendBezier emits b as cubic segments. Segments without tangents become
// lines. reverse walks the vertices backwards with in and out tangents
// swapped.
func appendBezier(pb backend.PathBuilder, b anim.Bezier, reverse bool) {
	n := len(b.Vertices)
	if n == 0 || !b.Valid() {
		return
	}
	idx := func(k int) int {
		if reverse {
			return n - 1 - k
		}
		return k
	}
	out := func(k int) geom.Point {
		if reverse {
			return b.InTangents[idx(k)]
		}
		return b.OutTangents[idx(k)]
	}
	in := func(k int) geom.Point {
		if reverse {
			return b.OutTangents[idx(k)]
		}
		return b.InTangents[idx(k)]
	}
	segment := func(from, to int) {
		p0, p1 := b.Vertices[idx(from)], b.Vertices[idx(to)]
		o, i := out(from), in(to)
		if o == (geom.Point{}) && i == (geom.Point{}) {
			pb.LineTo(p1)
			return
		}
		pb.CubicTo(p0.Add(o), p1.Add(i), p1)
	}

	pb.MoveTo(b.Vertices[idx(0)])
	for k := 0; k+1 < n; k++ {
		segment(k, k+1)
	}
	if b.Closed {
		segment(n-1, 0)
		pb.Close()
	}
}

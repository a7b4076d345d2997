package stroke

import (
	"math"

	"github.com/gogpu/lottie/geom"
)

// Cap is the shape of open polyline ends.
type Cap uint8

const (
	CapButt Cap = iota
	CapRound
	CapSquare
)

// Join is the shape where segments meet.
type Join uint8

const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Style describes a stroke in the coordinate space of the polylines.
type Style struct {
	Width      float64
	Cap        Cap
	Join       Join
	MiterLimit float64

	// Tolerance bounds the chord error of round caps and joins.
	Tolerance float64
}

const degenerate = 1e-9

// outliner accumulates polygons with a consistent orientation.
type outliner struct {
	path *geom.Path
	hw   float64
	s    Style
}

// Outline returns the fill outline of the stroked polylines.
func Outline(lines []geom.Polyline, s Style) *geom.Path {
	if s.MiterLimit <= 0 {
		s.MiterLimit = 4
	}
	if s.Tolerance <= 0 {
		s.Tolerance = 0.25
	}
	o := &outliner{path: geom.NewPath(64), hw: s.Width / 2, s: s}
	if o.hw <= 0 {
		return o.path
	}
	for _, l := range lines {
		o.polyline(dedupe(l))
	}
	return o.path
}

// dedupe drops repeated points, and the duplicate closing point of closed
// polylines.
func dedupe(l geom.Polyline) geom.Polyline {
	out := geom.Polyline{Closed: l.Closed, Points: make([]geom.Point, 0, len(l.Points))}
	for _, p := range l.Points {
		if n := len(out.Points); n > 0 && out.Points[n-1].Near(p, degenerate) {
			continue
		}
		out.Points = append(out.Points, p)
	}
	if out.Closed && len(out.Points) > 1 && out.Points[0].Near(out.Points[len(out.Points)-1], degenerate) {
		out.Points = out.Points[:len(out.Points)-1]
	}
	if len(out.Points) < 3 {
		out.Closed = false
	}
	return out
}

func (o *outliner) polyline(l geom.Polyline) {
	pts := l.Points
	switch len(pts) {
	case 0:
		return
	case 1:
		o.dot(pts[0])
		return
	}

	n := len(pts)
	segs := n - 1
	if l.Closed {
		segs = n
	}
	for i := range segs {
		a, b := pts[i], pts[(i+1)%n]
		if !l.Closed && o.s.Cap == CapSquare {
			d := b.Sub(a).Normalize().Mul(o.hw)
			if i == 0 {
				a = a.Sub(d)
			}
			if i == segs-1 {
				b = b.Add(d)
			}
		}
		o.quad(a, b)
	}

	first, last := 1, n-1
	if l.Closed {
		first, last = 0, n
	}
	for i := first; i < last; i++ {
		o.join(pts[(i-1+n)%n], pts[i], pts[(i+1)%n])
	}

	if !l.Closed && o.s.Cap == CapRound {
		o.disc(pts[0])
		o.disc(pts[n-1])
	}
}

// polygon appends pts as a closed subpath with negative signed area.
func (o *outliner) polygon(pts ...geom.Point) {
	var area float64
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area > 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	o.path.MoveTo(pts[0])
	for _, p := range pts[1:] {
		o.path.LineTo(p)
	}
	o.path.Close()
}

func (o *outliner) quad(a, b geom.Point) {
	n := b.Sub(a).Normalize().Perp().Mul(o.hw)
	o.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (o *outliner) join(prev, p, next geom.Point) {
	d0 := p.Sub(prev).Normalize()
	d1 := next.Sub(p).Normalize()
	cross := d0.Cross(d1)
	if math.Abs(cross) < degenerate && d0.Dot(d1) > 0 {
		return
	}
	if o.s.Join == JoinRound {
		o.disc(p)
		return
	}

	side := 1.0
	if cross > 0 {
		side = -1
	}
	n0 := d0.Perp().Mul(side * o.hw)
	n1 := d1.Perp().Mul(side * o.hw)

	if o.s.Join == JoinMiter {
		cosHalf := math.Sqrt(math.Max(0, (1+d0.Dot(d1))/2))
		if cosHalf > degenerate && 1/cosHalf <= o.s.MiterLimit {
			mid := n0.Add(n1).Normalize().Mul(o.hw / cosHalf)
			o.polygon(p, p.Add(n0), p.Add(mid), p.Add(n1))
			return
		}
	}
	o.polygon(p, p.Add(n0), p.Add(n1))
}

// dot draws the mark of a zero-length stroke: round and square caps
// produce a disc or a square, butt caps nothing.
func (o *outliner) dot(p geom.Point) {
	switch o.s.Cap {
	case CapRound:
		o.disc(p)
	case CapSquare:
		h := o.hw
		o.polygon(p.Add(geom.Pt(-h, -h)), p.Add(geom.Pt(h, -h)), p.Add(geom.Pt(h, h)), p.Add(geom.Pt(-h, h)))
	}
}

func (o *outliner) disc(c geom.Point) {
	n := 8
	if o.hw > o.s.Tolerance {
		n = max(n, int(math.Ceil(math.Pi/math.Acos(1-o.s.Tolerance/o.hw))))
	}
	n = min(n, 128)
	pts := make([]geom.Point, n)
	for i := range n {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = c.Add(geom.Pt(cos*o.hw, sin*o.hw))
	}
	o.polygon(pts...)
}

package geom

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath at a point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Sink receives the primitive path commands. Path implements it, and so
// does every backend path builder.
type Sink interface {
	MoveTo(p Point)
	LineTo(p Point)
	QuadTo(ctrl, p Point)
	CubicTo(ctrl1, ctrl2, p Point)
	Close()
}

// Path is a sequence of subpaths built from lines and Bezier curves.
// Arcs are converted to cubic segments as they are added.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
	open     bool // a subpath is in progress
}

// NewPath creates an empty path with room for capacityHint elements.
func NewPath(capacityHint int) *Path {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &Path{elements: make([]PathElement, 0, capacityHint)}
}

// MoveTo starts a new subpath at p.
func (p *Path) MoveTo(pt Point) {
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.open = true
}

// ensureSubpath starts a subpath at the current point when drawing
// commands follow a Close or open an empty path.
func (p *Path) ensureSubpath() {
	if !p.open {
		p.MoveTo(p.current)
	}
}

// LineTo draws a line to pt.
func (p *Path) LineTo(pt Point) {
	p.ensureSubpath()
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadTo draws a quadratic Bezier curve.
func (p *Path) QuadTo(ctrl, pt Point) {
	p.ensureSubpath()
	p.elements = append(p.elements, QuadTo{Control: ctrl, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(ctrl1, ctrl2, pt Point) {
	p.ensureSubpath()
	p.elements = append(p.elements, CubicTo{Control1: ctrl1, Control2: ctrl2, Point: pt})
	p.current = pt
}

// Close closes the current subpath. Closing without an open subpath is a
// no-op.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.open = false
}

// CurrentPosition returns the current point, and false when the path has
// no elements yet.
func (p *Path) CurrentPosition() (Point, bool) {
	return p.current, len(p.elements) > 0
}

// AddArc appends an elliptical arc around center with the given radii,
// starting at startAngle and sweeping sweepAngle radians (positive sweeps
// run clockwise in a y-down coordinate system). The arc start is joined to
// the current point with a line, or starts a new subpath.
func (p *Path) AddArc(center, radii Point, startAngle, sweepAngle float64) {
	first := center.Add(Point{X: radii.X * math.Cos(startAngle), Y: radii.Y * math.Sin(startAngle)})
	if cur, ok := p.CurrentPosition(); ok && p.open {
		if !cur.Near(first, 1e-9) {
			p.LineTo(first)
		}
	} else {
		p.MoveTo(first)
	}
	p.arc(center, radii, 0, startAngle, sweepAngle)
}

// EllipticArcTo appends an SVG-style elliptical arc from the current point
// to end.
func (p *Path) EllipticArcTo(radii Point, xRotation float64, largeArc, sweep bool, end Point) {
	p0, ok := p.CurrentPosition()
	if !ok {
		p.MoveTo(end)
		return
	}
	if p0.Near(end, 1e-12) {
		return
	}
	rx, ry := math.Abs(radii.X), math.Abs(radii.Y)
	if rx < 1e-12 || ry < 1e-12 {
		p.LineTo(end)
		return
	}

	sinPhi, cosPhi := math.Sincos(xRotation)
	dx2 := (p0.X - end.X) / 2
	dy2 := (p0.Y - end.Y) / 2
	x1 := cosPhi*dx2 + sinPhi*dy2
	y1 := -sinPhi*dx2 + cosPhi*dy2

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if largeArc == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	center := Point{
		X: cosPhi*cx1 - sinPhi*cy1 + (p0.X+end.X)/2,
		Y: sinPhi*cx1 + cosPhi*cy1 + (p0.Y+end.Y)/2,
	}

	u := Point{X: (x1 - cx1) / rx, Y: (y1 - cy1) / ry}
	v := Point{X: (-x1 - cx1) / rx, Y: (-y1 - cy1) / ry}
	theta := math.Atan2(u.Y, u.X)
	delta := math.Atan2(u.Cross(v), u.Dot(v))
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	p.arc(center, Point{X: rx, Y: ry}, xRotation, theta, delta)
	p.current = end
	if last, ok := p.elements[len(p.elements)-1].(CubicTo); ok {
		last.Point = end
		p.elements[len(p.elements)-1] = last
	}
}

// arc appends cubic segments of at most 90 degrees each, approximating
// the rotated ellipse arc. The current point must already be the arc start.
func (p *Path) arc(center, radii Point, rotation, start, sweep float64) {
	if sweep == 0 {
		return
	}
	n := int(math.Ceil(math.Abs(sweep) / (math.Pi / 2)))
	step := sweep / float64(n)
	k := 4.0 / 3.0 * math.Tan(step/4)
	rot := Rotate(rotation)

	onEllipse := func(a float64) (Point, Point) {
		sin, cos := math.Sincos(a)
		pt := Point{X: radii.X * cos, Y: radii.Y * sin}
		d := Point{X: -radii.X * sin, Y: radii.Y * cos}
		return rot.TransformPoint(pt).Add(center), rot.TransformVector(d)
	}

	a1 := start
	p1, d1 := onEllipse(a1)
	for i := 0; i < n; i++ {
		a2 := a1 + step
		p2, d2 := onEllipse(a2)
		p.CubicTo(p1.Add(d1.Mul(k)), p2.Sub(d2.Mul(k)), p2)
		a1, p1, d1 = a2, p2, d2
	}
}

// Rectangle adds an axis-aligned rectangle as a closed subpath.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(Pt(x, y))
	p.LineTo(Pt(x+w, y))
	p.LineTo(Pt(x+w, y+h))
	p.LineTo(Pt(x, y+h))
	p.Close()
}

// Append adds every element of other to p.
func (p *Path) Append(other *Path) {
	if other != nil {
		other.Replay(p)
	}
}

// Clear removes all elements from the path.
func (p *Path) Clear() {
	p.elements = p.elements[:0]
	p.start = Point{}
	p.current = Point{}
	p.open = false
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no drawing elements.
func (p *Path) IsEmpty() bool {
	for _, e := range p.elements {
		if _, ok := e.(MoveTo); !ok {
			return false
		}
	}
	return true
}

// Replay issues the path's elements, in order, to dst.
func (p *Path) Replay(dst Sink) {
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			dst.MoveTo(e.Point)
		case LineTo:
			dst.LineTo(e.Point)
		case QuadTo:
			dst.QuadTo(e.Control, e.Point)
		case CubicTo:
			dst.CubicTo(e.Control1, e.Control2, e.Point)
		case Close:
			dst.Close()
		}
	}
}

// Transform returns a copy of the path with m applied to every point.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath(len(p.elements))
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			result.MoveTo(m.TransformPoint(e.Point))
		case LineTo:
			result.LineTo(m.TransformPoint(e.Point))
		case QuadTo:
			result.QuadTo(m.TransformPoint(e.Control), m.TransformPoint(e.Point))
		case CubicTo:
			result.CubicTo(m.TransformPoint(e.Control1), m.TransformPoint(e.Control2), m.TransformPoint(e.Point))
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := &Path{
		elements: make([]PathElement, len(p.elements)),
		start:    p.start,
		current:  p.current,
		open:     p.open,
	}
	copy(result.elements, p.elements)
	return result
}

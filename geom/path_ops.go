package geom

import "math"

// Area returns the signed area enclosed by the path, treating every subpath
// as implicitly closed. Positive for clockwise paths in a y-down coordinate
// system, negative for counter-clockwise.
// Uses the shoelace formula extended for curves (Green's theorem).
func (p *Path) Area() float64 {
	var area float64
	var current, start Point

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			area += lineArea(current, start)
			start = e.Point
			current = e.Point
		case LineTo:
			area += lineArea(current, e.Point)
			current = e.Point
		case QuadTo:
			area += cubicArea(QuadBez{P0: current, P1: e.Control, P2: e.Point}.Raise())
			current = e.Point
		case CubicTo:
			area += cubicArea(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point})
			current = e.Point
		case Close:
			area += lineArea(current, start)
			current = start
		}
	}
	return area + lineArea(current, start)
}

func lineArea(p0, p1 Point) float64 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// cubicArea integrates x*dy over the cubic (kurbo formula).
func cubicArea(c CubicBez) float64 {
	p0, p1, p2, p3 := c.P0, c.P1, c.P2, c.P3
	return (p0.X*(6*p1.Y+3*p2.Y+p3.Y) +
		3*p1.X*(-2*p0.Y+p2.Y+p3.Y) +
		3*p2.X*(-p0.Y-p1.Y+2*p3.Y) +
		p3.X*(-p0.Y-3*p1.Y-6*p2.Y)) / 20.0
}

// BoundingBox returns the tight axis-aligned bounding box of the path.
func (p *Path) BoundingBox() Rect {
	var bbox Rect
	first := true
	add := func(r Rect) {
		if first {
			bbox, first = r, false
			return
		}
		bbox = bbox.Union(r)
	}

	var current Point
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			add(NewRect(e.Point, e.Point))
			current = e.Point
		case LineTo:
			add(NewRect(e.Point, e.Point))
			current = e.Point
		case QuadTo:
			add(QuadBez{P0: current, P1: e.Control, P2: e.Point}.Raise().BoundingBox())
			current = e.Point
		case CubicTo:
			add(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}.BoundingBox())
			current = e.Point
		}
	}
	return bbox
}

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten converts every subpath to a polyline whose segments stay within
// tolerance of the curves.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = 0.1
	}
	tolSq16 := tolerance * tolerance * 16

	var out []Polyline
	var cur *Polyline
	var current Point
	begin := func(pt Point) {
		out = append(out, Polyline{Points: []Point{pt}})
		cur = &out[len(out)-1]
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			begin(e.Point)
			current = e.Point
		case LineTo:
			cur.Points = append(cur.Points, e.Point)
			current = e.Point
		case QuadTo:
			flattenCubic(QuadBez{P0: current, P1: e.Control, P2: e.Point}.Raise(), tolSq16, &cur.Points)
			current = e.Point
		case CubicTo:
			flattenCubic(CubicBez{P0: current, P1: e.Control1, P2: e.Control2, P3: e.Point}, tolSq16, &cur.Points)
			current = e.Point
		case Close:
			cur.Closed = true
			current = cur.Points[0]
		}
	}
	return out
}

// flattenCubic appends the end points of an adaptive subdivision of c.
// The work stack bounds recursion for degenerate inputs.
func flattenCubic(c CubicBez, tolSq16 float64, pts *[]Point) {
	const maxDepth = 16
	type item struct {
		c     CubicBez
		depth int
	}
	stack := []item{{c, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.depth >= maxDepth || it.c.flatness() <= tolSq16 {
			*pts = append(*pts, it.c.P3)
			continue
		}
		a, b := it.c.Subdivide()
		stack = append(stack, item{b, it.depth + 1}, item{a, it.depth + 1})
	}
}

// subpath is one MoveTo-delimited run of elements.
type subpath struct {
	start    Point
	elements []PathElement // drawing elements only
	closed   bool
}

func (p *Path) subpaths() []subpath {
	var out []subpath
	var cur *subpath
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			out = append(out, subpath{start: e.Point})
			cur = &out[len(out)-1]
		case Close:
			cur.closed = true
		default:
			cur.elements = append(cur.elements, elem)
		}
	}
	return out
}

func endPoint(e PathElement) Point {
	switch e := e.(type) {
	case LineTo:
		return e.Point
	case QuadTo:
		return e.Point
	case CubicTo:
		return e.Point
	case MoveTo:
		return e.Point
	}
	return Point{}
}

// Length returns the total arclength of the path including the implicit
// closing edge of closed subpaths. accuracy bounds the per-segment error.
func (p *Path) Length(accuracy float64) float64 {
	return NewMeasure(p, accuracy).Length()
}

func cubicLength(c CubicBez, accuracy float64) float64 {
	const maxDepth = 24
	var walk func(c CubicBez, depth int) float64
	walk = func(c CubicBez, depth int) float64 {
		chord := c.P0.Distance(c.P3)
		polygon := c.P0.Distance(c.P1) + c.P1.Distance(c.P2) + c.P2.Distance(c.P3)
		if polygon-chord <= accuracy || depth >= maxDepth {
			return (2*chord + polygon) / 3
		}
		a, b := c.Subdivide()
		return walk(a, depth+1) + walk(b, depth+1)
	}
	return walk(c, 0)
}

func nearZero(x float64) bool {
	return math.Abs(x) < 1e-12
}
